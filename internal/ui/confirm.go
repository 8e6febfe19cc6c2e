package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// promptInput is swapped for a fixed reader in tests.
var promptInput io.Reader = os.Stdin

// Confirm asks a yes/no question and returns true only on an explicit
// "y" or "yes". Anything else, including EOF, declines.
func Confirm(question string) bool {
	return ask(StyleWarning.Render(question))
}

// ConfirmDanger is Confirm for destructive actions: the question is
// rendered in the error color with a warning prefix.
func ConfirmDanger(question string) bool {
	return ask(StyleError.Render("⚠ " + question))
}

func ask(rendered string) bool {
	fmt.Printf("%s [y/N]: ", rendered)

	scanner := bufio.NewScanner(promptInput)
	if !scanner.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return true
	}
	return false
}

package main

import "github.com/0xkaran/chainsentry/cmd"

func main() {
	cmd.Execute()
}

package ui

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SessionStateMsg carries a wallet-state snapshot into the live view.
type SessionStateMsg struct {
	Connected bool
	Address   string
	Network   string
	Balance   string
	Symbol    string
	NumAssets int
	ErrMsg    string
}

// SessionTxMsg is one ledger entry for the live transaction stream.
type SessionTxMsg struct {
	Hash     string
	To       string
	Amount   string
	Status   string // "Pending" | "Completed" | "Failed"
	Protocol string
	Time     time.Time
}

// SessionModel is the Bubble Tea model for the live wallet session: the
// current wallet state on top, the transaction stream below it.
type SessionModel struct {
	State    SessionStateMsg
	Rows     []SessionTxMsg
	cursor   int
	Frame    int
	Quitting bool
	flash    string
}

var sessionSpinFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type sessionTickMsg struct{}

func sessionSpinTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return sessionTickMsg{}
	})
}

func (m SessionModel) Init() tea.Cmd { return sessionSpinTick() }

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		m.flash = ""
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Quitting = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.Rows)-1 {
				m.cursor++
			}

		case "c":
			if m.cursor < len(m.Rows) {
				hash := m.Rows[m.cursor].Hash
				if hash == "" {
					m.flash = "No hash available"
					break
				}
				if err := copyToClipboard(hash); err == nil {
					m.flash = "Copied: " + hash[:10] + "…"
				} else {
					m.flash = "Copy failed"
				}
			}
		}

	case sessionTickMsg:
		m.Frame = (m.Frame + 1) % len(sessionSpinFrames)
		return m, sessionSpinTick()

	case SessionStateMsg:
		m.State = msg

	case SessionTxMsg:
		// Newest entries sit at the top. Replace in place when a known
		// hash changes status instead of duplicating the row.
		replaced := false
		for i := range m.Rows {
			if strings.EqualFold(m.Rows[i].Hash, msg.Hash) {
				m.Rows[i] = msg
				replaced = true
				break
			}
		}
		if !replaced {
			m.Rows = append([]SessionTxMsg{msg}, m.Rows...)
		}
		// Cap at 200 rows.
		if len(m.Rows) > 200 {
			m.Rows = m.Rows[:200]
		}
	}

	return m, nil
}

func (m SessionModel) View() string {
	if m.Quitting {
		return ""
	}

	var sb strings.Builder
	spin := sessionSpinFrames[m.Frame]

	// ── Title ─────────────────────────────────────────────────────────────
	sb.WriteString(StyleTitle.Render("👁  Wallet Session") + "\n")

	// ── Wallet state ──────────────────────────────────────────────────────
	if m.State.ErrMsg != "" {
		sb.WriteString(StyleError.Render("✗ "+m.State.ErrMsg) + "\n\n")
	} else if !m.State.Connected {
		sb.WriteString(StyleInfo.Render(spin+" waiting for wallet…") + "\n\n")
	} else {
		line := fmt.Sprintf("  %s  ·  %s  ·  %s %s  ·  %d asset(s)",
			StyleAddress.Render(TruncateAddr(m.State.Address)),
			StyleNetwork.Render(m.State.Network),
			StyleValue.Render(m.State.Balance),
			StyleDim.Render(m.State.Symbol),
			m.State.NumAssets)
		sb.WriteString(line + "\n\n")
	}

	// ── Transaction stream ────────────────────────────────────────────────
	const (
		wHash  = 14
		wTo    = 14
		wVal   = 14
		wStat  = 11
		wProto = 10
	)
	sep := StyleMeta.Render(strings.Repeat("─", wHash+wTo+wVal+wStat+wProto+12))

	sb.WriteString(
		padR(StyleDim.Render("HASH"), wHash) + "  " +
			padR(StyleDim.Render("TO"), wTo) + "  " +
			padR(StyleDim.Render("AMOUNT"), wVal) + "  " +
			padR(StyleDim.Render("STATUS"), wStat) + "  " +
			StyleDim.Render("PROTOCOL") + "\n",
	)
	sb.WriteString(sep + "\n")

	if len(m.Rows) == 0 {
		sb.WriteString(StyleMeta.Render("  No transactions yet…") + "\n")
	} else {
		for i, row := range m.Rows {
			hashStr := StyleAddress.Render(TruncateAddr(row.Hash))
			toStr := StyleAddress.Render(TruncateAddr(row.To))
			valStr := StyleValue.Render(row.Amount)

			var statStr string
			switch row.Status {
			case "Completed":
				statStr = StyleSuccess.Render(row.Status)
			case "Failed":
				statStr = StyleError.Render(row.Status)
			default:
				statStr = StyleWarning.Render(row.Status)
			}

			protoStr := StyleMeta.Render(row.Protocol)

			line :=
				padR(hashStr, wHash) + "  " +
					padR(toStr, wTo) + "  " +
					padR(valStr, wVal) + "  " +
					padR(statStr, wStat) + "  " +
					protoStr

			if i == m.cursor {
				sb.WriteString(StyleSelected.Render(line) + "\n")
			} else {
				sb.WriteString(line + "\n")
			}
		}
		sb.WriteString(sep + "\n")
		sb.WriteString(StyleMeta.Render(fmt.Sprintf("  %d transaction(s)", len(m.Rows))) + "\n")
	}

	// ── Controls ─────────────────────────────────────────────────────────
	sb.WriteString("\n")
	if m.flash != "" {
		sb.WriteString(StyleSuccess.Render("  ✓ " + m.flash))
	} else {
		sb.WriteString(sessionControls())
	}
	sb.WriteString("\n")

	return sb.String()
}

func sessionControls() string {
	sep := StyleMeta.Render("   ")
	var sb strings.Builder
	sb.WriteString(StyleMeta.Render("[ ↑↓ ]"))
	sb.WriteString(StyleMeta.Render(" navigate"))
	sb.WriteString(sep)
	sb.WriteString(StyleWarning.Render("[ c ]"))
	sb.WriteString(StyleMeta.Render(" copy hash"))
	sb.WriteString(sep)
	sb.WriteString(StyleMeta.Render("[ q ]"))
	sb.WriteString(StyleMeta.Render(" quit"))
	return sb.String()
}

// copyToClipboard writes text to the system clipboard.
func copyToClipboard(text string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")
	case "windows":
		cmd = exec.Command("clip")
	default:
		// Try wl-copy (Wayland), fall back to xclip.
		if _, err := exec.LookPath("wl-copy"); err == nil {
			cmd = exec.Command("wl-copy")
		} else {
			cmd = exec.Command("xclip", "-selection", "clipboard")
		}
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	_, _ = io.WriteString(stdin, text)
	stdin.Close()
	return cmd.Wait()
}

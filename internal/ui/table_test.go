package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// KeyValueBlock
// ---------------------------------------------------------------------------

func TestKeyValueBlockContainsTitleAndPairs(t *testing.T) {
	result := KeyValueBlock("Wallet Session", [][2]string{
		{"Address", "0xf39F...2266"},
		{"Balance", "1.5 GOLD"},
	})
	assert.Contains(t, result, "Wallet Session")
	assert.Contains(t, result, "Address")
	assert.Contains(t, result, "0xf39F...2266")
	assert.Contains(t, result, "Balance")
	assert.Contains(t, result, "1.5 GOLD")
}

func TestKeyValueBlockEmptyTitle(t *testing.T) {
	result := KeyValueBlock("", [][2]string{
		{"Key", "Value"},
	})
	assert.Contains(t, result, "Key")
	assert.Contains(t, result, "Value")
}

func TestKeyValueBlockPreservesOrder(t *testing.T) {
	result := KeyValueBlock("Config", [][2]string{
		{"First", "AAA"},
		{"Second", "BBB"},
		{"Third", "CCC"},
	})
	idxFirst := strings.Index(result, "First")
	idxSecond := strings.Index(result, "Second")
	idxThird := strings.Index(result, "Third")
	require.Greater(t, idxFirst, -1)
	require.Greater(t, idxSecond, -1)
	require.Greater(t, idxThird, -1)
	assert.Less(t, idxFirst, idxSecond)
	assert.Less(t, idxSecond, idxThird)
}

func TestKeyValueBlockHasBorder(t *testing.T) {
	result := KeyValueBlock("Bordered", [][2]string{
		{"Key", "Val"},
	})
	// lipgloss RoundedBorder uses ╭ and ╰ for corners.
	assert.Contains(t, result, "╭")
	assert.Contains(t, result, "╰")
}

// ---------------------------------------------------------------------------
// Table
// ---------------------------------------------------------------------------

func TestNewTableCreatesEmptyTable(t *testing.T) {
	tbl := NewTable([]Column{
		{Title: "Name", Width: 10},
		{Title: "Value", Width: 20},
	})
	assert.Len(t, tbl.Columns, 2)
	assert.Empty(t, tbl.Rows)
	assert.Equal(t, -1, tbl.SelIdx)
}

func TestTableAddRow(t *testing.T) {
	tbl := NewTable([]Column{{Title: "A", Width: 5}})
	tbl.AddRow(Row{"hello"})
	tbl.AddRow(Row{"world"})
	assert.Len(t, tbl.Rows, 2)
}

func TestTableRenderContainsHeadersAndRows(t *testing.T) {
	tbl := NewTable([]Column{
		{Title: "Hash", Width: 14},
		{Title: "Status", Width: 10},
	})
	tbl.AddRow(Row{"0xabc1…def2", "Completed"})
	tbl.AddRow(Row{"0xabc3…def4", "Pending"})

	result := tbl.Render()
	assert.Contains(t, result, "Hash")
	assert.Contains(t, result, "Status")
	assert.Contains(t, result, "0xabc1…def2")
	assert.Contains(t, result, "Completed")
	assert.Contains(t, result, "Pending")
}

func TestTableRenderTruncatesOverflow(t *testing.T) {
	tbl := NewTable([]Column{{Title: "Name", Width: 5}})
	tbl.AddRow(Row{"verylongvalue"})

	result := tbl.Render()
	assert.Contains(t, result, "veryl")
	assert.NotContains(t, result, "verylo")
}

func TestTableRenderShortRowPadsMissingCells(t *testing.T) {
	tbl := NewTable([]Column{
		{Title: "A", Width: 5},
		{Title: "B", Width: 5},
	})
	tbl.AddRow(Row{"only"})

	// Must not panic and still renders the present cell.
	result := tbl.Render()
	assert.Contains(t, result, "only")
}

func TestFitTruncatesOnRuneBoundary(t *testing.T) {
	// Truncation must never split a multibyte rune.
	assert.Equal(t, "0xab…", fit("0xab…cdef", 5))
	assert.Equal(t, "ab   ", fit("ab", 5))
}

func TestPadRShortString(t *testing.T) {
	assert.Equal(t, "ab   ", padR("ab", 5))
}

func TestPadRLongStringUnchanged(t *testing.T) {
	assert.Equal(t, "abcdef", padR("abcdef", 5))
}

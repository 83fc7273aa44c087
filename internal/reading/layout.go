package reading

import (
	"strings"
	"unicode/utf8"
)

// Word is one token placed on the reading screen. Index counts words
// across the whole passage, Col is the starting column within the row.
type Word struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Col   int    `json:"col"`
}

// Row is one display line.
type Row struct {
	Words []Word `json:"words"`
}

const defaultMaxCols = 28

// LayoutRows wraps a passage into rows at most maxCols columns wide,
// greedy first-fit with single-space gaps. A word longer than the whole
// budget gets a row to itself and overflows it.
func LayoutRows(text string, maxCols int) []Row {
	if maxCols <= 0 {
		maxCols = defaultMaxCols
	}

	var rows []Row
	var cur Row
	col := 0
	for i, f := range strings.Fields(text) {
		w := utf8.RuneCountInString(f)
		if col > 0 && col+1+w > maxCols {
			rows = append(rows, cur)
			cur = Row{}
			col = 0
		}
		start := col
		if col > 0 {
			start = col + 1
		}
		cur.Words = append(cur.Words, Word{Index: i, Text: f, Col: start})
		col = start + w
	}
	if len(cur.Words) > 0 {
		rows = append(rows, cur)
	}
	return rows
}

package manifest

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines shown around each change.
const diffContext = 3

type diffLine struct {
	op    byte // ' ', '-' or '+'
	text  string
	oldNo int
	newNo int
}

// Diff renders a unified diff between the old and new content of path.
// It returns an empty string when the contents are equal.
func Diff(path string, before, after []byte) string {
	if string(before) == string(after) {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	lines := toDiffLines(diffs)

	var buf strings.Builder
	fmt.Fprintf(&buf, "--- a/%s\n+++ b/%s\n", path, path)
	for i := 0; i < len(lines); {
		if lines[i].op == ' ' {
			i++
			continue
		}
		lo := max(0, i-diffContext)
		last := i
		for j := i; j < len(lines); j++ {
			if lines[j].op != ' ' {
				last = j
			} else if j-last > 2*diffContext {
				break
			}
		}
		hi := min(len(lines), last+diffContext+1)
		writeHunk(&buf, lines[lo:hi])
		i = hi
	}
	return buf.String()
}

func toDiffLines(diffs []diffmatchpatch.Diff) []diffLine {
	var out []diffLine
	oldNo, newNo := 1, 1
	for _, d := range diffs {
		op := byte(' ')
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			op = '-'
		case diffmatchpatch.DiffInsert:
			op = '+'
		}
		for _, text := range splitLines(d.Text) {
			out = append(out, diffLine{op: op, text: text, oldNo: oldNo, newNo: newNo})
			if op != '+' {
				oldNo++
			}
			if op != '-' {
				newNo++
			}
		}
	}
	return out
}

func writeHunk(buf *strings.Builder, lines []diffLine) {
	var oldCount, newCount int
	for _, l := range lines {
		if l.op != '+' {
			oldCount++
		}
		if l.op != '-' {
			newCount++
		}
	}
	fmt.Fprintf(buf, "@@ -%d,%d +%d,%d @@\n", lines[0].oldNo, oldCount, lines[0].newNo, newCount)
	for _, l := range lines {
		buf.WriteByte(l.op)
		buf.WriteString(l.text)
		buf.WriteByte('\n')
	}
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r\n")
	}
	return lines
}

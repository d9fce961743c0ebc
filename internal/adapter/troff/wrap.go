package troff

import (
	"fmt"
	"io"
	"strings"
)

// visibleLen is the length of a string ignoring formatting escapes: a
// backslash and the character after it count for nothing.
func visibleLen(s string) int {
	length := 0
	escaped := false
	for _, r := range s {
		switch {
		case r == '\\':
			escaped = true
		case escaped:
			escaped = false
		default:
			length++
		}
	}
	return length
}

// writeBlockComment emits a long description as a C-style block comment
// on its own lines, word-wrapped against an 80-column target.
func writeBlockComment(w io.Writer, comment string) {
	fmt.Fprintln(w, "    \\fP/*")
	fmt.Fprint(w, "     *")

	column := 7
	for _, word := range strings.Fields(comment) {
		column += len(word)
		if column > 80 {
			fmt.Fprint(w, "\n     *")
			column = 7
		}
		fmt.Fprintf(w, " %s", word)
	}
	fmt.Fprintln(w, "\n     */")
}

// writeLongText reflows free text into paragraphs, leaving literal
// blocks alone: a .nf line disables paragraph breaks until the matching
// .fi.
func writeLongText(w io.Writer, s string) {
	inLiteral := false
	for _, line := range splitLines(s) {
		if strings.HasPrefix(line, ".nf") {
			fmt.Fprintln(w)
			inLiteral = true
		}

		fmt.Fprintln(w, line)

		if !inLiteral {
			fmt.Fprintln(w, ".PP")
		}

		if strings.HasPrefix(line, ".fi") {
			fmt.Fprintln(w)
			inLiteral = false
		}
	}
}

// splitLines splits on newlines without yielding a phantom final line
// for trailing-newline input.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

package troff

import (
	"fmt"
	"io"
	"strings"

	"doxy2man/internal/domain"
)

// maxAlignedTypeLen caps how long a parameter type may be and still take
// part in column alignment. Function pointer types can get very long
// because of all *their* parameters, and lining everything up on one of
// those spreads the whole list over separate lines. Fixed design
// parameter, not validated against arbitrary terminal widths.
const maxAlignedTypeLen = 80

// maxInlineCommentLen is the longest description (measured without
// formatting escapes) still rendered as a trailing same-line comment;
// anything longer becomes its own block comment. Same caveat as above.
const maxInlineCommentLen = 50

// splitIndirection peels the trailing pointer syntax off a declared type
// so declarations align on the identifier rather than on the asterisk.
// The marker column is always two characters wide.
func splitIndirection(typ string) (base, marker string) {
	switch {
	case strings.HasSuffix(typ, "**"):
		return typ[:len(typ)-2], "**"
	case strings.HasSuffix(typ, "(*"):
		return typ[:len(typ)-2], "(*"
	case strings.HasSuffix(typ, "*"):
		return typ[:len(typ)-1], " *"
	default:
		return typ, "  "
	}
}

// writeParam emits one structure member or function parameter, padding
// the type to typeWidth. A short description goes inline, right-aligned
// against nameWidth; a long one is block-wrapped on the preceding lines.
// Passing nameWidth 0 suppresses inline comments entirely.
func writeParam(w io.Writer, p domain.Param, typeWidth, nameWidth int, bold bool, delim string) {
	base, marker := splitIndirection(p.Type)

	commentLen := visibleLen(p.Desc)
	if commentLen > maxInlineCommentLen {
		writeBlockComment(w, p.Desc)
	}

	font := "\\fR"
	if bold {
		font = "\\fB"
	}
	fmt.Fprintf(w, "    %s%-*s%s\\fI%s\\fB%s\\fR%s",
		font, typeWidth, base, marker, p.Name, p.Args, delim)

	if commentLen > 0 && commentLen <= maxInlineCommentLen && nameWidth > 0 {
		pad := 1 + nameWidth - len(p.Name) - len(p.Args) - len(delim)
		if pad < 0 {
			pad = 0
		}
		fmt.Fprintf(w, "\\fP %*s /* %s */", pad, "", p.Desc)
	}
	fmt.Fprintln(w)
}

// paramWidths makes the measuring pass over a parameter or member list:
// the widest type (optionally ignoring types past the alignment cap) and
// the widest name+args combination.
func paramWidths(params []domain.Param, clipTypes bool) (typeWidth, nameWidth int) {
	for _, p := range params {
		if len(p.Type) > typeWidth && (!clipTypes || len(p.Type) < maxAlignedTypeLen) {
			typeWidth = len(p.Type)
		}
		if len(p.Name)+len(p.Args) > nameWidth {
			nameWidth = len(p.Name) + len(p.Args)
		}
	}
	return typeWidth, nameWidth
}

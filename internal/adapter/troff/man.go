package troff

import (
	"fmt"
	"io"
	"strings"

	"doxy2man/internal/domain"
)

// RenderPage emits one man page for page. all is the full page sequence
// in original order (for the SEE ALSO list) and structures is the
// resolved structure map. Write errors surface through the writer, so
// callers hand in a buffered writer and check its flush.
func RenderPage(w io.Writer, page domain.Page, all []domain.Page, structures map[string]domain.Structure, opts Options) {
	typeWidth, _ := paramWidths(page.Params, true)
	described := 0
	for _, p := range page.Params {
		if p.Desc != "" && p.Type != "" {
			described++
		}
	}

	fmt.Fprintln(w, ".\\\"  Automatically generated man page, do not edit")
	fmt.Fprintf(w, ".TH %s %d %s \"%s\" \"%s\"\n",
		strings.ToUpper(page.Name), opts.Section, opts.Date, opts.Package, opts.Header)

	fmt.Fprintln(w, ".SH NAME")
	fmt.Fprintln(w, ".PP")
	if page.Brief != "" {
		fmt.Fprintf(w, "%s \\- %s\n", page.Name, page.Brief)
	} else {
		fmt.Fprintln(w, page.Name)
	}

	fmt.Fprintln(w, ".SH SYNOPSIS")
	fmt.Fprintln(w, ".PP")
	fmt.Fprintln(w, ".nf")
	fmt.Fprintf(w, ".B #include <%s%s>\n", opts.HeaderPrefix, opts.HeaderFile)
	if page.Definition != "" {
		fmt.Fprintln(w, ".sp")
		fmt.Fprintf(w, "\\fB%s\\fP(\n", page.Definition)
		for i, p := range page.Params {
			delim := ","
			if i == len(page.Params)-1 {
				delim = ""
			}
			writeParam(w, p, typeWidth, 0, true, delim)
		}
		fmt.Fprintln(w, ");")
		fmt.Fprintln(w, ".fi")
	}

	if opts.PrintParams && described > 0 {
		fmt.Fprintln(w, ".SH PARAMETERS")
		fmt.Fprintln(w, ".PP")
		for _, p := range page.Params {
			fmt.Fprintln(w, ".TP")
			fmt.Fprintf(w, "\\fB%s\\fP %s\n", p.Name, p.Desc)
		}
	}

	if page.Detail != "" {
		fmt.Fprintln(w, ".SH DESCRIPTION")
		fmt.Fprintln(w, ".PP")
		writeLongText(w, page.Detail)
	}

	// Refids that never resolved get no section entry, and no header if
	// nothing resolved at all.
	first := true
	for _, refid := range page.StructRefs {
		s, ok := structures[refid]
		if !ok {
			continue
		}
		if first {
			fmt.Fprintln(w, ".SH STRUCTURES")
			fmt.Fprintln(w, ".PP")
			first = false
		}
		writeStructure(w, s)
	}

	if page.Returns != "" {
		fmt.Fprintln(w, ".SH RETURN VALUE")
		fmt.Fprintln(w, ".PP")
		fmt.Fprintln(w, page.Returns)
		fmt.Fprintln(w, ".br")
		for _, rv := range page.ReturnValues {
			fmt.Fprintln(w, ".TP")
			fmt.Fprintf(w, "\\fB%s\\fR %s\n", rv.Name, rv.Desc)
		}
		fmt.Fprintln(w, ".PP")
	}

	// Defines only exist on the whole-document page. Only ALLCAPS names
	// are shown, for neatness.
	if len(page.Defines) > 0 {
		fmt.Fprintln(w, ".SH DEFINES")
		fmt.Fprintln(w, ".PP")
		for _, d := range page.Defines {
			if d.Name != strings.ToUpper(d.Name) {
				continue
			}
			if d.Brief != "" {
				fmt.Fprintln(w, ".PP")
				fmt.Fprintln(w, d.Brief)
				fmt.Fprintln(w, ".br")
			}
			if d.Description != "" {
				fmt.Fprintln(w, ".br")
				fmt.Fprintln(w, d.Description)
				fmt.Fprintln(w, ".br")
			}
			fmt.Fprintf(w, "#define %s %s\n", d.Name, d.Initializer)
			fmt.Fprintln(w, ".br")
		}
	}

	if page.Notes != "" {
		fmt.Fprintln(w, ".SH NOTE")
		fmt.Fprintln(w, ".PP")
		writeLongText(w, page.Notes)
	}

	fmt.Fprintln(w, ".SH SEE ALSO")
	fmt.Fprintln(w, ".PP")
	fmt.Fprintln(w, ".nh")
	fmt.Fprintln(w, ".ad l")
	for i, other := range all {
		if other.Name == page.Name {
			continue
		}
		delim := ", "
		if i == len(all)-1 {
			delim = ""
		}
		fmt.Fprintf(w, "\\fI%s\\fP(%d)%s\n", other.Name, opts.Section, delim)
	}

	if opts.Copyright != "" {
		fmt.Fprintln(w, ".SH COPYRIGHT")
		fmt.Fprintln(w, ".PP")
		fmt.Fprintln(w, opts.Copyright)
	}
}

// writeStructure prints a struct or enum body with aligned members.
// Unlike in the synopsis, every member comment that fits goes inline.
func writeStructure(w io.Writer, s domain.Structure) {
	if s.Kind == domain.KindUnresolved {
		// Placeholders are never shown.
		return
	}
	if s.Brief != "" {
		fmt.Fprintln(w, s.Brief)
	}
	if s.Description != "" {
		fmt.Fprintln(w, s.Description)
	}

	typeWidth, nameWidth := paramWidths(s.Members, false)

	fmt.Fprintln(w)
	fmt.Fprintln(w, ".nf")
	fmt.Fprintln(w, "\\fB")
	fmt.Fprintf(w, "%s %s {\n", s.Kind, s.Name)

	for i, m := range s.Members {
		delim := ";"
		if i == len(s.Members)-1 {
			delim = ""
		}
		writeParam(w, m, typeWidth, nameWidth, false, delim)
	}

	fmt.Fprintln(w, "};\\fP")
	fmt.Fprintln(w, ".PP")
	fmt.Fprintln(w, ".fi")
}

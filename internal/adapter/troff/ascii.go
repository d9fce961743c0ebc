package troff

import (
	"fmt"
	"io"

	"doxy2man/internal/domain"
)

// RenderText dumps one page as plain text, mainly for eyeballing what
// the builder collected.
func RenderText(w io.Writer, page domain.Page, structures map[string]domain.Structure) {
	fmt.Fprintf(w, "FUNCTION %s %s %s\n", page.RetType, page.Name, page.ArgsString)
	for _, p := range page.Params {
		if p.RefID != "" {
			fmt.Fprintf(w, "  PARAM: %s %s%s (refid=%s)\n", p.Type, p.Name, p.Args, p.RefID)
		} else {
			fmt.Fprintf(w, "  PARAM: %s %s%s\n", p.Type, p.Name, p.Args)
		}
		if p.Brief != "" {
			fmt.Fprintf(w, "  PARAM brief: %s\n", p.Brief)
		}
		if p.Desc != "" {
			fmt.Fprintf(w, "  PARAM desc: %s\n", p.Desc)
		}
	}
	fmt.Fprintf(w, "BRIEF: %s\n", page.Brief)
	fmt.Fprintf(w, "DETAIL: %s\n", page.Detail)

	for _, refid := range page.StructRefs {
		s, ok := structures[refid]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "STRUCTURE: %s\n", s.Name)
		if s.Brief != "" {
			fmt.Fprintf(w, "           %s\n", s.Brief)
		}
		if s.Description != "" {
			fmt.Fprintf(w, "           %s\n", s.Description)
		}
		for _, m := range s.Members {
			fmt.Fprintf(w, "   MEMB: %s %s%s\n", m.Type, m.Name, m.Args)
		}
	}

	fmt.Fprintln(w, "----------------------")
}

// Package troff turns the completed document model into man-page text.
// It treats the model as read-only; every Render* function writes one
// artifact to the supplied writer.
package troff

// Options is the resolved formatting configuration handed in by the
// driver.
type Options struct {
	// PrintParams enables the PARAMETERS section.
	PrintParams bool
	// PrintGeneral enables emission of the whole-document page, which
	// is otherwise suppressed.
	PrintGeneral bool
	// Section is the man section number pages are written for.
	Section int
	// Header is the page header text, e.g. "Programmer's Manual".
	Header string
	// Package is the package name shown in the title line.
	Package string
	// HeaderFile is the include file name; it also keys the
	// whole-document page.
	HeaderFile string
	// HeaderPrefix prefixes HeaderFile in the #include line, e.g. "qb/".
	HeaderPrefix string
	// Date is printed in the title line.
	Date string
	// Copyright, when non-empty, becomes a trailing COPYRIGHT section.
	Copyright string
}

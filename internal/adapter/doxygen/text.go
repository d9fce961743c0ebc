package doxygen

import (
	"io"
	"strings"
	"unicode"

	"doxy2man/internal/port"
)

// trimRight removes trailing whitespace at a recursive boundary. Inner
// fragments are merged untrimmed; only the collected whole is trimmed.
func trimRight(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// collectText drains events until the close of stop, translating inline
// markup to troff escapes and concatenating character data. It is the
// generic collector every other procedure delegates unknown tags to.
func (b *Builder) collectText(stop string) (string, error) {
	var text strings.Builder
	for {
		ev, err := b.src.Next()
		if err != nil {
			return "", err
		}
		switch ev.Kind {
		case port.EventStart:
			frag, err := b.standardElement(ev)
			if err != nil {
				return "", err
			}
			text.WriteString(frag)
		case port.EventText:
			text.WriteString(ev.Text)
		case port.EventEnd:
			if ev.Name == stop {
				return trimRight(text.String()), nil
			}
		case port.EventEOF:
			return "", io.ErrUnexpectedEOF
		}
	}
}

// standardElement translates one inline-markup element into troff text.
// Tags it does not recognize are left unconsumed so that their nested
// character data still surfaces to the calling collector.
func (b *Builder) standardElement(ev port.Event) (string, error) {
	switch ev.Name {
	case "para", "computeroutput", "codeline", "parameternamelist",
		"parameteritem", "parameterlist", "parameterdescription",
		"parametername", "ref", "simplesect":
		return b.collectText(ev.Name)
	case "sp":
		return " ", nil
	case "emphasis":
		inner, err := b.collectText(ev.Name)
		if err != nil {
			return "", err
		}
		return "\\fB" + inner + "\\fR", nil
	case "highlight":
		inner, err := b.collectText(ev.Name)
		if err != nil {
			return "", err
		}
		if ev.Attr("class") != "normal" {
			return "\\fB" + inner + "\\fR", nil
		}
		return inner, nil
	case "programlisting":
		inner, err := b.collectText(ev.Name)
		if err != nil {
			return "", err
		}
		return "\n.nf\n" + inner + "\n.fi\n", nil
	case "itemizedlist":
		inner, err := b.collectText(ev.Name)
		if err != nil {
			return "", err
		}
		return "\n" + inner + "\n", nil
	case "listitem":
		inner, err := b.collectText(ev.Name)
		if err != nil {
			return "", err
		}
		return "\n* " + inner, nil
	case "note":
		inner, err := b.collectText(ev.Name)
		if err != nil {
			return "", err
		}
		return inner + "\n", nil
	case "xreftitle", "xrefdescription", "xrefsect":
		_, err := b.collectText(ev.Name)
		return "", err
	default:
		return "", nil
	}
}

// collectTextAndRef is collectText plus capture of the refid attribute
// of any ref element encountered along the way.
func (b *Builder) collectTextAndRef(stop string) (string, string, error) {
	var text strings.Builder
	var refid string
	for {
		ev, err := b.src.Next()
		if err != nil {
			return "", "", err
		}
		switch ev.Kind {
		case port.EventStart:
			if ev.Name == "ref" {
				refid = ev.Attr("refid")
				inner, err := b.collectText(ev.Name)
				if err != nil {
					return "", "", err
				}
				text.WriteString(inner)
				continue
			}
			frag, err := b.standardElement(ev)
			if err != nil {
				return "", "", err
			}
			text.WriteString(frag)
		case port.EventText:
			text.WriteString(ev.Text)
		case port.EventEnd:
			if ev.Name == stop {
				return trimRight(text.String()), refid, nil
			}
		case port.EventEOF:
			return "", "", io.ErrUnexpectedEOF
		}
	}
}

package doxygen

import (
	"encoding/xml"
	"io"

	"doxy2man/internal/port"
)

// eventSource adapts an encoding/xml token stream to port.EventSource.
// Comments, processing instructions and directives are dropped;
// whitespace arrives as ordinary text events.
type eventSource struct {
	dec *xml.Decoder
}

// NewEventSource returns an EventSource reading doxygen XML from r.
func NewEventSource(r io.Reader) port.EventSource {
	return &eventSource{dec: xml.NewDecoder(r)}
}

func (s *eventSource) Next() (port.Event, error) {
	for {
		tok, err := s.dec.Token()
		if err == io.EOF {
			return port.Event{Kind: port.EventEOF}, nil
		}
		if err != nil {
			return port.Event{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			ev := port.Event{Kind: port.EventStart, Name: t.Name.Local}
			for _, a := range t.Attr {
				ev.Attrs = append(ev.Attrs, port.Attr{Name: a.Name.Local, Value: a.Value})
			}
			return ev, nil
		case xml.CharData:
			return port.Event{Kind: port.EventText, Text: string(t)}, nil
		case xml.EndElement:
			return port.Event{Kind: port.EventEnd, Name: t.Name.Local}, nil
		}
	}
}

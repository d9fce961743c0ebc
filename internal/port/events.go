package port

// EventKind discriminates the structural events an EventSource yields.
type EventKind int

const (
	EventStart EventKind = iota
	EventText
	EventEnd
	EventEOF
)

// Attr is one attribute of an element-open event.
type Attr struct {
	Name  string
	Value string
}

// Event is a single structural event from a markup stream.
type Event struct {
	Kind  EventKind
	Name  string
	Attrs []Attr
	Text  string
}

// Attr returns the value of the named attribute, or "" if absent.
func (e Event) Attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// EventSource supplies a forward-only sequence of markup events. After
// the document ends it yields an EventEOF event; a stream that cannot
// produce its next event returns an error instead.
type EventSource interface {
	Next() (Event, error)
}

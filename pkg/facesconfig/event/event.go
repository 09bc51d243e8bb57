// Package event defines the parse events consumed by the dispatcher and the
// collaborators that produce them.
//
// A Source yields Open, Text and Close events (plus Comment and ProcInst,
// which only matter inside rich-text bodies) in document order and returns
// io.EOF once the document is exhausted. NewXMLSource adapts an XML byte
// stream; SliceSource replays events built in memory.
package event

import (
	"fmt"
	"io"
)

// Type is the type of a parse event.
type Type int

const (
	Open Type = iota + 1
	Close
	Text
	Comment
	ProcInst
)

// String returns the event type name.
func (t Type) String() string {
	switch t {
	case Open:
		return "open"
	case Close:
		return "close"
	case Text:
		return "text"
	case Comment:
		return "comment"
	case ProcInst:
		return "procinst"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// XMLNamespace is the namespace bound to the "xml" prefix.
const XMLNamespace = "http://www.w3.org/XML/1998/namespace"

// Attr is an element attribute. Space holds the resolved namespace, or ""
// for unqualified attributes.
type Attr struct {
	Space string
	Name  string
	Value string
}

// Event is one parse event. Name is the local element name for Open and
// Close, the target for ProcInst. Text carries character data, comment
// text or instruction data.
type Event struct {
	Type   Type
	Name   string
	Attrs  []Attr
	Text   string
	Line   int
	Column int
}

// Attr returns the value of the unqualified attribute name.
func (e Event) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Space == "" && a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Lang returns the language tag of an element: the lang attribute, then
// xml:lang, then "".
func (e Event) Lang() string {
	if v, ok := e.Attr("lang"); ok {
		return v
	}
	for _, a := range e.Attrs {
		if a.Name == "lang" && (a.Space == XMLNamespace || a.Space == "xml") {
			return a.Value
		}
	}
	return ""
}

// Source yields parse events in document order. Next returns io.EOF after
// the last event.
type Source interface {
	Next() (Event, error)
}

// SliceSource replays a fixed list of events.
type SliceSource struct {
	events []Event
	pos    int
}

// NewSliceSource returns a Source over events.
func NewSliceSource(events ...Event) *SliceSource {
	return &SliceSource{events: events}
}

// Next implements Source.
func (s *SliceSource) Next() (Event, error) {
	if s.pos >= len(s.events) {
		return Event{}, io.EOF
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, nil
}

// OpenEvent builds an Open event. attrs alternate name and value.
func OpenEvent(name string, attrs ...string) Event {
	ev := Event{Type: Open, Name: name}
	for i := 0; i+1 < len(attrs); i += 2 {
		ev.Attrs = append(ev.Attrs, Attr{Name: attrs[i], Value: attrs[i+1]})
	}
	return ev
}

// CloseEvent builds a Close event.
func CloseEvent(name string) Event {
	return Event{Type: Close, Name: name}
}

// TextEvent builds a Text event.
func TextEvent(text string) Event {
	return Event{Type: Text, Text: text}
}

// Element builds the events of a leaf element holding text.
func Element(name, text string) []Event {
	return []Event{OpenEvent(name), TextEvent(text), CloseEvent(name)}
}

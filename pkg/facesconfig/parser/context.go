package parser

import (
	stderrors "errors"
	"fmt"
	"strings"

	fcErrors "mercator-hq/facesconfig/pkg/facesconfig/errors"
	"mercator-hq/facesconfig/pkg/facesconfig/event"
	"mercator-hq/facesconfig/pkg/facesconfig/model"
)

// Context is the state of one dispatcher pass over one document. It is
// threaded through every rule handler and never shared between documents.
type Context struct {
	Document string

	observer Observer
	frames   []*frame
	stack    []model.Entity
	root     *model.FacesConfig

	// skip counts open elements inside an ignored subtree.
	skip int
	// raw is the body writer of the enclosing rich-text element, if any.
	raw *rawWriter

	line, column int
}

// frame is one open element.
type frame struct {
	name string
	rule *Rule
	text strings.Builder
}

// NewContext returns an empty context for document. A nil observer is
// replaced by NoopObserver.
func NewContext(document string, observer Observer) *Context {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Context{Document: document, observer: observer}
}

// Top returns the entity on top of the stack, or nil.
func (c *Context) Top() model.Entity {
	if len(c.stack) == 0 {
		return nil
	}
	return c.stack[len(c.stack)-1]
}

// Depth returns the number of entities on the stack.
func (c *Context) Depth() int {
	return len(c.stack)
}

// Root returns the completed root entity, or nil before the root closes.
func (c *Context) Root() *model.FacesConfig {
	return c.root
}

// Path returns the current element path, e.g. "faces-config/component".
func (c *Context) Path() string {
	names := make([]string, len(c.frames))
	for i, f := range c.frames {
		names[i] = f.name
	}
	return strings.Join(names, "/")
}

func (c *Context) push(e model.Entity) {
	c.stack = append(c.stack, e)
	c.emit(OpPush, e)
}

func (c *Context) pop() model.Entity {
	e := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.emit(OpPop, e)
	return e
}

func (c *Context) emit(op Op, e model.Entity) {
	c.observer.Observe(Transition{
		Op:       op,
		Kind:     e.Kind(),
		Key:      model.DisplayKey(e),
		Path:     c.Path(),
		Document: c.Document,
	})
}

func (c *Context) location() fcErrors.Location {
	return fcErrors.Location{Document: c.Document, Line: c.line, Column: c.column}
}

// errorf builds an error located at the current event.
func (c *Context) errorf(errType fcErrors.ErrorType, format string, args ...any) *fcErrors.Error {
	return &fcErrors.Error{
		Type:     errType,
		Message:  fmt.Sprintf(format, args...),
		Location: c.location(),
		Path:     c.Path(),
	}
}

// locate fills in the position of errors raised by collaborators that do
// not know where they are.
func (c *Context) locate(err error) error {
	var e *fcErrors.Error
	if !stderrors.As(err, &e) {
		return err
	}
	if e.Location.Document == "" {
		e.Location.Document = c.Document
	}
	if e.Location.Line == 0 {
		e.Location.Line = c.line
		e.Location.Column = c.column
	}
	if e.Path == "" {
		e.Path = c.Path()
	}
	return err
}

// expect asserts that the stack top has the given kind.
func (c *Context) expect(kind model.Kind) *fcErrors.Error {
	top := c.Top()
	if top == nil {
		return c.errorf(fcErrors.ErrorTypeStructural, "element requires an enclosing %s", kind)
	}
	if top.Kind() != kind {
		return c.errorf(fcErrors.ErrorTypeStructural, "element requires an enclosing %s, found %s", kind, top.Kind())
	}
	return nil
}

// rawWriter serializes the body of a rich-text element.
type rawWriter struct {
	out   *strings.Builder
	depth int
	// pending is true while the last written start tag is still open,
	// so an immediate close can be written as an empty element.
	pending bool
}

func (w *rawWriter) open(ev event.Event) {
	w.flush()
	w.out.WriteString("<")
	w.out.WriteString(ev.Name)
	for _, a := range ev.Attrs {
		w.out.WriteString(" ")
		w.out.WriteString(a.Name)
		w.out.WriteString(`="`)
		w.out.WriteString(a.Value)
		w.out.WriteString(`"`)
	}
	w.pending = true
	w.depth++
}

func (w *rawWriter) text(s string) {
	if s == "" {
		return
	}
	w.flush()
	w.out.WriteString(s)
}

func (w *rawWriter) close(name string) {
	if w.pending {
		w.out.WriteString(" />")
		w.pending = false
	} else {
		w.out.WriteString("</")
		w.out.WriteString(name)
		w.out.WriteString(">")
	}
	w.depth--
}

func (w *rawWriter) flush() {
	if w.pending {
		w.out.WriteString(">")
		w.pending = false
	}
}

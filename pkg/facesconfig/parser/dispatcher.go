package parser

import (
	"context"
	"io"

	fcErrors "mercator-hq/facesconfig/pkg/facesconfig/errors"
	"mercator-hq/facesconfig/pkg/facesconfig/event"
	"mercator-hq/facesconfig/pkg/facesconfig/model"
)

// cancelCheckInterval is how many events are dispatched between checks of
// the run context.
const cancelCheckInterval = 256

// Run dispatches every event of src and returns the completed root.
func (t *RuleTable) Run(ctx context.Context, pc *Context, src event.Source) (*model.FacesConfig, error) {
	for n := 0; ; n++ {
		if n%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		ev, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, pc.locate(err)
		}
		if err := t.Dispatch(pc, ev); err != nil {
			return nil, err
		}
	}

	if len(pc.frames) > 0 {
		return nil, pc.errorf(fcErrors.ErrorTypeStructural, "document ended with %d open element(s)", len(pc.frames))
	}
	if pc.root == nil {
		return nil, pc.errorf(fcErrors.ErrorTypeStructural, "document has no %s root element", Root)
	}
	return pc.root, nil
}

// Dispatch feeds one event to the stack machine.
func (t *RuleTable) Dispatch(pc *Context, ev event.Event) error {
	pc.line, pc.column = ev.Line, ev.Column

	if pc.skip > 0 {
		switch ev.Type {
		case event.Open:
			pc.skip++
		case event.Close:
			pc.skip--
			if pc.skip == 0 {
				pc.frames = pc.frames[:len(pc.frames)-1]
			}
		}
		return nil
	}

	if pc.raw != nil {
		switch ev.Type {
		case event.Open:
			pc.raw.open(ev)
			return nil
		case event.Text:
			pc.raw.text(ev.Text)
			return nil
		case event.Close:
			if pc.raw.depth > 0 {
				pc.raw.close(ev.Name)
				return nil
			}
			pc.raw.flush()
			pc.raw = nil
		default:
			return pc.errorf(fcErrors.ErrorTypeUnsupported, "%s is not allowed in rich-text content", ev.Type)
		}
	}

	switch ev.Type {
	case event.Open:
		return t.open(pc, ev)
	case event.Close:
		return t.close(pc, ev)
	case event.Text:
		if n := len(pc.frames); n > 0 {
			pc.frames[n-1].text.WriteString(ev.Text)
		}
	}
	return nil
}

func (t *RuleTable) open(pc *Context, ev event.Event) error {
	parentPath := pc.Path()
	path := ev.Name
	if parentPath != "" {
		path = parentPath + "/" + ev.Name
	}

	rule, ok := t.Lookup(path)
	if !ok {
		if n := len(pc.frames); n > 0 && pc.frames[n-1].rule != nil && pc.frames[n-1].rule.Lax {
			pc.frames = append(pc.frames, &frame{name: ev.Name})
			pc.skip = 1
			return nil
		}
		err := pc.errorf(fcErrors.ErrorTypeStructural, "no rule for element <%s>", ev.Name)
		err.Path = path
		err.Suggestion = fcErrors.SuggestElement(ev.Name, t.Children(parentPath))
		return err
	}

	if rule.Parent == model.KindInvalid {
		if pc.Depth() != 0 || pc.root != nil {
			err := pc.errorf(fcErrors.ErrorTypeStructural, "<%s> must be the only document root", ev.Name)
			err.Path = path
			return err
		}
	} else if err := pc.expect(rule.Parent); err != nil {
		return pc.locate(withPath(err, path))
	}

	f := &frame{name: ev.Name, rule: rule}
	pc.frames = append(pc.frames, f)

	if rule.Skip {
		pc.skip = 1
		return nil
	}
	if rule.Begin != nil {
		if err := rule.Begin(pc, ev); err != nil {
			return pc.locate(err)
		}
	}
	if rule.Raw {
		pc.raw = &rawWriter{out: &f.text}
	}
	return nil
}

func (t *RuleTable) close(pc *Context, ev event.Event) error {
	n := len(pc.frames)
	if n == 0 {
		return pc.errorf(fcErrors.ErrorTypeMalformed, "unexpected </%s>", ev.Name)
	}
	f := pc.frames[n-1]
	if f.name != ev.Name {
		return pc.errorf(fcErrors.ErrorTypeMalformed, "</%s> closes <%s>", ev.Name, f.name)
	}

	if f.rule.End != nil {
		if err := f.rule.End(pc, f.text.String()); err != nil {
			return pc.locate(err)
		}
	}
	pc.frames = pc.frames[:n-1]
	return nil
}

func withPath(err *fcErrors.Error, path string) *fcErrors.Error {
	err.Path = path
	return err
}

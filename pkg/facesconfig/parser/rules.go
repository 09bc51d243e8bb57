package parser

import (
	"sort"
	"strings"

	fcErrors "mercator-hq/facesconfig/pkg/facesconfig/errors"
	"mercator-hq/facesconfig/pkg/facesconfig/event"
	"mercator-hq/facesconfig/pkg/facesconfig/merge"
	"mercator-hq/facesconfig/pkg/facesconfig/model"
)

// Rule handles one element path.
type Rule struct {
	// Parent is the kind the stack top must have when the element opens.
	// KindInvalid marks the document root, which requires an empty stack.
	Parent model.Kind

	// Begin runs when the element opens. Entity rules push here.
	Begin func(ctx *Context, ev event.Event) error
	// End runs when the element closes, with the text accumulated in its
	// body.
	End func(ctx *Context, text string) error

	// Raw captures the element body as serialized markup instead of
	// dispatching nested events.
	Raw bool
	// Skip ignores the element and its whole subtree.
	Skip bool
	// Lax skips unregistered child elements instead of failing.
	Lax bool
}

// RuleTable maps full element paths to rules. It is read-only once built
// and safe for concurrent use.
type RuleTable struct {
	rules    map[string]*Rule
	children map[string][]string
}

// NewRuleTable returns an empty table.
func NewRuleTable() *RuleTable {
	return &RuleTable{
		rules:    make(map[string]*Rule),
		children: make(map[string][]string),
	}
}

// Add registers rule for path, replacing any previous rule.
func (t *RuleTable) Add(path string, rule Rule) {
	if _, exists := t.rules[path]; !exists {
		parent, name := splitPath(path)
		t.children[parent] = append(t.children[parent], name)
	}
	r := rule
	t.rules[path] = &r
}

// Lookup returns the rule registered for path.
func (t *RuleTable) Lookup(path string) (*Rule, bool) {
	r, ok := t.rules[path]
	return r, ok
}

// Children returns the element names registered directly below path, sorted.
func (t *RuleTable) Children(path string) []string {
	names := append([]string(nil), t.children[path]...)
	sort.Strings(names)
	return names
}

// Paths returns every registered path, sorted.
func (t *RuleTable) Paths() []string {
	paths := make([]string, 0, len(t.rules))
	for p := range t.rules {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of registered paths.
func (t *RuleTable) Len() int {
	return len(t.rules)
}

func splitPath(path string) (parent, name string) {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}

// entityRule pushes a fresh entity of kind on open. On close it pops the
// entity, validates it and attaches it to the new stack top, merging it
// into an existing sibling when the key is already taken.
func entityRule(parent, kind model.Kind, setup func(e model.Entity, ev event.Event), text func(e model.Entity, s string)) Rule {
	return Rule{
		Parent: parent,
		Begin: func(ctx *Context, ev event.Event) error {
			e := model.New(kind)
			if setup != nil {
				setup(e, ev)
			}
			ctx.push(e)
			return nil
		},
		End: func(ctx *Context, s string) error {
			if text != nil {
				text(ctx.Top(), s)
			}
			return ctx.complete()
		},
	}
}

// field applies the trimmed body text to the stack top.
func field[T model.Entity](parent model.Kind, set func(e T, v string)) Rule {
	return Rule{
		Parent: parent,
		End: func(ctx *Context, s string) error {
			e, ok := ctx.Top().(T)
			if !ok {
				return ctx.errorf(fcErrors.ErrorTypeStructural, "unexpected %s on stack", ctx.Top().Kind())
			}
			set(e, strings.TrimSpace(s))
			return nil
		},
	}
}

// flag applies a boolean body to the stack top. An empty body counts as
// true, so both <required/> and <required>true</required> set the flag.
func flag[T model.Entity](parent model.Kind, set func(e T, v bool)) Rule {
	return field(parent, func(e T, v string) {
		set(e, v == "" || strings.EqualFold(v, "true"))
	})
}

// container registers an element that holds other elements but carries no
// data of its own.
func container(parent model.Kind, lax bool) Rule {
	return Rule{Parent: parent, Lax: lax}
}

// skip ignores a known element the graph does not model.
func skip(parent model.Kind) Rule {
	return Rule{Parent: parent, Skip: true}
}

func langInit(e model.Entity, ev event.Event) {
	switch v := e.(type) {
	case *model.Description:
		v.Lang = ev.Lang()
	case *model.DisplayName:
		v.Lang = ev.Lang()
	case *model.Icon:
		v.Lang = ev.Lang()
	}
}

// complete pops the finished entity, validates it and hands it to its
// parent, or records it as the root.
func (c *Context) complete() error {
	e := c.pop()
	if err := merge.Validate(e); err != nil {
		return c.locate(err)
	}

	if c.Depth() == 0 {
		root, ok := e.(*model.FacesConfig)
		if !ok {
			return c.errorf(fcErrors.ErrorTypeStructural, "root element must be faces-config, not %s", e.Kind())
		}
		c.root = root
		return nil
	}

	outcome, err := merge.Attach(c.Top(), e)
	if err != nil {
		return c.locate(err)
	}
	if outcome == merge.Merged {
		c.emit(OpMerge, e)
	} else {
		c.emit(OpAttach, e)
	}
	return nil
}

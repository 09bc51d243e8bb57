package parser

import "mercator-hq/facesconfig/pkg/facesconfig/model"

// Op is a dispatcher transition reported to observers.
type Op string

const (
	OpPush   Op = "push"   // entity created and pushed
	OpPop    Op = "pop"    // entity completed and popped
	OpAttach Op = "attach" // completed entity added to its parent
	OpMerge  Op = "merge"  // completed entity folded into an existing sibling or the graph
)

// Transition describes one stack machine transition.
type Transition struct {
	Op       Op
	Kind     model.Kind
	Key      string
	Path     string
	Document string
}

// Observer receives dispatcher transitions. Observers are called
// synchronously from the dispatching goroutine; with parallel dispatch,
// from several goroutines at once.
type Observer interface {
	Observe(t Transition)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(t Transition)

// Observe implements Observer.
func (f ObserverFunc) Observe(t Transition) { f(t) }

// NoopObserver discards every transition.
type NoopObserver struct{}

// Observe implements Observer.
func (NoopObserver) Observe(Transition) {}

type multiObserver []Observer

func (m multiObserver) Observe(t Transition) {
	for _, o := range m {
		o.Observe(t)
	}
}

// Observers fans transitions out to every non-nil observer, in order.
func Observers(observers ...Observer) Observer {
	var m multiObserver
	for _, o := range observers {
		if o != nil {
			m = append(m, o)
		}
	}
	switch len(m) {
	case 0:
		return NoopObserver{}
	case 1:
		return m[0]
	}
	return m
}

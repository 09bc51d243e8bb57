package model

// WalkFunc is called for every entity visited by Walk. Returning an error
// stops the walk.
type WalkFunc func(e Entity) error

// Walk visits e and all of its descendants depth-first, parents before
// children, in collection order.
func Walk(e Entity, fn WalkFunc) error {
	if e == nil {
		return nil
	}
	if err := fn(e); err != nil {
		return err
	}
	for _, child := range children(e) {
		if err := Walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of entities of each kind reachable from e.
func Count(e Entity) map[Kind]int {
	counts := make(map[Kind]int)
	_ = Walk(e, func(e Entity) error {
		counts[e.Kind()]++
		return nil
	})
	return counts
}

func children(e Entity) []Entity {
	var out []Entity
	if fh, ok := e.(FeatureHolder); ok {
		f := fh.Features()
		out = appendAll(out, f.Descriptions)
		out = appendAll(out, f.DisplayNames)
		out = appendAll(out, f.Icons)
	}

	switch v := e.(type) {
	case *FacesConfig:
		if v.Application != nil {
			out = append(out, v.Application)
		}
		if v.Factory != nil {
			out = append(out, v.Factory)
		}
		if v.Lifecycle != nil {
			out = append(out, v.Lifecycle)
		}
		out = appendAll(out, v.Components)
		out = appendAll(out, v.Converters)
		out = appendAll(out, v.Validators)
		out = appendAll(out, v.ManagedBeans)
		out = appendAll(out, v.NavigationRules)
		out = appendAll(out, v.ReferencedBeans)
		out = appendAll(out, v.RenderKits)
	case *Application:
		if v.LocaleConfig != nil {
			out = append(out, v.LocaleConfig)
		}
	case *Component:
		out = appendAll(out, v.Attributes)
		out = appendAll(out, v.Properties)
		out = appendAll(out, v.Facets)
	case *Converter:
		out = appendAll(out, v.Attributes)
		out = appendAll(out, v.Properties)
	case *Validator:
		out = appendAll(out, v.Attributes)
		out = appendAll(out, v.Properties)
	case *ManagedBean:
		out = appendAll(out, v.ManagedProperties)
		if v.ListEntries != nil {
			out = append(out, v.ListEntries)
		}
		if v.MapEntries != nil {
			out = append(out, v.MapEntries)
		}
	case *ManagedProperty:
		if v.ListEntries != nil {
			out = append(out, v.ListEntries)
		}
		if v.MapEntries != nil {
			out = append(out, v.MapEntries)
		}
	case *MapEntries:
		out = appendAll(out, v.Entries)
	case *NavigationRule:
		out = appendAll(out, v.Cases)
	case *RenderKit:
		out = appendAll(out, v.Renderers)
	case *Renderer:
		out = appendAll(out, v.Attributes)
		out = appendAll(out, v.Facets)
	}
	return out
}

func appendAll[T Entity](out []Entity, items []T) []Entity {
	for _, item := range items {
		out = append(out, item)
	}
	return out
}

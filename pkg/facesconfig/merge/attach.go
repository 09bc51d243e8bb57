package merge

import (
	fcErrors "mercator-hq/facesconfig/pkg/facesconfig/errors"
	"mercator-hq/facesconfig/pkg/facesconfig/model"
)

// Outcome reports what Attach did with a child.
type Outcome int

const (
	// Attached means the child was added to its parent as is.
	Attached Outcome = iota + 1
	// Merged means the child was folded into an existing sibling.
	Merged
)

// String returns "attach" or "merge".
func (o Outcome) String() string {
	switch o {
	case Attached:
		return "attach"
	case Merged:
		return "merge"
	default:
		return "unknown"
	}
}

// Attach adds a completed child entity to its parent. A keyed child whose
// key is already present, or a single substructure the parent already has,
// is merged into the existing entity instead.
func Attach(parent, child model.Entity) (Outcome, error) {
	switch c := child.(type) {
	case *model.Description:
		if fh, ok := parent.(model.FeatureHolder); ok {
			return keyed(c, fh.Features().AddDescription)
		}
	case *model.DisplayName:
		if fh, ok := parent.(model.FeatureHolder); ok {
			return keyed(c, fh.Features().AddDisplayName)
		}
	case *model.Icon:
		if fh, ok := parent.(model.FeatureHolder); ok {
			return keyed(c, fh.Features().AddIcon)
		}
	case *model.Attribute:
		if h, ok := parent.(model.AttributeHolder); ok {
			return keyed(c, h.AddAttribute)
		}
	case *model.Property:
		if h, ok := parent.(model.PropertyHolder); ok {
			return keyed(c, h.AddProperty)
		}
	case *model.Facet:
		if h, ok := parent.(model.FacetHolder); ok {
			return keyed(c, h.AddFacet)
		}
	}

	switch p := parent.(type) {
	case *model.FacesConfig:
		switch c := child.(type) {
		case *model.Application:
			if p.Application == nil {
				p.Application = c
				return Attached, nil
			}
			return merged(p.Application, c)
		case *model.Factory:
			if p.Factory == nil {
				p.Factory = c
				return Attached, nil
			}
			return merged(p.Factory, c)
		case *model.Lifecycle:
			if p.Lifecycle == nil {
				p.Lifecycle = c
				return Attached, nil
			}
			return merged(p.Lifecycle, c)
		case *model.Component:
			return keyed(c, p.AddComponent)
		case *model.Converter:
			return keyed(c, p.AddConverter)
		case *model.Validator:
			return keyed(c, p.AddValidator)
		case *model.ManagedBean:
			return keyed(c, p.AddManagedBean)
		case *model.NavigationRule:
			return keyed(c, p.AddNavigationRule)
		case *model.ReferencedBean:
			return keyed(c, p.AddReferencedBean)
		case *model.RenderKit:
			return keyed(c, p.AddRenderKit)
		}
	case *model.Application:
		if c, ok := child.(*model.LocaleConfig); ok {
			if p.LocaleConfig == nil {
				p.LocaleConfig = c
				return Attached, nil
			}
			return merged(p.LocaleConfig, c)
		}
	case *model.ManagedBean:
		switch c := child.(type) {
		case *model.ManagedProperty:
			out, err := keyed(c, p.AddManagedProperty)
			if err != nil {
				return out, err
			}
			return out, Validate(p)
		case *model.ListEntries:
			if p.ListEntries == nil {
				p.ListEntries = c
				return Attached, Validate(p)
			}
			return merged(p.ListEntries, c)
		case *model.MapEntries:
			if p.MapEntries == nil {
				p.MapEntries = c
				return Attached, Validate(p)
			}
			return merged(p.MapEntries, c)
		}
	case *model.ManagedProperty:
		switch c := child.(type) {
		case *model.ListEntries:
			if p.ListEntries == nil {
				p.ListEntries = c
				return Attached, nil
			}
			return merged(p.ListEntries, c)
		case *model.MapEntries:
			if p.MapEntries == nil {
				p.MapEntries = c
				return Attached, nil
			}
			return merged(p.MapEntries, c)
		}
	case *model.MapEntries:
		if c, ok := child.(*model.MapEntry); ok {
			p.Entries = append(p.Entries, c)
			return Attached, nil
		}
	case *model.NavigationRule:
		if c, ok := child.(*model.NavigationCase); ok {
			p.Cases = append(p.Cases, c)
			return Attached, nil
		}
	case *model.RenderKit:
		if c, ok := child.(*model.Renderer); ok {
			return keyed(c, p.AddRenderer)
		}
	}

	return 0, fcErrors.New(fcErrors.ErrorTypeStructural, "%s cannot be attached to %s", child.Kind(), parent.Kind())
}

func keyed[T model.Keyed](child T, add func(T) (T, bool)) (Outcome, error) {
	existing, added := add(child)
	if added {
		return Attached, nil
	}
	return merged(existing, child)
}

func merged(existing, child model.Entity) (Outcome, error) {
	if err := Merge(existing, child); err != nil {
		return Merged, err
	}
	return Merged, nil
}

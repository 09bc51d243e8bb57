package model

import "sort"

// Entity is a node of the configuration graph.
type Entity interface {
	Kind() Kind
	entity()
}

// Keyed is implemented by entities that carry an identity key.
type Keyed interface {
	Entity
	Key() string
}

// FeatureHolder is implemented by entities carrying descriptions,
// display names and icons.
type FeatureHolder interface {
	Entity
	Features() *Feature
}

// AttributeHolder is implemented by entities owning attributes.
type AttributeHolder interface {
	Entity
	Attribute(name string) *Attribute
	AddAttribute(a *Attribute) (*Attribute, bool)
}

// PropertyHolder is implemented by entities owning properties.
type PropertyHolder interface {
	Entity
	Property(name string) *Property
	AddProperty(p *Property) (*Property, bool)
}

// FacetHolder is implemented by entities owning facets.
type FacetHolder interface {
	Entity
	Facet(name string) *Facet
	AddFacet(f *Facet) (*Facet, bool)
}

// KeyOf returns the identity key of e, or "" for unkeyed entities.
func KeyOf(e Entity) string {
	if k, ok := e.(Keyed); ok {
		return k.Key()
	}
	return ""
}

// DisplayKey returns the identity key of e in printable form.
func DisplayKey(e Entity) string {
	if d, ok := e.(interface{ DisplayKey() string }); ok {
		return d.DisplayKey()
	}
	return KeyOf(e)
}

// New returns an empty entity of the given kind, or nil for KindInvalid.
func New(kind Kind) Entity {
	switch kind {
	case KindFacesConfig:
		return NewFacesConfig()
	case KindApplication:
		return &Application{}
	case KindLocaleConfig:
		return &LocaleConfig{}
	case KindFactory:
		return &Factory{}
	case KindLifecycle:
		return &Lifecycle{}
	case KindComponent:
		return &Component{}
	case KindFacet:
		return &Facet{}
	case KindAttribute:
		return NewAttribute("")
	case KindProperty:
		return NewProperty("")
	case KindConverter:
		return &Converter{}
	case KindValidator:
		return &Validator{}
	case KindManagedBean:
		return &ManagedBean{}
	case KindManagedProperty:
		return &ManagedProperty{}
	case KindListEntries:
		return &ListEntries{}
	case KindMapEntries:
		return &MapEntries{}
	case KindMapEntry:
		return &MapEntry{}
	case KindNavigationRule:
		return &NavigationRule{}
	case KindNavigationCase:
		return &NavigationCase{}
	case KindReferencedBean:
		return &ReferencedBean{}
	case KindRenderKit:
		return &RenderKit{}
	case KindRenderer:
		return &Renderer{}
	case KindDescription:
		return &Description{}
	case KindDisplayName:
		return &DisplayName{}
	case KindIcon:
		return &Icon{}
	}
	return nil
}

// insertKeyed adds v to the key-sorted slice s. If an element with the same
// key is already present it is returned with false and s is left untouched.
func insertKeyed[T Keyed](s *[]T, v T) (T, bool) {
	key := v.Key()
	i := sort.Search(len(*s), func(i int) bool { return (*s)[i].Key() >= key })
	if i < len(*s) && (*s)[i].Key() == key {
		return (*s)[i], false
	}
	*s = append(*s, v)
	copy((*s)[i+1:], (*s)[i:])
	(*s)[i] = v
	return v, true
}

func findKeyed[T Keyed](s []T, key string) (T, bool) {
	i := sort.Search(len(s), func(i int) bool { return s[i].Key() >= key })
	if i < len(s) && s[i].Key() == key {
		return s[i], true
	}
	var zero T
	return zero, false
}

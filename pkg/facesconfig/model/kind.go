package model

// Kind identifies the concrete type of an entity.
type Kind int

// Entity kinds. The set is closed.
const (
	KindInvalid Kind = iota
	KindFacesConfig
	KindApplication
	KindLocaleConfig
	KindFactory
	KindLifecycle
	KindComponent
	KindFacet
	KindAttribute
	KindProperty
	KindConverter
	KindValidator
	KindManagedBean
	KindManagedProperty
	KindListEntries
	KindMapEntries
	KindMapEntry
	KindNavigationRule
	KindNavigationCase
	KindReferencedBean
	KindRenderKit
	KindRenderer
	KindDescription
	KindDisplayName
	KindIcon
)

var kindNames = [...]string{
	KindInvalid:         "Invalid",
	KindFacesConfig:     "FacesConfig",
	KindApplication:     "Application",
	KindLocaleConfig:    "LocaleConfig",
	KindFactory:         "Factory",
	KindLifecycle:       "Lifecycle",
	KindComponent:       "Component",
	KindFacet:           "Facet",
	KindAttribute:       "Attribute",
	KindProperty:        "Property",
	KindConverter:       "Converter",
	KindValidator:       "Validator",
	KindManagedBean:     "ManagedBean",
	KindManagedProperty: "ManagedProperty",
	KindListEntries:     "ListEntries",
	KindMapEntries:      "MapEntries",
	KindMapEntry:        "MapEntry",
	KindNavigationRule:  "NavigationRule",
	KindNavigationCase:  "NavigationCase",
	KindReferencedBean:  "ReferencedBean",
	KindRenderKit:       "RenderKit",
	KindRenderer:        "Renderer",
	KindDescription:     "Description",
	KindDisplayName:     "DisplayName",
	KindIcon:            "Icon",
}

// String returns the kind name, e.g. "ManagedBean".
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Invalid"
	}
	return kindNames[k]
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames)-1)
	for k := KindFacesConfig; int(k) < len(kindNames); k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

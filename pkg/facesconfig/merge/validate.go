package merge

import (
	fcErrors "mercator-hq/facesconfig/pkg/facesconfig/errors"
	"mercator-hq/facesconfig/pkg/facesconfig/model"
)

// Validate checks the invariants of a single entity: required identity
// keys and mutually exclusive field groups. Children are not visited.
func Validate(e model.Entity) error {
	switch v := e.(type) {
	case *model.Component:
		return require(v, v.Type, "component-type")
	case *model.Facet:
		return require(v, v.Name, "facet-name")
	case *model.Attribute:
		return require(v, v.Name, "attribute-name")
	case *model.Property:
		return require(v, v.Name, "property-name")
	case *model.Converter:
		if v.ID == "" && v.ForClass == "" {
			return invalid(v, "converter-id or converter-for-class is required")
		}
	case *model.Validator:
		return require(v, v.ID, "validator-id")
	case *model.ReferencedBean:
		return require(v, v.Name, "referenced-bean-name")
	case *model.Renderer:
		if err := require(v, v.Family, "component-family"); err != nil {
			return err
		}
		return require(v, v.Type, "renderer-type")
	case *model.ManagedBean:
		return validateManagedBean(v)
	case *model.ManagedProperty:
		return validateManagedProperty(v)
	case *model.MapEntry:
		if v.Key == "" {
			return invalid(v, "key is required")
		}
		if v.Value != nil && v.NullValue {
			return invalid(v, "value and null-value are mutually exclusive")
		}
	}
	return nil
}

func validateManagedBean(b *model.ManagedBean) error {
	if err := require(b, b.Name, "managed-bean-name"); err != nil {
		return err
	}

	configured := 0
	if len(b.ManagedProperties) > 0 {
		configured++
	}
	if b.ListEntries != nil {
		configured++
	}
	if b.MapEntries != nil {
		configured++
	}
	if configured > 1 {
		return invalid(b, "managed-property, list-entries and map-entries are mutually exclusive")
	}
	return nil
}

func validateManagedProperty(p *model.ManagedProperty) error {
	if err := require(p, p.Name, "property-name"); err != nil {
		return err
	}

	if p.ListEntries != nil {
		if p.MapEntries != nil {
			return invalid(p, "list-entries and map-entries are mutually exclusive")
		}
		if p.Value != nil {
			return invalid(p, "list-entries and value are mutually exclusive")
		}
		if p.NullValue {
			return invalid(p, "list-entries and null-value are mutually exclusive")
		}
		return nil
	}

	if p.MapEntries != nil {
		if p.Value != nil {
			return invalid(p, "map-entries and value are mutually exclusive")
		}
		if p.NullValue {
			return invalid(p, "map-entries and null-value are mutually exclusive")
		}
		return nil
	}

	if p.Value != nil && p.NullValue {
		return invalid(p, "value and null-value are mutually exclusive")
	}
	if p.Value == nil && !p.NullValue {
		return invalid(p, "one of value, null-value, list-entries or map-entries is required")
	}
	return nil
}

func require(e model.Entity, value, element string) error {
	if value == "" {
		return invalid(e, element+" is required")
	}
	return nil
}

func invalid(e model.Entity, message string) error {
	return fcErrors.Validation(e.Kind().String(), model.DisplayKey(e), "%s", message)
}

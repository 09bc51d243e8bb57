package merge

import (
	"errors"
	"testing"

	fcErrors "mercator-hq/facesconfig/pkg/facesconfig/errors"
	"mercator-hq/facesconfig/pkg/facesconfig/model"
)

func TestValidate_ManagedProperty(t *testing.T) {
	tests := []struct {
		name    string
		prop    *model.ManagedProperty
		wantErr bool
	}{
		{"value", &model.ManagedProperty{Name: "p", Value: strPtr("1")}, false},
		{"empty value", &model.ManagedProperty{Name: "p", Value: strPtr("")}, false},
		{"null", &model.ManagedProperty{Name: "p", NullValue: true}, false},
		{"list", &model.ManagedProperty{Name: "p", ListEntries: &model.ListEntries{}}, false},
		{"map", &model.ManagedProperty{Name: "p", MapEntries: &model.MapEntries{}}, false},
		{"none", &model.ManagedProperty{Name: "p"}, true},
		{"value and list", &model.ManagedProperty{Name: "p", Value: strPtr("1"), ListEntries: &model.ListEntries{}}, true},
		{"value and null", &model.ManagedProperty{Name: "p", Value: strPtr("1"), NullValue: true}, true},
		{"list and map", &model.ManagedProperty{Name: "p", ListEntries: &model.ListEntries{}, MapEntries: &model.MapEntries{}}, true},
		{"map and null", &model.ManagedProperty{Name: "p", NullValue: true, MapEntries: &model.MapEntries{}}, true},
		{"missing name", &model.ManagedProperty{NullValue: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.prop)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !fcErrors.IsType(err, fcErrors.ErrorTypeValidation) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestValidate_IdentifiesEntity(t *testing.T) {
	err := Validate(&model.ManagedProperty{Name: "items"})

	var perr *fcErrors.Error
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if perr.Kind != "ManagedProperty" {
		t.Errorf("Kind = %q, want %q", perr.Kind, "ManagedProperty")
	}
	if perr.Key != "items" {
		t.Errorf("Key = %q, want %q", perr.Key, "items")
	}
}

func TestValidate_RequiredKeys(t *testing.T) {
	tests := []struct {
		name   string
		entity model.Entity
	}{
		{"component", &model.Component{}},
		{"attribute", model.NewAttribute("")},
		{"property", model.NewProperty("")},
		{"facet", &model.Facet{}},
		{"converter", &model.Converter{Class: "c"}},
		{"validator", &model.Validator{}},
		{"managed bean", &model.ManagedBean{}},
		{"referenced bean", &model.ReferencedBean{}},
		{"renderer family", &model.Renderer{Type: "t"}},
		{"renderer type", &model.Renderer{Family: "f"}},
		{"map entry", &model.MapEntry{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.entity); !fcErrors.IsType(err, fcErrors.ErrorTypeValidation) {
				t.Errorf("Validate() = %v, want validation error", err)
			}
		})
	}

	if err := Validate(&model.NavigationRule{}); err != nil {
		t.Errorf("navigation rule without view id should be valid: %v", err)
	}
	if err := Validate(&model.Converter{ForClass: "java.lang.Long"}); err != nil {
		t.Errorf("converter for class should be valid: %v", err)
	}
}

package model

// Component describes a UI component type.
type Component struct {
	Feature

	Type              string
	Class             string
	BaseComponentType string
	Family            string
	RendererType      string

	Attributes []*Attribute
	Properties []*Property
	Facets     []*Facet
}

func (*Component) Kind() Kind { return KindComponent }
func (*Component) entity() {}

// Key returns the component type.
func (c *Component) Key() string { return c.Type }

// Attribute returns the attribute named name, or nil.
func (c *Component) Attribute(name string) *Attribute {
	v, _ := findKeyed(c.Attributes, name)
	return v
}

// AddAttribute adds a unless an attribute with the same name exists.
func (c *Component) AddAttribute(a *Attribute) (*Attribute, bool) {
	return insertKeyed(&c.Attributes, a)
}

// Property returns the property named name, or nil.
func (c *Component) Property(name string) *Property {
	v, _ := findKeyed(c.Properties, name)
	return v
}

// AddProperty adds p unless a property with the same name exists.
func (c *Component) AddProperty(p *Property) (*Property, bool) {
	return insertKeyed(&c.Properties, p)
}

// Facet returns the facet named name, or nil.
func (c *Component) Facet(name string) *Facet {
	v, _ := findKeyed(c.Facets, name)
	return v
}

// AddFacet adds f unless a facet with the same name exists.
func (c *Component) AddFacet(f *Facet) (*Facet, bool) {
	return insertKeyed(&c.Facets, f)
}

// Facet is a named child slot of a component or renderer.
type Facet struct {
	Feature

	Name string
}

func (*Facet) Kind() Kind { return KindFacet }
func (*Facet) entity() {}
func (f *Facet) Key() string { return f.Name }

// Attribute is a generic attribute of a component, converter, validator or
// renderer.
type Attribute struct {
	Feature

	Name           string
	Class          string
	DefaultValue   string
	SuggestedValue string

	PassThrough     bool
	Required        bool
	DefaultBehavior bool
	// TagAttribute defaults to true; any contributor declaring it false
	// clears it for good.
	TagAttribute bool

	Behaviors []string
}

// NewAttribute returns an attribute with its defaults applied.
func NewAttribute(name string) *Attribute {
	return &Attribute{Name: name, TagAttribute: true}
}

func (*Attribute) Kind() Kind { return KindAttribute }
func (*Attribute) entity() {}
func (a *Attribute) Key() string { return a.Name }

// Property is a JavaBeans property of a component, converter or validator.
type Property struct {
	Feature

	Name           string
	Class          string
	DefaultValue   string
	SuggestedValue string

	PassThrough     bool
	ReadOnly        bool
	Required        bool
	DefaultBehavior bool
	TagAttribute    bool

	Behaviors []string
}

// NewProperty returns a property with its defaults applied.
func NewProperty(name string) *Property {
	return &Property{Name: name, TagAttribute: true}
}

func (*Property) Kind() Kind { return KindProperty }
func (*Property) entity() {}
func (p *Property) Key() string { return p.Name }

// Converter registers a converter by id or by target class.
type Converter struct {
	Feature

	ID       string
	ForClass string
	Class    string

	Attributes []*Attribute
	Properties []*Property
}

func (*Converter) Kind() Kind { return KindConverter }
func (*Converter) entity() {}

// Key returns "id:<id>" when the converter has an id and
// "class:<for-class>" otherwise. Both forms never collide.
func (c *Converter) Key() string {
	if c.ID != "" {
		return converterIDKey(c.ID)
	}
	if c.ForClass != "" {
		return converterClassKey(c.ForClass)
	}
	return ""
}

func converterIDKey(id string) string       { return "id:" + id }
func converterClassKey(class string) string { return "class:" + class }

// Attribute returns the attribute named name, or nil.
func (c *Converter) Attribute(name string) *Attribute {
	v, _ := findKeyed(c.Attributes, name)
	return v
}

// AddAttribute adds a unless an attribute with the same name exists.
func (c *Converter) AddAttribute(a *Attribute) (*Attribute, bool) {
	return insertKeyed(&c.Attributes, a)
}

// Property returns the property named name, or nil.
func (c *Converter) Property(name string) *Property {
	v, _ := findKeyed(c.Properties, name)
	return v
}

// AddProperty adds p unless a property with the same name exists.
func (c *Converter) AddProperty(p *Property) (*Property, bool) {
	return insertKeyed(&c.Properties, p)
}

// Validator registers a validator by id.
type Validator struct {
	Feature

	ID    string
	Class string

	Attributes []*Attribute
	Properties []*Property
}

func (*Validator) Kind() Kind { return KindValidator }
func (*Validator) entity() {}
func (v *Validator) Key() string { return v.ID }

// Attribute returns the attribute named name, or nil.
func (v *Validator) Attribute(name string) *Attribute {
	a, _ := findKeyed(v.Attributes, name)
	return a
}

// AddAttribute adds a unless an attribute with the same name exists.
func (v *Validator) AddAttribute(a *Attribute) (*Attribute, bool) {
	return insertKeyed(&v.Attributes, a)
}

// Property returns the property named name, or nil.
func (v *Validator) Property(name string) *Property {
	p, _ := findKeyed(v.Properties, name)
	return p
}

// AddProperty adds p unless a property with the same name exists.
func (v *Validator) AddProperty(p *Property) (*Property, bool) {
	return insertKeyed(&v.Properties, p)
}

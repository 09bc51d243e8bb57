package model

// DefaultRenderKitID is the id of a render kit declared without one.
const DefaultRenderKitID = "HTML_BASIC"

// RenderKit groups renderers.
type RenderKit struct {
	Feature

	ID        string
	Class     string
	Renderers []*Renderer
}

func (*RenderKit) Kind() Kind { return KindRenderKit }
func (*RenderKit) entity() {}

// Key returns the render kit id, DefaultRenderKitID when none was declared.
func (rk *RenderKit) Key() string { return normalizeRenderKitID(rk.ID) }

// Renderer returns the renderer registered under (family, rendererType), or
// nil.
func (rk *RenderKit) Renderer(family, rendererType string) *Renderer {
	v, _ := findKeyed(rk.Renderers, rendererKey(family, rendererType))
	return v
}

// AddRenderer adds r unless a renderer with the same family and type
// exists.
func (rk *RenderKit) AddRenderer(r *Renderer) (*Renderer, bool) {
	return insertKeyed(&rk.Renderers, r)
}

func normalizeRenderKitID(id string) string {
	if id == "" {
		return DefaultRenderKitID
	}
	return id
}

// Renderer renders one component family with one renderer type.
type Renderer struct {
	Feature

	Family            string
	Type              string
	Class             string
	ExcludeAttributes string
	TagName           string
	RendersChildren   bool

	Attributes []*Attribute
	Facets     []*Facet
}

func (*Renderer) Kind() Kind { return KindRenderer }
func (*Renderer) entity() {}

// Key returns the family and type joined by a NUL byte, which XML text
// cannot contain.
func (r *Renderer) Key() string { return rendererKey(r.Family, r.Type) }

// DisplayKey returns "<family>|<type>".
func (r *Renderer) DisplayKey() string { return r.Family + "|" + r.Type }

func rendererKey(family, rendererType string) string {
	return family + "\x00" + rendererType
}

// Attribute returns the attribute named name, or nil.
func (r *Renderer) Attribute(name string) *Attribute {
	v, _ := findKeyed(r.Attributes, name)
	return v
}

// AddAttribute adds a unless an attribute with the same name exists.
func (r *Renderer) AddAttribute(a *Attribute) (*Attribute, bool) {
	return insertKeyed(&r.Attributes, a)
}

// Facet returns the facet named name, or nil.
func (r *Renderer) Facet(name string) *Facet {
	v, _ := findKeyed(r.Facets, name)
	return v
}

// AddFacet adds f unless a facet with the same name exists.
func (r *Renderer) AddFacet(f *Facet) (*Facet, bool) {
	return insertKeyed(&r.Facets, f)
}

package model

// FacesConfig is the root of the configuration graph.
type FacesConfig struct {
	Version string

	Application *Application
	Factory     *Factory
	Lifecycle   *Lifecycle

	Components      []*Component
	Converters      []*Converter
	Validators      []*Validator
	ManagedBeans    []*ManagedBean
	NavigationRules []*NavigationRule
	ReferencedBeans []*ReferencedBean
	RenderKits      []*RenderKit
}

// NewFacesConfig returns an empty root.
func NewFacesConfig() *FacesConfig {
	return &FacesConfig{}
}

func (*FacesConfig) Kind() Kind { return KindFacesConfig }
func (*FacesConfig) entity() {}

// Component returns the component registered under componentType, or nil.
func (c *FacesConfig) Component(componentType string) *Component {
	v, _ := findKeyed(c.Components, componentType)
	return v
}

// AddComponent adds comp unless its type is already registered, in which
// case the existing component is returned with false.
func (c *FacesConfig) AddComponent(comp *Component) (*Component, bool) {
	return insertKeyed(&c.Components, comp)
}

// Converter returns the converter registered under id, or nil.
func (c *FacesConfig) Converter(id string) *Converter {
	v, _ := findKeyed(c.Converters, converterIDKey(id))
	return v
}

// ConverterForClass returns the converter registered for a target class,
// or nil.
func (c *FacesConfig) ConverterForClass(class string) *Converter {
	v, _ := findKeyed(c.Converters, converterClassKey(class))
	return v
}

// AddConverter adds conv unless its key is already registered.
func (c *FacesConfig) AddConverter(conv *Converter) (*Converter, bool) {
	return insertKeyed(&c.Converters, conv)
}

// Validator returns the validator registered under id, or nil.
func (c *FacesConfig) Validator(id string) *Validator {
	v, _ := findKeyed(c.Validators, id)
	return v
}

// AddValidator adds v unless its id is already registered.
func (c *FacesConfig) AddValidator(v *Validator) (*Validator, bool) {
	return insertKeyed(&c.Validators, v)
}

// ManagedBean returns the managed bean named name, or nil.
func (c *FacesConfig) ManagedBean(name string) *ManagedBean {
	v, _ := findKeyed(c.ManagedBeans, name)
	return v
}

// AddManagedBean adds b unless its name is already registered.
func (c *FacesConfig) AddManagedBean(b *ManagedBean) (*ManagedBean, bool) {
	return insertKeyed(&c.ManagedBeans, b)
}

// NavigationRule returns the rule originating at fromViewID, or nil.
// An empty fromViewID looks up the wildcard rule.
func (c *FacesConfig) NavigationRule(fromViewID string) *NavigationRule {
	v, _ := findKeyed(c.NavigationRules, normalizeViewID(fromViewID))
	return v
}

// AddNavigationRule adds r unless a rule for the same view id exists.
func (c *FacesConfig) AddNavigationRule(r *NavigationRule) (*NavigationRule, bool) {
	return insertKeyed(&c.NavigationRules, r)
}

// ReferencedBean returns the referenced bean named name, or nil.
func (c *FacesConfig) ReferencedBean(name string) *ReferencedBean {
	v, _ := findKeyed(c.ReferencedBeans, name)
	return v
}

// AddReferencedBean adds b unless its name is already registered.
func (c *FacesConfig) AddReferencedBean(b *ReferencedBean) (*ReferencedBean, bool) {
	return insertKeyed(&c.ReferencedBeans, b)
}

// RenderKit returns the render kit with the given id, or nil. An empty id
// looks up the default render kit.
func (c *FacesConfig) RenderKit(id string) *RenderKit {
	v, _ := findKeyed(c.RenderKits, normalizeRenderKitID(id))
	return v
}

// AddRenderKit adds rk unless a render kit with the same id exists.
func (c *FacesConfig) AddRenderKit(rk *RenderKit) (*RenderKit, bool) {
	return insertKeyed(&c.RenderKits, rk)
}

// Renderer searches every render kit, in id order, for the renderer
// registered under (family, rendererType).
func (c *FacesConfig) Renderer(family, rendererType string) *Renderer {
	for _, rk := range c.RenderKits {
		if r := rk.Renderer(family, rendererType); r != nil {
			return r
		}
	}
	return nil
}

// Application holds application-wide handler classes.
type Application struct {
	ActionListener     string
	DefaultRenderKitID string
	MessageBundle      string
	NavigationHandler  string
	ViewHandler        string
	StateManager       string
	PropertyResolver   string
	VariableResolver   string

	LocaleConfig *LocaleConfig
}

func (*Application) Kind() Kind { return KindApplication }
func (*Application) entity() {}

// LocaleConfig lists the locales an application supports.
type LocaleConfig struct {
	DefaultLocale    string
	SupportedLocales []string
}

func (*LocaleConfig) Kind() Kind { return KindLocaleConfig }
func (*LocaleConfig) entity() {}

// Factory lists factory implementation classes.
type Factory struct {
	ApplicationFactories  []string
	FacesContextFactories []string
	LifecycleFactories    []string
	RenderKitFactories    []string
}

func (*Factory) Kind() Kind { return KindFactory }
func (*Factory) entity() {}

// Lifecycle lists phase listener classes.
type Lifecycle struct {
	PhaseListeners []string
}

func (*Lifecycle) Kind() Kind { return KindLifecycle }
func (*Lifecycle) entity() {}

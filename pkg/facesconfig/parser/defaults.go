package parser

import (
	"strings"

	"mercator-hq/facesconfig/pkg/facesconfig/event"
	"mercator-hq/facesconfig/pkg/facesconfig/model"
)

// Root is the name of the document element.
const Root = "faces-config"

// DefaultRules returns the rule table for faces-config documents, including
// the design-time metadata carried in *-extension elements.
func DefaultRules() *RuleTable {
	t := NewRuleTable()

	t.Add(Root, entityRule(model.KindInvalid, model.KindFacesConfig, func(e model.Entity, ev event.Event) {
		if v, ok := ev.Attr("version"); ok {
			e.(*model.FacesConfig).Version = v
		}
	}, nil))
	t.Add(Root+"/faces-config-extension", container(model.KindFacesConfig, true))
	for _, name := range []string{"name", "ordering", "absolute-ordering", "behavior", "flow-definition", "protected-views"} {
		t.Add(Root+"/"+name, skip(model.KindFacesConfig))
	}

	addApplicationRules(t, Root+"/application")
	addFactoryRules(t, Root+"/factory")
	addLifecycleRules(t, Root+"/lifecycle")
	addComponentRules(t, Root+"/component")
	addConverterRules(t, Root+"/converter")
	addValidatorRules(t, Root+"/validator")
	addManagedBeanRules(t, Root+"/managed-bean")
	addNavigationRules(t, Root+"/navigation-rule")
	addReferencedBeanRules(t, Root+"/referenced-bean")
	addRenderKitRules(t, Root+"/render-kit")

	return t
}

func addFeatureRules(t *RuleTable, prefix string, holder model.Kind) {
	t.Add(prefix+"/description", withRaw(entityRule(holder, model.KindDescription, langInit, func(e model.Entity, s string) {
		e.(*model.Description).Text = s
	})))
	t.Add(prefix+"/display-name", entityRule(holder, model.KindDisplayName, langInit, func(e model.Entity, s string) {
		e.(*model.DisplayName).Text = strings.TrimSpace(s)
	}))
	t.Add(prefix+"/icon", entityRule(holder, model.KindIcon, langInit, nil))
	t.Add(prefix+"/icon/small-icon", field(model.KindIcon, func(i *model.Icon, v string) { i.SmallIcon = v }))
	t.Add(prefix+"/icon/large-icon", field(model.KindIcon, func(i *model.Icon, v string) { i.LargeIcon = v }))
}

func withRaw(r Rule) Rule {
	r.Raw = true
	return r
}

func addApplicationRules(t *RuleTable, p string) {
	k := model.KindApplication
	t.Add(p, entityRule(model.KindFacesConfig, k, nil, nil))
	t.Add(p+"/action-listener", field(k, func(a *model.Application, v string) { a.ActionListener = v }))
	t.Add(p+"/default-render-kit-id", field(k, func(a *model.Application, v string) { a.DefaultRenderKitID = v }))
	t.Add(p+"/message-bundle", field(k, func(a *model.Application, v string) { a.MessageBundle = v }))
	t.Add(p+"/navigation-handler", field(k, func(a *model.Application, v string) { a.NavigationHandler = v }))
	t.Add(p+"/view-handler", field(k, func(a *model.Application, v string) { a.ViewHandler = v }))
	t.Add(p+"/state-manager", field(k, func(a *model.Application, v string) { a.StateManager = v }))
	t.Add(p+"/property-resolver", field(k, func(a *model.Application, v string) { a.PropertyResolver = v }))
	t.Add(p+"/variable-resolver", field(k, func(a *model.Application, v string) { a.VariableResolver = v }))
	t.Add(p+"/application-extension", container(k, true))
	for _, name := range []string{"el-resolver", "resource-bundle", "resource-handler", "system-event-listener", "search-expression-handler", "search-keyword-resolver", "resource-library-contracts", "default-validators"} {
		t.Add(p+"/"+name, skip(k))
	}

	lc := p + "/locale-config"
	t.Add(lc, entityRule(k, model.KindLocaleConfig, nil, nil))
	t.Add(lc+"/default-locale", field(model.KindLocaleConfig, func(l *model.LocaleConfig, v string) { l.DefaultLocale = v }))
	t.Add(lc+"/supported-locale", field(model.KindLocaleConfig, func(l *model.LocaleConfig, v string) {
		l.SupportedLocales = append(l.SupportedLocales, v)
	}))
}

func addFactoryRules(t *RuleTable, p string) {
	k := model.KindFactory
	t.Add(p, entityRule(model.KindFacesConfig, k, nil, nil))
	t.Add(p+"/application-factory", field(k, func(f *model.Factory, v string) {
		f.ApplicationFactories = append(f.ApplicationFactories, v)
	}))
	t.Add(p+"/faces-context-factory", field(k, func(f *model.Factory, v string) {
		f.FacesContextFactories = append(f.FacesContextFactories, v)
	}))
	t.Add(p+"/lifecycle-factory", field(k, func(f *model.Factory, v string) {
		f.LifecycleFactories = append(f.LifecycleFactories, v)
	}))
	t.Add(p+"/render-kit-factory", field(k, func(f *model.Factory, v string) {
		f.RenderKitFactories = append(f.RenderKitFactories, v)
	}))
	t.Add(p+"/factory-extension", container(k, true))
	for _, name := range []string{
		"exception-handler-factory", "external-context-factory", "partial-view-context-factory",
		"view-declaration-language-factory", "visit-context-factory", "tag-handler-delegate-factory",
		"flash-factory", "flow-handler-factory", "client-window-factory", "facelet-cache-factory",
		"search-expression-context-factory",
	} {
		t.Add(p+"/"+name, skip(k))
	}
}

func addLifecycleRules(t *RuleTable, p string) {
	k := model.KindLifecycle
	t.Add(p, entityRule(model.KindFacesConfig, k, nil, nil))
	t.Add(p+"/phase-listener", field(k, func(l *model.Lifecycle, v string) {
		l.PhaseListeners = append(l.PhaseListeners, v)
	}))
	t.Add(p+"/lifecycle-extension", container(k, true))
}

func addComponentRules(t *RuleTable, p string) {
	k := model.KindComponent
	t.Add(p, entityRule(model.KindFacesConfig, k, nil, nil))
	addFeatureRules(t, p, k)
	t.Add(p+"/component-type", field(k, func(c *model.Component, v string) { c.Type = v }))
	t.Add(p+"/component-class", field(k, func(c *model.Component, v string) { c.Class = v }))
	addFacetRules(t, p, k)
	addAttributeRules(t, p, k)
	addPropertyRules(t, p, k)

	ext := p + "/component-extension"
	t.Add(ext, container(k, true))
	t.Add(ext+"/base-component-type", field(k, func(c *model.Component, v string) { c.BaseComponentType = v }))
	t.Add(ext+"/component-family", field(k, func(c *model.Component, v string) { c.Family = v }))
	t.Add(ext+"/renderer-type", field(k, func(c *model.Component, v string) { c.RendererType = v }))
}

func addFacetRules(t *RuleTable, prefix string, holder model.Kind) {
	p := prefix + "/facet"
	k := model.KindFacet
	t.Add(p, entityRule(holder, k, nil, nil))
	addFeatureRules(t, p, k)
	t.Add(p+"/facet-name", field(k, func(f *model.Facet, v string) { f.Name = v }))
	t.Add(p+"/facet-extension", container(k, true))
}

func addAttributeRules(t *RuleTable, prefix string, holder model.Kind) {
	p := prefix + "/attribute"
	k := model.KindAttribute
	t.Add(p, entityRule(holder, k, nil, nil))
	addFeatureRules(t, p, k)
	t.Add(p+"/attribute-name", field(k, func(a *model.Attribute, v string) { a.Name = v }))
	t.Add(p+"/attribute-class", field(k, func(a *model.Attribute, v string) { a.Class = v }))
	t.Add(p+"/default-value", field(k, func(a *model.Attribute, v string) { a.DefaultValue = v }))
	t.Add(p+"/suggested-value", field(k, func(a *model.Attribute, v string) { a.SuggestedValue = v }))

	ext := p + "/attribute-extension"
	t.Add(ext, container(k, true))
	t.Add(ext+"/pass-through", flag(k, func(a *model.Attribute, v bool) { a.PassThrough = v }))
	t.Add(ext+"/required", flag(k, func(a *model.Attribute, v bool) { a.Required = v }))
	t.Add(ext+"/tag-attribute", flag(k, func(a *model.Attribute, v bool) { a.TagAttribute = v }))
	t.Add(ext+"/behavior", container(k, false))
	t.Add(ext+"/behavior/event", field(k, func(a *model.Attribute, v string) { a.Behaviors = append(a.Behaviors, v) }))
	t.Add(ext+"/behavior/default", flag(k, func(a *model.Attribute, v bool) { a.DefaultBehavior = v }))
}

func addPropertyRules(t *RuleTable, prefix string, holder model.Kind) {
	p := prefix + "/property"
	k := model.KindProperty
	t.Add(p, entityRule(holder, k, nil, nil))
	addFeatureRules(t, p, k)
	t.Add(p+"/property-name", field(k, func(pr *model.Property, v string) { pr.Name = v }))
	t.Add(p+"/property-class", field(k, func(pr *model.Property, v string) { pr.Class = v }))
	t.Add(p+"/default-value", field(k, func(pr *model.Property, v string) { pr.DefaultValue = v }))
	t.Add(p+"/suggested-value", field(k, func(pr *model.Property, v string) { pr.SuggestedValue = v }))

	ext := p + "/property-extension"
	t.Add(ext, container(k, true))
	t.Add(ext+"/pass-through", flag(k, func(pr *model.Property, v bool) { pr.PassThrough = v }))
	t.Add(ext+"/read-only", flag(k, func(pr *model.Property, v bool) { pr.ReadOnly = v }))
	t.Add(ext+"/required", flag(k, func(pr *model.Property, v bool) { pr.Required = v }))
	t.Add(ext+"/tag-attribute", flag(k, func(pr *model.Property, v bool) { pr.TagAttribute = v }))
	t.Add(ext+"/behavior", container(k, false))
	t.Add(ext+"/behavior/event", field(k, func(pr *model.Property, v string) { pr.Behaviors = append(pr.Behaviors, v) }))
	t.Add(ext+"/behavior/default", flag(k, func(pr *model.Property, v bool) { pr.DefaultBehavior = v }))
}

func addConverterRules(t *RuleTable, p string) {
	k := model.KindConverter
	t.Add(p, entityRule(model.KindFacesConfig, k, nil, nil))
	addFeatureRules(t, p, k)
	t.Add(p+"/converter-id", field(k, func(c *model.Converter, v string) { c.ID = v }))
	t.Add(p+"/converter-for-class", field(k, func(c *model.Converter, v string) { c.ForClass = v }))
	t.Add(p+"/converter-class", field(k, func(c *model.Converter, v string) { c.Class = v }))
	addAttributeRules(t, p, k)
	addPropertyRules(t, p, k)
	t.Add(p+"/converter-extension", container(k, true))
}

func addValidatorRules(t *RuleTable, p string) {
	k := model.KindValidator
	t.Add(p, entityRule(model.KindFacesConfig, k, nil, nil))
	addFeatureRules(t, p, k)
	t.Add(p+"/validator-id", field(k, func(v *model.Validator, s string) { v.ID = s }))
	t.Add(p+"/validator-class", field(k, func(v *model.Validator, s string) { v.Class = s }))
	addAttributeRules(t, p, k)
	addPropertyRules(t, p, k)
	t.Add(p+"/validator-extension", container(k, true))
}

func addManagedBeanRules(t *RuleTable, p string) {
	k := model.KindManagedBean
	t.Add(p, entityRule(model.KindFacesConfig, k, nil, nil))
	addFeatureRules(t, p, k)
	t.Add(p+"/managed-bean-name", field(k, func(b *model.ManagedBean, v string) { b.Name = v }))
	t.Add(p+"/managed-bean-class", field(k, func(b *model.ManagedBean, v string) { b.Class = v }))
	t.Add(p+"/managed-bean-scope", field(k, func(b *model.ManagedBean, v string) { b.Scope = v }))
	t.Add(p+"/managed-bean-extension", container(k, true))
	addListEntriesRules(t, p, k)
	addMapEntriesRules(t, p, k)

	mp := p + "/managed-property"
	pk := model.KindManagedProperty
	t.Add(mp, entityRule(k, pk, nil, nil))
	addFeatureRules(t, mp, pk)
	t.Add(mp+"/property-name", field(pk, func(prop *model.ManagedProperty, v string) { prop.Name = v }))
	t.Add(mp+"/property-class", field(pk, func(prop *model.ManagedProperty, v string) { prop.Class = v }))
	t.Add(mp+"/value", field(pk, func(prop *model.ManagedProperty, v string) { prop.Value = &v }))
	t.Add(mp+"/null-value", field(pk, func(prop *model.ManagedProperty, _ string) { prop.NullValue = true }))
	addListEntriesRules(t, mp, pk)
	addMapEntriesRules(t, mp, pk)
}

func addListEntriesRules(t *RuleTable, prefix string, holder model.Kind) {
	p := prefix + "/list-entries"
	k := model.KindListEntries
	t.Add(p, entityRule(holder, k, nil, nil))
	t.Add(p+"/value-class", field(k, func(l *model.ListEntries, v string) { l.ValueClass = v }))
	t.Add(p+"/value", field(k, func(l *model.ListEntries, v string) {
		l.Values = append(l.Values, model.ListValue{Value: v})
	}))
	t.Add(p+"/null-value", field(k, func(l *model.ListEntries, _ string) {
		l.Values = append(l.Values, model.ListValue{Null: true})
	}))
}

func addMapEntriesRules(t *RuleTable, prefix string, holder model.Kind) {
	p := prefix + "/map-entries"
	k := model.KindMapEntries
	t.Add(p, entityRule(holder, k, nil, nil))
	t.Add(p+"/key-class", field(k, func(m *model.MapEntries, v string) { m.KeyClass = v }))
	t.Add(p+"/value-class", field(k, func(m *model.MapEntries, v string) { m.ValueClass = v }))

	e := p + "/map-entry"
	ek := model.KindMapEntry
	t.Add(e, entityRule(k, ek, nil, nil))
	t.Add(e+"/key", field(ek, func(me *model.MapEntry, v string) { me.Key = v }))
	t.Add(e+"/value", field(ek, func(me *model.MapEntry, v string) { me.Value = &v }))
	t.Add(e+"/null-value", field(ek, func(me *model.MapEntry, _ string) { me.NullValue = true }))
}

func addNavigationRules(t *RuleTable, p string) {
	k := model.KindNavigationRule
	t.Add(p, entityRule(model.KindFacesConfig, k, nil, nil))
	addFeatureRules(t, p, k)
	t.Add(p+"/from-view-id", field(k, func(r *model.NavigationRule, v string) { r.FromViewID = v }))
	t.Add(p+"/navigation-rule-extension", container(k, true))

	c := p + "/navigation-case"
	ck := model.KindNavigationCase
	t.Add(c, entityRule(k, ck, nil, nil))
	addFeatureRules(t, c, ck)
	t.Add(c+"/from-action", field(ck, func(nc *model.NavigationCase, v string) { nc.FromAction = v }))
	t.Add(c+"/from-outcome", field(ck, func(nc *model.NavigationCase, v string) { nc.FromOutcome = v }))
	t.Add(c+"/to-view-id", field(ck, func(nc *model.NavigationCase, v string) { nc.ToViewID = v }))
	t.Add(c+"/redirect", field(ck, func(nc *model.NavigationCase, _ string) { nc.Redirect = true }))
	t.Add(c+"/redirect/view-param", skip(ck))
	t.Add(c+"/redirect/redirect-param", skip(ck))
	t.Add(c+"/if", skip(ck))
	t.Add(c+"/to-flow-document-id", skip(ck))
}

func addReferencedBeanRules(t *RuleTable, p string) {
	k := model.KindReferencedBean
	t.Add(p, entityRule(model.KindFacesConfig, k, nil, nil))
	addFeatureRules(t, p, k)
	t.Add(p+"/referenced-bean-name", field(k, func(b *model.ReferencedBean, v string) { b.Name = v }))
	t.Add(p+"/referenced-bean-class", field(k, func(b *model.ReferencedBean, v string) { b.Class = v }))
}

func addRenderKitRules(t *RuleTable, p string) {
	k := model.KindRenderKit
	t.Add(p, entityRule(model.KindFacesConfig, k, nil, nil))
	addFeatureRules(t, p, k)
	t.Add(p+"/render-kit-id", field(k, func(rk *model.RenderKit, v string) { rk.ID = v }))
	t.Add(p+"/render-kit-class", field(k, func(rk *model.RenderKit, v string) { rk.Class = v }))
	t.Add(p+"/render-kit-extension", container(k, true))
	t.Add(p+"/client-behavior-renderer", skip(k))

	r := p + "/renderer"
	rk := model.KindRenderer
	t.Add(r, entityRule(k, rk, nil, nil))
	addFeatureRules(t, r, rk)
	t.Add(r+"/component-family", field(rk, func(re *model.Renderer, v string) { re.Family = v }))
	t.Add(r+"/renderer-type", field(rk, func(re *model.Renderer, v string) { re.Type = v }))
	t.Add(r+"/renderer-class", field(rk, func(re *model.Renderer, v string) { re.Class = v }))
	addFacetRules(t, r, rk)
	addAttributeRules(t, r, rk)

	ext := r + "/renderer-extension"
	t.Add(ext, container(rk, true))
	t.Add(ext+"/renders-children", flag(rk, func(re *model.Renderer, v bool) { re.RendersChildren = v }))
	t.Add(ext+"/exclude-attributes", field(rk, func(re *model.Renderer, v string) { re.ExcludeAttributes = v }))
	t.Add(ext+"/tag-name", field(rk, func(re *model.Renderer, v string) { re.TagName = v }))
}

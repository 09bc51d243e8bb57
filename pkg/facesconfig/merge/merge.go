package merge

import (
	fcErrors "mercator-hq/facesconfig/pkg/facesconfig/errors"
	"mercator-hq/facesconfig/pkg/facesconfig/model"
)

// Merge folds incoming into existing, mutating existing in place. Both
// entities must be of the same kind and, for keyed kinds, carry the same
// identity key. incoming must not be used afterwards: parts of it may have
// been adopted by existing.
//
// The merged entity is validated before Merge returns.
func Merge(existing, incoming model.Entity) error {
	if existing.Kind() != incoming.Kind() {
		return fcErrors.New(fcErrors.ErrorTypeStructural, "cannot merge %s into %s", incoming.Kind(), existing.Kind())
	}
	if model.KeyOf(existing) != model.KeyOf(incoming) {
		return &fcErrors.Error{
			Type:    fcErrors.ErrorTypeStructural,
			Message: "cannot merge entities with different identity keys (" + model.DisplayKey(incoming) + ")",
			Kind:    existing.Kind().String(),
			Key:     model.DisplayKey(existing),
		}
	}
	if existing == incoming {
		return mergeSelf(existing)
	}

	if fh, ok := existing.(model.FeatureHolder); ok {
		if err := mergeFeature(fh.Features(), incoming.(model.FeatureHolder).Features()); err != nil {
			return err
		}
	}

	var err error
	switch old := existing.(type) {
	case *model.FacesConfig:
		err = mergeFacesConfig(old, incoming.(*model.FacesConfig))
	case *model.Application:
		err = mergeApplication(old, incoming.(*model.Application))
	case *model.LocaleConfig:
		mergeLocaleConfig(old, incoming.(*model.LocaleConfig))
	case *model.Factory:
		mergeFactory(old, incoming.(*model.Factory))
	case *model.Lifecycle:
		appendAll(&old.PhaseListeners, incoming.(*model.Lifecycle).PhaseListeners)
	case *model.Component:
		err = mergeComponent(old, incoming.(*model.Component))
	case *model.Facet:
		// Name is the identity key; only the feature carries data.
	case *model.Attribute:
		mergeAttribute(old, incoming.(*model.Attribute))
	case *model.Property:
		mergeProperty(old, incoming.(*model.Property))
	case *model.Converter:
		err = mergeConverter(old, incoming.(*model.Converter))
	case *model.Validator:
		err = mergeValidator(old, incoming.(*model.Validator))
	case *model.ManagedBean:
		err = mergeManagedBean(old, incoming.(*model.ManagedBean))
	case *model.ManagedProperty:
		err = mergeManagedProperty(old, incoming.(*model.ManagedProperty))
	case *model.ListEntries:
		mergeListEntries(old, incoming.(*model.ListEntries))
	case *model.MapEntries:
		mergeMapEntries(old, incoming.(*model.MapEntries))
	case *model.MapEntry:
		mergeMapEntry(old, incoming.(*model.MapEntry))
	case *model.NavigationRule:
		appendAll(&old.Cases, incoming.(*model.NavigationRule).Cases)
	case *model.NavigationCase:
		mergeNavigationCase(old, incoming.(*model.NavigationCase))
	case *model.ReferencedBean:
		override(&old.Class, incoming.(*model.ReferencedBean).Class)
	case *model.RenderKit:
		err = mergeRenderKit(old, incoming.(*model.RenderKit))
	case *model.Renderer:
		err = mergeRenderer(old, incoming.(*model.Renderer))
	case *model.Description:
		override(&old.Text, incoming.(*model.Description).Text)
	case *model.DisplayName:
		override(&old.Text, incoming.(*model.DisplayName).Text)
	case *model.Icon:
		in := incoming.(*model.Icon)
		override(&old.SmallIcon, in.SmallIcon)
		override(&old.LargeIcon, in.LargeIcon)
	}
	if err != nil {
		return err
	}

	return Validate(existing)
}

// mergeSelf handles merging an entity with itself: keyed and scalar fields
// are unchanged while unkeyed collections double.
func mergeSelf(e model.Entity) error {
	return model.Walk(e, func(e model.Entity) error {
		switch v := e.(type) {
		case *model.LocaleConfig:
			v.SupportedLocales = append(v.SupportedLocales, v.SupportedLocales...)
		case *model.Factory:
			v.ApplicationFactories = append(v.ApplicationFactories, v.ApplicationFactories...)
			v.FacesContextFactories = append(v.FacesContextFactories, v.FacesContextFactories...)
			v.LifecycleFactories = append(v.LifecycleFactories, v.LifecycleFactories...)
			v.RenderKitFactories = append(v.RenderKitFactories, v.RenderKitFactories...)
		case *model.Lifecycle:
			v.PhaseListeners = append(v.PhaseListeners, v.PhaseListeners...)
		case *model.Attribute:
			v.Behaviors = append(v.Behaviors, v.Behaviors...)
		case *model.Property:
			v.Behaviors = append(v.Behaviors, v.Behaviors...)
		case *model.ListEntries:
			v.Values = append(v.Values, v.Values...)
		case *model.MapEntries:
			v.Entries = append(v.Entries, copyMapEntries(v.Entries)...)
		case *model.NavigationRule:
			v.Cases = append(v.Cases, copyCases(v.Cases)...)
		}
		return nil
	})
}

func copyMapEntries(entries []*model.MapEntry) []*model.MapEntry {
	out := make([]*model.MapEntry, len(entries))
	for i, e := range entries {
		c := *e
		out[i] = &c
	}
	return out
}

func copyCases(cases []*model.NavigationCase) []*model.NavigationCase {
	out := make([]*model.NavigationCase, len(cases))
	for i, c := range cases {
		cp := *c
		out[i] = &cp
	}
	return out
}

func mergeFeature(old, in *model.Feature) error {
	for _, d := range in.Descriptions {
		if existing, added := old.AddDescription(d); !added {
			override(&existing.Text, d.Text)
		}
	}
	for _, d := range in.DisplayNames {
		if existing, added := old.AddDisplayName(d); !added {
			override(&existing.Text, d.Text)
		}
	}
	for _, i := range in.Icons {
		if existing, added := old.AddIcon(i); !added {
			override(&existing.SmallIcon, i.SmallIcon)
			override(&existing.LargeIcon, i.LargeIcon)
		}
	}
	return nil
}

func mergeFacesConfig(old, in *model.FacesConfig) error {
	override(&old.Version, in.Version)

	if in.Application != nil {
		if old.Application == nil {
			old.Application = in.Application
		} else if err := Merge(old.Application, in.Application); err != nil {
			return err
		}
	}
	if in.Factory != nil {
		if old.Factory == nil {
			old.Factory = in.Factory
		} else if err := Merge(old.Factory, in.Factory); err != nil {
			return err
		}
	}
	if in.Lifecycle != nil {
		if old.Lifecycle == nil {
			old.Lifecycle = in.Lifecycle
		} else if err := Merge(old.Lifecycle, in.Lifecycle); err != nil {
			return err
		}
	}

	if err := mergeKeyed(in.Components, old.AddComponent); err != nil {
		return err
	}
	if err := mergeKeyed(in.Converters, old.AddConverter); err != nil {
		return err
	}
	if err := mergeKeyed(in.Validators, old.AddValidator); err != nil {
		return err
	}
	if err := mergeKeyed(in.ManagedBeans, old.AddManagedBean); err != nil {
		return err
	}
	if err := mergeKeyed(in.NavigationRules, old.AddNavigationRule); err != nil {
		return err
	}
	if err := mergeKeyed(in.ReferencedBeans, old.AddReferencedBean); err != nil {
		return err
	}
	return mergeKeyed(in.RenderKits, old.AddRenderKit)
}

func mergeApplication(old, in *model.Application) error {
	override(&old.ActionListener, in.ActionListener)
	override(&old.DefaultRenderKitID, in.DefaultRenderKitID)
	override(&old.MessageBundle, in.MessageBundle)
	override(&old.NavigationHandler, in.NavigationHandler)
	override(&old.ViewHandler, in.ViewHandler)
	override(&old.StateManager, in.StateManager)
	override(&old.PropertyResolver, in.PropertyResolver)
	override(&old.VariableResolver, in.VariableResolver)

	if in.LocaleConfig != nil {
		if old.LocaleConfig == nil {
			old.LocaleConfig = in.LocaleConfig
			return nil
		}
		return Merge(old.LocaleConfig, in.LocaleConfig)
	}
	return nil
}

func mergeLocaleConfig(old, in *model.LocaleConfig) {
	override(&old.DefaultLocale, in.DefaultLocale)
	appendAll(&old.SupportedLocales, in.SupportedLocales)
}

func mergeFactory(old, in *model.Factory) {
	appendAll(&old.ApplicationFactories, in.ApplicationFactories)
	appendAll(&old.FacesContextFactories, in.FacesContextFactories)
	appendAll(&old.LifecycleFactories, in.LifecycleFactories)
	appendAll(&old.RenderKitFactories, in.RenderKitFactories)
}

func mergeComponent(old, in *model.Component) error {
	override(&old.Class, in.Class)
	override(&old.BaseComponentType, in.BaseComponentType)
	override(&old.Family, in.Family)
	override(&old.RendererType, in.RendererType)

	if err := mergeKeyed(in.Attributes, old.AddAttribute); err != nil {
		return err
	}
	if err := mergeKeyed(in.Properties, old.AddProperty); err != nil {
		return err
	}
	return mergeKeyed(in.Facets, old.AddFacet)
}

func mergeAttribute(old, in *model.Attribute) {
	override(&old.Class, in.Class)
	override(&old.DefaultValue, in.DefaultValue)
	override(&old.SuggestedValue, in.SuggestedValue)
	stickyTrue(&old.PassThrough, in.PassThrough)
	stickyTrue(&old.Required, in.Required)
	stickyTrue(&old.DefaultBehavior, in.DefaultBehavior)
	stickyFalse(&old.TagAttribute, in.TagAttribute)
	appendAll(&old.Behaviors, in.Behaviors)
}

func mergeProperty(old, in *model.Property) {
	override(&old.Class, in.Class)
	override(&old.DefaultValue, in.DefaultValue)
	override(&old.SuggestedValue, in.SuggestedValue)
	stickyTrue(&old.PassThrough, in.PassThrough)
	stickyTrue(&old.ReadOnly, in.ReadOnly)
	stickyTrue(&old.Required, in.Required)
	stickyTrue(&old.DefaultBehavior, in.DefaultBehavior)
	stickyFalse(&old.TagAttribute, in.TagAttribute)
	appendAll(&old.Behaviors, in.Behaviors)
}

func mergeConverter(old, in *model.Converter) error {
	override(&old.Class, in.Class)
	if err := mergeKeyed(in.Attributes, old.AddAttribute); err != nil {
		return err
	}
	return mergeKeyed(in.Properties, old.AddProperty)
}

func mergeValidator(old, in *model.Validator) error {
	override(&old.Class, in.Class)
	if err := mergeKeyed(in.Attributes, old.AddAttribute); err != nil {
		return err
	}
	return mergeKeyed(in.Properties, old.AddProperty)
}

func mergeManagedBean(old, in *model.ManagedBean) error {
	override(&old.Class, in.Class)
	override(&old.Scope, in.Scope)

	if err := mergeKeyed(in.ManagedProperties, old.AddManagedProperty); err != nil {
		return err
	}
	if err := adoptListEntries(&old.ListEntries, in.ListEntries); err != nil {
		return err
	}
	return adoptMapEntries(&old.MapEntries, in.MapEntries)
}

func mergeManagedProperty(old, in *model.ManagedProperty) error {
	override(&old.Class, in.Class)
	overrideValue(&old.Value, in.Value)
	stickyTrue(&old.NullValue, in.NullValue)

	if err := adoptListEntries(&old.ListEntries, in.ListEntries); err != nil {
		return err
	}
	return adoptMapEntries(&old.MapEntries, in.MapEntries)
}

func mergeListEntries(old, in *model.ListEntries) {
	override(&old.ValueClass, in.ValueClass)
	appendAll(&old.Values, in.Values)
}

func mergeMapEntries(old, in *model.MapEntries) {
	override(&old.KeyClass, in.KeyClass)
	override(&old.ValueClass, in.ValueClass)
	appendAll(&old.Entries, in.Entries)
}

func mergeMapEntry(old, in *model.MapEntry) {
	override(&old.Key, in.Key)
	overrideValue(&old.Value, in.Value)
	stickyTrue(&old.NullValue, in.NullValue)
}

func mergeNavigationCase(old, in *model.NavigationCase) {
	override(&old.FromAction, in.FromAction)
	override(&old.FromOutcome, in.FromOutcome)
	override(&old.ToViewID, in.ToViewID)
	stickyTrue(&old.Redirect, in.Redirect)
}

func mergeRenderKit(old, in *model.RenderKit) error {
	override(&old.Class, in.Class)
	return mergeKeyed(in.Renderers, old.AddRenderer)
}

func mergeRenderer(old, in *model.Renderer) error {
	override(&old.Class, in.Class)
	override(&old.ExcludeAttributes, in.ExcludeAttributes)
	override(&old.TagName, in.TagName)
	stickyTrue(&old.RendersChildren, in.RendersChildren)

	if err := mergeKeyed(in.Attributes, old.AddAttribute); err != nil {
		return err
	}
	return mergeKeyed(in.Facets, old.AddFacet)
}

// mergeKeyed adds each incoming child whose key is unseen and merges the
// rest into their existing siblings.
func mergeKeyed[T model.Keyed](incoming []T, add func(T) (T, bool)) error {
	for _, child := range incoming {
		if existing, added := add(child); !added {
			if err := Merge(existing, child); err != nil {
				return err
			}
		}
	}
	return nil
}

func adoptListEntries(dst **model.ListEntries, src *model.ListEntries) error {
	if src == nil {
		return nil
	}
	if *dst == nil {
		*dst = src
		return nil
	}
	return Merge(*dst, src)
}

func adoptMapEntries(dst **model.MapEntries, src *model.MapEntries) error {
	if src == nil {
		return nil
	}
	if *dst == nil {
		*dst = src
		return nil
	}
	return Merge(*dst, src)
}

package model

// Feature holds the localized descriptions, display names and icons shared
// by most entity kinds. Each collection holds at most one entry per
// language tag; the empty tag is the default locale.
type Feature struct {
	Descriptions []*Description
	DisplayNames []*DisplayName
	Icons        []*Icon
}

// Features returns the feature substructure itself. Embedding Feature
// promotes this method, which makes the embedding entity a FeatureHolder.
func (f *Feature) Features() *Feature { return f }

// Description returns the default-locale description text, or "".
func (f *Feature) Description() string {
	if d := f.LocalizedDescription(""); d != nil {
		return d.Text
	}
	return ""
}

// LocalizedDescription returns the description for lang, or nil.
func (f *Feature) LocalizedDescription(lang string) *Description {
	d, _ := findKeyed(f.Descriptions, lang)
	return d
}

// DisplayName returns the display name for lang, or nil.
func (f *Feature) DisplayName(lang string) *DisplayName {
	d, _ := findKeyed(f.DisplayNames, lang)
	return d
}

// Icon returns the icon for lang, or nil.
func (f *Feature) Icon(lang string) *Icon {
	i, _ := findKeyed(f.Icons, lang)
	return i
}

// AddDescription adds d unless a description for the same language exists,
// in which case the existing entry is returned with false.
func (f *Feature) AddDescription(d *Description) (*Description, bool) {
	return insertKeyed(&f.Descriptions, d)
}

// AddDisplayName adds d unless a display name for the same language exists.
func (f *Feature) AddDisplayName(d *DisplayName) (*DisplayName, bool) {
	return insertKeyed(&f.DisplayNames, d)
}

// AddIcon adds i unless an icon for the same language exists.
func (f *Feature) AddIcon(i *Icon) (*Icon, bool) {
	return insertKeyed(&f.Icons, i)
}

// IsEmpty reports whether no localized entry is present.
func (f *Feature) IsEmpty() bool {
	return len(f.Descriptions) == 0 && len(f.DisplayNames) == 0 && len(f.Icons) == 0
}

// Description is a rich-text description. Text holds the body as
// serialized markup, nested elements included.
type Description struct {
	Lang string
	Text string
}

func (*Description) Kind() Kind { return KindDescription }
func (*Description) entity() {}
func (d *Description) Key() string { return d.Lang }

// DisplayName is a localized short name.
type DisplayName struct {
	Lang string
	Text string
}

func (*DisplayName) Kind() Kind { return KindDisplayName }
func (*DisplayName) entity() {}
func (d *DisplayName) Key() string { return d.Lang }

// Icon is a localized pair of icon resource paths.
type Icon struct {
	Lang      string
	SmallIcon string
	LargeIcon string
}

func (*Icon) Kind() Kind { return KindIcon }
func (*Icon) entity() {}
func (i *Icon) Key() string { return i.Lang }

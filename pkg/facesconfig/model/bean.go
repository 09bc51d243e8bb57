package model

// ManagedBean declares an object created on demand by the runtime. It is
// configured by at most one of ManagedProperties, ListEntries or MapEntries.
type ManagedBean struct {
	Feature

	Name  string
	Class string
	Scope string

	ManagedProperties []*ManagedProperty
	ListEntries       *ListEntries
	MapEntries        *MapEntries
}

func (*ManagedBean) Kind() Kind { return KindManagedBean }
func (*ManagedBean) entity() {}
func (b *ManagedBean) Key() string { return b.Name }

// ManagedProperty returns the managed property named name, or nil.
func (b *ManagedBean) ManagedProperty(name string) *ManagedProperty {
	v, _ := findKeyed(b.ManagedProperties, name)
	return v
}

// AddManagedProperty adds p unless a property with the same name exists.
func (b *ManagedBean) AddManagedProperty(p *ManagedProperty) (*ManagedProperty, bool) {
	return insertKeyed(&b.ManagedProperties, p)
}

// ManagedProperty initializes one property of a managed bean. Exactly one
// of Value, NullValue, ListEntries or MapEntries is set.
type ManagedProperty struct {
	Feature

	Name  string
	Class string
	// Value is nil when no literal value was declared. An empty literal
	// is a valid value.
	Value     *string
	NullValue bool

	ListEntries *ListEntries
	MapEntries  *MapEntries
}

func (*ManagedProperty) Kind() Kind { return KindManagedProperty }
func (*ManagedProperty) entity() {}
func (p *ManagedProperty) Key() string { return p.Name }

// ListValue is one element of a ListEntries. Null elements are kept.
type ListValue struct {
	Value string
	Null  bool
}

// ListEntries initializes a list.
type ListEntries struct {
	ValueClass string
	Values     []ListValue
}

func (*ListEntries) Kind() Kind { return KindListEntries }
func (*ListEntries) entity() {}

// MapEntries initializes a map. Entries keep declaration order and are not
// deduplicated by key.
type MapEntries struct {
	KeyClass   string
	ValueClass string
	Entries    []*MapEntry
}

func (*MapEntries) Kind() Kind { return KindMapEntries }
func (*MapEntries) entity() {}

// MapEntry is one key/value pair of a MapEntries.
type MapEntry struct {
	Key       string
	Value     *string
	NullValue bool
}

func (*MapEntry) Kind() Kind { return KindMapEntry }
func (*MapEntry) entity() {}

// ReferencedBean declares an object the application expects to find at
// runtime.
type ReferencedBean struct {
	Feature

	Name  string
	Class string
}

func (*ReferencedBean) Kind() Kind { return KindReferencedBean }
func (*ReferencedBean) entity() {}
func (b *ReferencedBean) Key() string { return b.Name }

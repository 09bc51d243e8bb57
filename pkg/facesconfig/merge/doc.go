// Package merge combines entities that share an identity key.
//
// There is one confluence algorithm, used both for duplicate elements within
// a document and for folding documents into the accumulated graph. Fields
// fall into categories with a fixed policy each:
//
//   - Scalars override when present: a non-empty incoming value replaces
//     the existing one, so later documents win.
//   - Sticky-true flags (PassThrough, Required, ReadOnly, DefaultBehavior,
//     RendersChildren, NullValue, Redirect) are OR-ed. Once any contributor
//     sets one it stays set; no later document can clear it.
//   - TagAttribute defaults to true and is AND-ed: any contributor declaring
//     it false clears it for good.
//   - Unkeyed collections (behaviors, navigation cases, list values, map
//     entries, supported locales, phase listeners, factories) are
//     concatenated in order and never deduplicated.
//   - Keyed collections are merged element-wise: unseen keys are added,
//     seen keys are merged recursively.
//   - Single substructures (Application, Factory, Lifecycle, LocaleConfig,
//     ListEntries, MapEntries) are adopted when absent and merged
//     recursively when present.
//
// Union and flag categories are commutative. Scalar overrides are order
// sensitive: the document processed last wins.
//
// After merging, Validate checks the invariants of the merged entity and
// reports violations as validation errors naming the entity kind and key.
package merge

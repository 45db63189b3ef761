package types

// OrphanTag is the reserved sticky tag grouping user classes that declare no
// tag of their own. Workers serving untagged classes are pooled under this
// tag by the fixed dispatcher.
const OrphanTag = "__orphan__"

// UserClass describes one load-generating user type.
//
// A class is either weighted (its share of the total user count is derived
// from Weight relative to the other weighted classes) or fixed (it must run
// exactly FixedCount instances regardless of the total). Dispatchers treat a
// UserClass as an immutable snapshot; changing a class's requirements between
// ramps is done through a new dispatch Request, never by mutating the
// descriptor while an iteration is in flight.
type UserClass struct {
	// Name uniquely identifies the class within a dispatcher instance.
	Name string `yaml:"name" json:"name"`

	// Weight is the relative share of weighted distribution. Ignored when
	// Fixed is set.
	Weight float64 `yaml:"weight,omitempty" json:"weight,omitempty"`

	// Fixed marks the class as requiring exactly FixedCount instances.
	Fixed bool `yaml:"fixed,omitempty" json:"fixed,omitempty"`

	// FixedCount is the exact instance count for a fixed class. Must be
	// non-negative. Ignored when Fixed is false.
	FixedCount int `yaml:"fixed_count,omitempty" json:"fixed_count,omitempty"`

	// StickyTag confines all instances of this class to the worker group
	// serving the tag. Empty means no affinity constraint (the class joins
	// the OrphanTag group under the fixed dispatcher).
	StickyTag string `yaml:"sticky_tag,omitempty" json:"sticky_tag,omitempty"`
}

// Tag returns the effective sticky tag, substituting OrphanTag for classes
// that declare none.
func (u UserClass) Tag() string {
	if u.StickyTag == "" {
		return OrphanTag
	}

	return u.StickyTag
}

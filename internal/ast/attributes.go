package ast

import "sort"

// Attribute weights as assigned by classic Rez. Every "un-"/"non-" inverse
// keyword and appheap (the default heap, requiring no bit) contribute zero
// to the OR-sum; they exist only so the grammar accepts them as attribute
// list members.
var attributeWeights = map[string]int64{
	"compressed": 0x01,
	"changed":    0x02,
	"preload":    0x04,
	"protected":  0x08,
	"locked":     0x10,
	"purgeable":  0x20,
	"sysheap":    0x40,

	"appheap":      0,
	"unchanged":    0,
	"uncompressed": 0,
	"unlocked":     0,
	"unprotected":  0,
	"nonpreload":   0,
	"nonpurgeable": 0,
}

// AttributeWeightOf looks up the OR-weight of an attribute keyword. ok is
// false for any identifier that is not one of the closed set of attribute
// keywords.
func AttributeWeightOf(name string) (value int64, ok bool) {
	v, ok := attributeWeights[name]

	return v, ok
}

// AttributeNames returns the closed set of attribute keywords in a
// deterministic order, for diagnostics and completion.
func AttributeNames() []string {
	names := make([]string, 0, len(attributeWeights))
	for name := range attributeWeights {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// AttributeSet accumulates a resource spec's named attribute keywords into
// the single OR-ed mask the packed resource header stores; see
// eval.Evaluator.ResolveAttributes, its consumer.
type AttributeSet struct {
	mask int64
}

// NewAttributeSet starts an empty attribute accumulator.
func NewAttributeSet() *AttributeSet { return &AttributeSet{} }

// Add ORs in the named attribute's weight. Unknown names are ignored; the
// parser rejects those before they reach here.
func (s *AttributeSet) Add(name string) *AttributeSet {
	if w, ok := attributeWeights[name]; ok {
		s.mask |= w
	}

	return s
}

// Mask returns the accumulated OR-sum.
func (s *AttributeSet) Mask() int64 { return s.mask }

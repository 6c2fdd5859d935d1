package domain

// LabelRegistry is the ordered set of known label names and their colors.
// Order is first-learned order and is never rearranged by repeated learns.
type LabelRegistry struct {
	order  []string
	index  map[string]struct{}
	colors ColorTable
}

// NewLabelRegistry creates an empty registry
func NewLabelRegistry() *LabelRegistry {
	return &LabelRegistry{
		index:  make(map[string]struct{}),
		colors: make(ColorTable),
	}
}

// Known returns the label names in insertion order
func (r *LabelRegistry) Known() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Learn appends name if it is not yet known. Empty names and the reserved
// unlabeled bucket name are ignored. Returns true if the name was added.
func (r *LabelRegistry) Learn(name string) bool {
	if name == "" || name == UnlabeledBucket {
		return false
	}
	if _, ok := r.index[name]; ok {
		return false
	}
	r.index[name] = struct{}{}
	r.order = append(r.order, name)
	return true
}

// Contains reports whether name is known
func (r *LabelRegistry) Contains(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Len returns the number of known labels
func (r *LabelRegistry) Len() int {
	return len(r.order)
}

// ColorOf returns the stable color for name
func (r *LabelRegistry) ColorOf(name string) string {
	return ColorFor(name, r.colors)
}

// Seed merges remote colors into the table. Names that already carry a
// color keep it.
func (r *LabelRegistry) Seed(seed ColorTable) {
	r.colors.Merge(seed)
}

// Colors returns a copy of the color table
func (r *LabelRegistry) Colors() ColorTable {
	return r.colors.Clone()
}

// Reset forgets the label order ahead of a full reload.
// The color table is kept so colors stay stable for the session.
func (r *LabelRegistry) Reset() {
	r.order = nil
	r.index = make(map[string]struct{})
}

package command

// Registry is the ordered list of root entries registered during startup.
// It is filled once, before the tree is built, and only read afterwards.
type Registry struct {
	entries []*Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends e. No validation happens here; registering the same entry
// twice yields two independent routes.
func (r *Registry) Register(e *Entry) {
	r.entries = append(r.entries, e)
}

// Entries returns the registered roots in registration order.
func (r *Registry) Entries() []*Entry {
	out := make([]*Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

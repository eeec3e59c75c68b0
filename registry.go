package legisdoc

import "sort"

// Registry is a static, append-only table of strategies for a single
// document kind. It is populated once at startup; Register rejects
// duplicates and kind mismatches rather than silently replacing.
type Registry struct {
	kind       DocumentKind
	strategies map[string]Strategy
	order      []string // registration order, for stable ties
}

// NewRegistry creates an empty Registry for the given kind.
func NewRegistry(kind DocumentKind) *Registry {
	return &Registry{
		kind:       kind,
		strategies: make(map[string]Strategy),
	}
}

// Kind returns the document kind this registry serves.
func (r *Registry) Kind() DocumentKind {
	return r.kind
}

// Register adds a strategy. It returns an error if the strategy's kind does
// not match the registry or its id is already taken.
func (r *Registry) Register(s Strategy) error {
	d := s.Descriptor()
	if d.ID == "" {
		return Errorf(EINVALID, "strategy ID required")
	}
	if d.Kind != r.kind {
		return Errorf(EINVALID, "strategy %q targets kind %q, registry is %q", d.ID, d.Kind, r.kind)
	}
	if _, ok := r.strategies[d.ID]; ok {
		return Errorf(ECONFLICT, "strategy %q already registered", d.ID)
	}
	r.strategies[d.ID] = s
	r.order = append(r.order, d.ID)
	return nil
}

// MustRegister is Register that panics on error, for startup wiring.
func (r *Registry) MustRegister(s Strategy) {
	if err := r.Register(s); err != nil {
		panic(err)
	}
}

// Get returns the strategy with the given id, or nil if unknown.
func (r *Registry) Get(id string) Strategy {
	return r.strategies[id]
}

// All returns every registered strategy ordered by ascending cost.
// Equal-cost strategies keep registration order.
func (r *Registry) All() []Strategy {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	sort.SliceStable(ids, func(i, j int) bool {
		return r.strategies[ids[i]].Descriptor().Cost < r.strategies[ids[j]].Descriptor().Cost
	})
	out := make([]Strategy, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.strategies[id])
	}
	return out
}

// Len returns the number of registered strategies.
func (r *Registry) Len() int {
	return len(r.strategies)
}

package board

import "errors"

// ErrNoTrigger is returned when wiring a cause that cannot trigger, such as a ball.
var ErrNoTrigger = errors.New("board: entity cannot trigger")

// Edge is a wired cause -> effect trigger.
type Edge struct {
	Cause  string
	Effect string
}

// Registry indexes entities by name. Gadgets hold only the name of their
// trigger target and resolve it here when they fire, so trigger graphs may
// contain cycles and self-loops without any ownership between gadgets.
type Registry struct {
	entities []Entity
	index    map[string]int
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds e. Names must be unique across all registered entities.
func (r *Registry) Register(e Entity) error {
	name := e.Name()
	if name == "" {
		return configErr(e.Kind().String(), ErrEmptyName)
	}
	if _, ok := r.index[name]; ok {
		return configErr(name, ErrDuplicateName)
	}
	r.index[name] = len(r.entities)
	r.entities = append(r.entities, e)
	if g, ok := e.(Gadget); ok {
		g.bind(r)
	}
	return nil
}

func (r *Registry) Lookup(name string) (Entity, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.entities[i], true
}

func (r *Registry) Len() int { return len(r.entities) }

// Wire makes effect's Action fire whenever cause is triggered.
func (r *Registry) Wire(cause, effect string) error {
	c, ok := r.Lookup(cause)
	if !ok {
		return configErr(cause, ErrUnknownName)
	}
	if _, ok := r.Lookup(effect); !ok {
		return configErr(effect, ErrUnknownName)
	}
	if _, ok := c.(Gadget); !ok {
		return configErr(cause, ErrNoTrigger)
	}
	if !c.SetTrigger(effect) {
		return configErr(cause, ErrTriggerSet)
	}
	return nil
}

// Edges lists the wired triggers in registration order.
func (r *Registry) Edges() []Edge {
	var edges []Edge
	for _, e := range r.entities {
		if g, ok := e.(Gadget); ok && g.Target() != "" {
			edges = append(edges, Edge{Cause: g.Name(), Effect: g.Target()})
		}
	}
	return edges
}

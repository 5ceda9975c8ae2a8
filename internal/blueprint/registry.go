package blueprint

// Action handles a single manifest rule of a recognized kind.
type Action func(Rule) error

// Registry maps fileset kinds to toolchain actions. Kinds with no entry are
// a deliberate no-op so newer manifests keep working against older targets.
type Registry struct {
	actions map[Kind]Action
}

// NewRegistry returns an empty dispatch registry.
func NewRegistry() *Registry {
	return &Registry{actions: make(map[Kind]Action)}
}

// Register binds an action to a fileset kind, replacing any previous
// binding for that kind.
func (r *Registry) Register(kind Kind, action Action) {
	r.actions[kind] = action
}

// Dispatch runs the registered action for each rule in order, stopping at
// the first action failure. Rules of unregistered kinds are skipped.
func (r *Registry) Dispatch(rules []Rule) error {
	for _, rule := range rules {
		action, ok := r.actions[rule.Kind]
		if !ok {
			continue
		}
		if err := action(rule); err != nil {
			return err
		}
	}
	return nil
}

package upgrade

// Version groups the scriptlets shipped with one release.
type Version struct {
	Number     string
	Scriptlets []Scriptlet
}

// Registry lists versions in the order they must run.
type Registry struct {
	versions []Version
}

// NewRegistry returns a registry running versions in the given order.
func NewRegistry(versions ...Version) *Registry {
	return &Registry{versions: versions}
}

// Versions returns the registered versions.
func (r *Registry) Versions() []Version {
	return r.versions
}

// Find looks a scriptlet up by name.
func (r *Registry) Find(name string) (Scriptlet, bool) {
	for _, v := range r.versions {
		for _, s := range v.Scriptlets {
			if s.Name() == name {
				return s, true
			}
		}
	}
	return nil, false
}

package engine

import (
	"sort"
	"strings"
	"sync"
)

// Body is one executable template body: the host-language rendition of a
// template's scripting surface. Bodies read wrapped variables, write output
// and drive composition exclusively through the supplied View.
type Body func(v *View) error

// Resolver maps a concrete template name (suffix included) to its body. The
// engine probes names under its suffix conventions; implementations only
// answer existence.
type Resolver interface {
	Resolve(name string) (Body, bool)
}

// Registry is the in-memory Resolver. Template sources loaded from elsewhere
// (disk, embed) are registered here by the caller; the engine itself never
// touches a filesystem.
type Registry struct {
	mu     sync.RWMutex
	bodies map[string]Body
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{bodies: make(map[string]Body)}
}

// Register stores body under name. Later registrations replace earlier ones.
func (r *Registry) Register(name string, body Body) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || body == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bodies[trimmed] = body
}

// Resolve implements Resolver.
func (r *Registry) Resolve(name string) (Body, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	body, ok := r.bodies[name]
	return body, ok
}

// Names lists the registered template names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.bodies))
	for name := range r.bodies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

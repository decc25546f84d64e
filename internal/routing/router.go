package routing

import (
	"sort"

	"github.com/Natnat0905/GeoChat/internal/provider"
)

// Router maps provider names to completion providers.
type Router struct {
	providers map[string]provider.Provider
	defaultN  string
}

func New() *Router {
	return &Router{providers: make(map[string]provider.Provider)}
}

// Register associates a name with a provider implementation. The first
// registered provider becomes the default.
func (r *Router) Register(name string, p provider.Provider) {
	r.providers[name] = p
	if r.defaultN == "" {
		r.defaultN = name
	}
}

// ProviderFor returns the named provider, or the default provider and its
// name when the name is unknown.
func (r *Router) ProviderFor(name string) (provider.Provider, string) {
	if p, ok := r.providers[name]; ok {
		return p, name
	}
	return r.providers[r.defaultN], r.defaultN
}

// Names lists registered providers in sorted order.
func (r *Router) Names() []string {
	names := make([]string, 0, len(r.providers))
	for n := range r.providers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

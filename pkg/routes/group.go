// Package routes provides declarative route grouping for net/http ServeMux
// registration with method-qualified patterns.
package routes

import "net/http"

// Group organizes routes under a shared path prefix. Child groups
// inherit the full prefix of their ancestors.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds every route in the given groups to the mux, prefixing
// patterns with the accumulated group prefixes.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, g := range groups {
		register(mux, "", g)
	}
}

func register(mux *http.ServeMux, parent string, g Group) {
	prefix := parent + g.Prefix
	for _, r := range g.Routes {
		mux.HandleFunc(r.Method+" "+prefix+r.Pattern, r.Handler)
	}
	for _, child := range g.Children {
		register(mux, prefix, child)
	}
}

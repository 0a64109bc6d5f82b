package compliance

import "errors"

// ErrRouteNotFound is returned by RouteTable.RouteByName when no route is
// registered under the requested name. Rule code treats it as an ordinary
// value: a missing route is a non-compliant outcome, not a failure.
var ErrRouteNotFound = errors.New("compliance: route not found")

// Route describes one HTTP route exposed by the OAuth deployment.
type Route struct {
	// Name is the route's registration name, e.g. "oauth_server.well_known".
	Name string

	// Path is the route's URL path, e.g. "/.well-known/oauth-authorization-server".
	Path string
}

// RouteTable reports the routes exposed by the deployment under evaluation.
// Used to confirm that discovery endpoints are actually reachable, not just
// configured.
type RouteTable interface {
	// RouteByName looks up a route by its registration name.
	// Returns ErrRouteNotFound when the route is not registered.
	RouteByName(name string) (Route, error)
}

// StaticRouteTable is a fixed RouteTable built from a set of routes.
type StaticRouteTable struct {
	routes map[string]Route
}

// NewStaticRouteTable creates a route table with the given routes.
func NewStaticRouteTable(routes ...Route) *StaticRouteTable {
	t := &StaticRouteTable{routes: make(map[string]Route, len(routes))}
	for _, r := range routes {
		t.routes[r.Name] = r
	}
	return t
}

// RouteByName looks up a route by name.
func (t *StaticRouteTable) RouteByName(name string) (Route, error) {
	r, ok := t.routes[name]
	if !ok {
		return Route{}, ErrRouteNotFound
	}
	return r, nil
}

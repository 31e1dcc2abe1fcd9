package routerhelper

import (
	"path"

	"github.com/julienschmidt/httprouter"
)

// RouteGroup groups handlers under a shared path prefix.
type RouteGroup struct {
	router *httprouter.Router
	prefix string
}

func NewRouteGroup(router *httprouter.Router, prefix string) *RouteGroup {
	return &RouteGroup{router: router, prefix: prefix}
}

func (g *RouteGroup) Group(prefix string) *RouteGroup {
	return &RouteGroup{router: g.router, prefix: path.Join(g.prefix, prefix)}
}

func (g *RouteGroup) GET(relativePath string, handle httprouter.Handle) {
	g.router.GET(path.Join(g.prefix, relativePath), handle)
}

func (g *RouteGroup) POST(relativePath string, handle httprouter.Handle) {
	g.router.POST(path.Join(g.prefix, relativePath), handle)
}

func (g *RouteGroup) DELETE(relativePath string, handle httprouter.Handle) {
	g.router.DELETE(path.Join(g.prefix, relativePath), handle)
}

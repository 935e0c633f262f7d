package restapi

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// HTTPVerb enumerates supported HTTP operations.
type HTTPVerb int

const (
	// Unknown represents an unspecified HTTP verb.
	Unknown HTTPVerb = iota
	// GET lists or retrieves resources.
	GET
	// GET_ONE retrieves a single resource.
	GET_ONE
	// DELETE removes resources.
	DELETE
	// POST creates resources.
	POST
	// PUT replaces resources.
	PUT
	// PATCH partially updates resources.
	PATCH
)

// RestMethod describes a REST route handler.
type RestMethod struct {
	Verb    HTTPVerb
	Path    string
	Handler gin.HandlerFunc
}

// Registry holds the REST methods a router mounts under the API group.
type Registry struct {
	methods map[string]RestMethod
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{methods: make(map[string]RestMethod)}
}

// RegisterMethod builds a RestMethod and registers it using Register.
func (r *Registry) RegisterMethod(verb HTTPVerb, path string, h gin.HandlerFunc) error {
	return r.Register(RestMethod{
		Verb:    verb,
		Path:    path,
		Handler: h,
	})
}

// Register inserts a RestMethod preventing duplicates.
func (r *Registry) Register(m RestMethod) error {
	if m.Verb == Unknown || m.Verb > PATCH {
		return fmt.Errorf("can't add %s, HTTP verb %d not supported", m.Path, m.Verb)
	}
	key := fmt.Sprintf("%d_%s", m.Verb, m.Path)
	if _, exists := r.methods[key]; exists {
		return fmt.Errorf("can't add %s, an existing handler in REST method map exists", key)
	}
	r.methods[key] = m
	return nil
}

// RestMethods returns all registered RestMethod entries keyed by verb+path.
func (r *Registry) RestMethods() map[string]RestMethod {
	return r.methods
}

// mount attaches every registered method to g, each wrapped by the given middleware.
func (r *Registry) mount(g *gin.RouterGroup, middleware ...gin.HandlerFunc) {
	for _, rm := range r.methods {
		handlers := append(append([]gin.HandlerFunc{}, middleware...), rm.Handler)
		switch rm.Verb {
		case GET, GET_ONE:
			g.GET(rm.Path, handlers...)
		case DELETE:
			g.DELETE(rm.Path, handlers...)
		case POST:
			g.POST(rm.Path, handlers...)
		case PUT:
			g.PUT(rm.Path, handlers...)
		case PATCH:
			g.PATCH(rm.Path, handlers...)
		}
	}
}

package admin

import "github.com/juan2005elpapu/webjanaypedidos/internal/provider"

// Handler procesador de las rutas del panel de administración
type Handler struct {
	*provider.Container
}

// New crea el handler de administración
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

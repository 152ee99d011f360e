package public

import "github.com/juan2005elpapu/webjanaypedidos/internal/provider"

// Handler procesador de las rutas públicas y del portal de clientes
type Handler struct {
	*provider.Container
}

// New crea el handler público
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

package authz

import (
	"fmt"

	"github.com/juan2005elpapu/webjanaypedidos/internal/constants"
)

// RoleSeed definición de un rol predefinido
type RoleSeed struct {
	Role     string
	Policies []Policy
}

// BuiltinRoleSeeds matriz de roles del negocio. El superadmin administra
// todo el panel; el personal gestiona pedidos y solicitudes pero solo
// lee la configuración y el catálogo.
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: rolePrefix + constants.AdminRoleSuperadmin,
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
		},
		{
			Role: rolePrefix + constants.AdminRoleStaff,
			Policies: []Policy{
				{Object: "/admin/me", Action: "GET"},
				{Object: "/admin/orders", Action: "GET"},
				{Object: "/admin/orders/:id", Action: "GET"},
				{Object: "/admin/orders/:id/status", Action: "PUT"},
				{Object: "/admin/orders/:id/notes", Action: "PUT"},
				{Object: "/admin/modifications", Action: "GET"},
				{Object: "/admin/modifications/:id/resolve", Action: "PUT"},
				{Object: "/admin/stats", Action: "GET"},
				{Object: "/admin/settings", Action: "GET"},
				{Object: "/admin/products", Action: "GET"},
				{Object: "/admin/categories", Action: "GET"},
			},
		},
	}
}

// BootstrapBuiltinRoles siembra las políticas de los roles predefinidos.
// Es idempotente: las reglas existentes no se duplican.
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	changed := false
	for _, seed := range BuiltinRoleSeeds() {
		for _, policy := range seed.Policies {
			action := normalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			added, err := s.enforcer.AddPolicy(seed.Role, normalizeObject(policy.Object), action)
			if err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
			if added {
				changed = true
			}
		}
	}

	if changed {
		if err := s.enforcer.SavePolicy(); err != nil {
			return fmt.Errorf("save authz policy failed: %w", err)
		}
		return s.enforcer.LoadPolicy()
	}
	return nil
}

package authz

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}

	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("create authz service failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles failed: %v", err)
	}
	return svc
}

func TestSuperadminHasFullAccess(t *testing.T) {
	svc := setupAuthzService(t)

	cases := []struct {
		obj string
		act string
	}{
		{"/admin/settings", "PUT"},
		{"/admin/products", "POST"},
		{"/admin/orders/12/status", "PUT"},
		{"/admin/categories/3", "DELETE"},
	}
	for _, tc := range cases {
		ok, err := svc.EnforceStaff(true, tc.obj, tc.act)
		if err != nil {
			t.Fatalf("enforce failed: %v", err)
		}
		if !ok {
			t.Fatalf("superadmin denied on %s %s", tc.act, tc.obj)
		}
	}
}

func TestStaffPermissions(t *testing.T) {
	svc := setupAuthzService(t)

	allowed := []struct {
		obj string
		act string
	}{
		{"/admin/me", "GET"},
		{"/admin/orders", "GET"},
		{"/admin/orders/42", "GET"},
		{"/admin/orders/42/status", "PUT"},
		{"/admin/modifications", "GET"},
		{"/admin/modifications/7/resolve", "PUT"},
		{"/admin/settings", "GET"},
		{"/admin/stats", "GET"},
	}
	for _, tc := range allowed {
		ok, err := svc.EnforceStaff(false, tc.obj, tc.act)
		if err != nil {
			t.Fatalf("enforce failed: %v", err)
		}
		if !ok {
			t.Fatalf("staff denied on %s %s", tc.act, tc.obj)
		}
	}

	denied := []struct {
		obj string
		act string
	}{
		{"/admin/settings", "PUT"},
		{"/admin/products", "POST"},
		{"/admin/products/9", "DELETE"},
		{"/admin/categories", "POST"},
	}
	for _, tc := range denied {
		ok, err := svc.EnforceStaff(false, tc.obj, tc.act)
		if err != nil {
			t.Fatalf("enforce failed: %v", err)
		}
		if ok {
			t.Fatalf("staff allowed on %s %s", tc.act, tc.obj)
		}
	}
}

func TestBootstrapIsIdempotent(t *testing.T) {
	svc := setupAuthzService(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}

	ok, err := svc.EnforceStaff(false, "/admin/orders", "GET")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if !ok {
		t.Fatal("staff denied after repeated bootstrap")
	}
}

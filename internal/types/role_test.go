package types

import "testing"

func TestRoleAllowed_AdminFlagBypassesAllowList(t *testing.T) {
	if !RoleAllowed(RolePanol, true, []Role{RoleOficina}) {
		t.Fatalf("is_admin should bypass the allow-list")
	}
}

func TestRoleAllowed_EmptyAllowListAdmitsAnyRole(t *testing.T) {
	for _, r := range AllRoles() {
		if !RoleAllowed(r, false, nil) {
			t.Fatalf("role %q should pass an empty allow-list", r)
		}
	}
}

func TestRoleAllowed_RoleOutsideListIsDenied(t *testing.T) {
	allowed := []Role{RolePanol, RoleOficina}
	if !RoleAllowed(RolePanol, false, allowed) {
		t.Fatalf("panol should be allowed")
	}
	if !RoleAllowed(RoleOficina, false, allowed) {
		t.Fatalf("oficina should be allowed")
	}
	if RoleAllowed(RoleLaminacion, false, allowed) {
		t.Fatalf("laminacion should be denied")
	}
	if RoleAllowed(RoleAdmin, false, allowed) {
		t.Fatalf("admin role without is_admin flag should be denied")
	}
}

func TestLandingRoute_KnownRolesNeverFallThrough(t *testing.T) {
	for _, r := range AllRoles() {
		if route := r.LandingRoute(); route == "/" || route == "" {
			t.Fatalf("role %q has no landing route", r)
		}
	}
}

package services

import (
	"testing"

	"gorm.io/datatypes"

	"github.com/klasea/astillero-backend/internal/types"
)

func TestVisibleToRole_EmptyListMeansEveryone(t *testing.T) {
	p := &types.Procedimiento{}
	if !VisibleToRole(p, types.RolePanol) {
		t.Fatalf("nil roles_visibles should be visible to all")
	}
	p.RolesVisibles = datatypes.JSON([]byte(`[]`))
	if !VisibleToRole(p, types.RoleMuebles) {
		t.Fatalf("empty roles_visibles should be visible to all")
	}
}

func TestVisibleToRole_FiltersByListedRoles(t *testing.T) {
	p := &types.Procedimiento{
		RolesVisibles: datatypes.JSON([]byte(`["laminacion","panol"]`)),
	}
	if !VisibleToRole(p, types.RoleLaminacion) {
		t.Fatalf("laminacion should see the procedure")
	}
	if VisibleToRole(p, types.RoleMuebles) {
		t.Fatalf("muebles should not see the procedure")
	}
}

func TestVisibleToRole_UnparseableListFailsOpen(t *testing.T) {
	p := &types.Procedimiento{
		RolesVisibles: datatypes.JSON([]byte(`{not json`)),
	}
	if !VisibleToRole(p, types.RolePanol) {
		t.Fatalf("garbage roles_visibles should fail open")
	}
}

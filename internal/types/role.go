package types

// Role is the closed set of shop roles. Every route group carries an
// allow-list of roles; is_admin bypasses the allow-list entirely.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleOficina      Role = "oficina"
	RoleLaminacion   Role = "laminacion"
	RoleMuebles      Role = "muebles"
	RolePanol        Role = "panol"
	RoleMecanica     Role = "mecanica"
	RoleElectricidad Role = "electricidad"
)

func AllRoles() []Role {
	return []Role{
		RoleAdmin,
		RoleOficina,
		RoleLaminacion,
		RoleMuebles,
		RolePanol,
		RoleMecanica,
		RoleElectricidad,
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOficina, RoleLaminacion, RoleMuebles, RolePanol, RoleMecanica, RoleElectricidad:
		return true
	}
	return false
}

func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Administrador"
	case RoleOficina:
		return "Oficina"
	case RoleLaminacion:
		return "Laminación"
	case RoleMuebles:
		return "Muebles"
	case RolePanol:
		return "Pañol"
	case RoleMecanica:
		return "Mecánica"
	case RoleElectricidad:
		return "Electricidad"
	}
	return string(r)
}

// LandingRoute is where a denied navigation falls back to for this role.
func (r Role) LandingRoute() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleOficina:
		return "/obras"
	case RoleLaminacion:
		return "/laminacion"
	case RoleMuebles:
		return "/muebles"
	case RolePanol:
		return "/panol"
	case RoleMecanica, RoleElectricidad:
		return "/pedidos"
	}
	return "/"
}

// RoleAllowed is the route-guard predicate: the role is in the allow-list,
// or the profile carries the admin flag. An empty allow-list means any
// authenticated role.
func RoleAllowed(role Role, isAdmin bool, allowed []Role) bool {
	if isAdmin {
		return true
	}
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == role {
			return true
		}
	}
	return false
}

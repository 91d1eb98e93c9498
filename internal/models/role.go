package models

import "strings"

// Role enum. The legacy clients shipped roles in several shapes (bare
// string, array of strings, object with a name/role/type field), so all
// deserialization funnels through NormalizeRole and internal code only ever
// sees these values.
type Role string

const (
	RoleGuest      Role = "guest"
	RoleCustomer   Role = "customer"
	RoleStaff      Role = "staff"
	RoleConsultant Role = "consultant"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
)

var knownRoles = map[string]Role{
	"guest":      RoleGuest,
	"customer":   RoleCustomer,
	"staff":      RoleStaff,
	"consultant": RoleConsultant,
	"manager":    RoleManager,
	"admin":      RoleAdmin,
}

// Valid reports whether r is one of the six defined roles.
func (r Role) Valid() bool {
	_, ok := knownRoles[string(r)]
	return ok
}

// Privileged reports whether r may access the management surface.
func (r Role) Privileged() bool {
	switch r {
	case RoleStaff, RoleConsultant, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// NormalizeRole converts any of the legacy role shapes into a Role. It
// accepts a string, a list (first recognized entry wins), or an object
// keyed by "name", "role" or "type". Anything unrecognized maps to guest.
func NormalizeRole(v interface{}) Role {
	switch val := v.(type) {
	case Role:
		if val.Valid() {
			return val
		}
	case string:
		if r, ok := knownRoles[strings.ToLower(strings.TrimSpace(val))]; ok {
			return r
		}
	case []string:
		for _, s := range val {
			if r := NormalizeRole(s); r != RoleGuest {
				return r
			}
		}
	case []interface{}:
		for _, item := range val {
			if r := NormalizeRole(item); r != RoleGuest {
				return r
			}
		}
	case map[string]interface{}:
		for _, key := range []string{"name", "role", "type"} {
			if inner, ok := val[key]; ok {
				if r := NormalizeRole(inner); r != RoleGuest {
					return r
				}
			}
		}
	}
	return RoleGuest
}

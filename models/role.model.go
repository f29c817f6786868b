package models

import (
	"fmt"
	"strings"
)

// Role is the account type a user registers with. It drives which orders a
// user can see, who may change an order's status and which dashboard they get.
type Role string

const (
	RoleIndividual Role = "individual"
	RoleBusiness   Role = "business"
	RoleCollector  Role = "collector"
	RoleCommunity  Role = "community"
)

var roles = []Role{RoleIndividual, RoleBusiness, RoleCollector, RoleCommunity}

// ParseRole accepts any casing ("BUSINESS", "Business"). An empty value is an
// individual account.
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RoleIndividual, nil
	}
	for _, r := range roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown user type %q", s)
}

func (r Role) Valid() bool {
	for _, known := range roles {
		if r == known {
			return true
		}
	}
	return false
}

// IsBuyer reports whether the role places orders rather than fulfilling them.
func (r Role) IsBuyer() bool {
	switch r {
	case RoleIndividual, RoleBusiness, RoleCommunity:
		return true
	case RoleCollector:
		return false
	}
	return false
}

// IsSeller reports whether the role may put products on the marketplace.
func (r Role) IsSeller() bool {
	return r == RoleCollector || r == RoleBusiness
}

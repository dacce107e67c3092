package types

import "strings"

const (
	// ActorRoleAdmin represents staff accounts allowed to act on any user.
	ActorRoleAdmin = "admin"
	// ActorRoleSystem is used by CLI and seed jobs.
	ActorRoleSystem = "system"
	// ActorRoleMember is the default role assigned at registration.
	ActorRoleMember = "member"
)

// RoleName normalizes the actor role for comparisons.
func (a ActorRef) RoleName() string {
	return normalizeRole(a.Type)
}

// IsRole reports whether the actor matches the provided role.
func (a ActorRef) IsRole(role string) bool {
	role = normalizeRole(role)
	if role == "" {
		return a.RoleName() == ""
	}
	return a.RoleName() == role
}

// IsPrivileged reports whether the actor may act on behalf of other users.
func (a ActorRef) IsPrivileged() bool {
	return a.IsRole(ActorRoleAdmin) || a.IsRole(ActorRoleSystem)
}

func normalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

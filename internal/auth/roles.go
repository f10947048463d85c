package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/techhelpdesk/helpdesk-service/internal/domain"
	apperrors "github.com/techhelpdesk/helpdesk-service/pkg/util"
)

// Permission names a role-gated operation.
type Permission string

const (
	PermTicketCreate       Permission = "ticket:create"
	PermTicketRead         Permission = "ticket:read"
	PermTicketListAll      Permission = "ticket:list_all"
	PermTicketChangeStatus Permission = "ticket:change_status"
	PermTicketAssign       Permission = "ticket:assign"
	PermTicketDelete       Permission = "ticket:delete"
	PermUserManage         Permission = "user:manage"
	PermReferenceManage    Permission = "reference:manage"
	PermReferenceRead      Permission = "reference:read"
)

// permissionRoles is the capability table consumed at the HTTP boundary. The
// core services perform no authorization themselves.
var permissionRoles = map[Permission][]domain.UserRole{
	PermTicketCreate:       {domain.UserRoleClient, domain.UserRoleAdmin},
	PermTicketRead:         {domain.UserRoleAdmin, domain.UserRoleTechnician, domain.UserRoleClient},
	PermTicketListAll:      {domain.UserRoleAdmin},
	PermTicketChangeStatus: {domain.UserRoleTechnician, domain.UserRoleAdmin},
	PermTicketAssign:       {domain.UserRoleTechnician, domain.UserRoleAdmin},
	PermTicketDelete:       {domain.UserRoleAdmin},
	PermUserManage:         {domain.UserRoleAdmin},
	PermReferenceManage:    {domain.UserRoleAdmin},
	PermReferenceRead:      {domain.UserRoleAdmin, domain.UserRoleTechnician, domain.UserRoleClient},
}

// RolesFor returns the roles allowed to perform the permission.
func RolesFor(perm Permission) []domain.UserRole {
	return permissionRoles[perm]
}

// Require ensures the authenticated principal holds a role permitted for the
// given operation.
func Require(perm Permission) fiber.Handler {
	roles := RolesFor(perm)
	allowed := make(map[domain.UserRole]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if _, exists := allowed[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

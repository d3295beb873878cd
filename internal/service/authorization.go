package service

import (
	"fmt"

	"github.com/jonyprachine123/test-2/internal/model"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
)

// Resources and actions guarded by the authorization service
const (
	ResourceProducts = "products"
	ResourceOrders   = "orders"
	ResourceBanners  = "banners"
	ResourceReviews  = "reviews"

	ActionRead  = "read"
	ActionWrite = "write"
)

// rbacModel grants permissions to roles; g lets one role inherit another
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// defaultPolicies: operators fulfil orders and moderate reviews, admins also manage the catalog
var defaultPolicies = [][]string{
	{model.RoleOperator, ResourceOrders, ActionRead},
	{model.RoleOperator, ResourceOrders, ActionWrite},
	{model.RoleOperator, ResourceReviews, ActionWrite},
	{model.RoleAdmin, ResourceProducts, ActionWrite},
	{model.RoleAdmin, ResourceBanners, ActionWrite},
}

// AuthorizationService decides whether a back-office user may act on a resource
type AuthorizationService struct {
	enforcer *casbin.Enforcer
}

// NewAuthorizationService builds the RBAC enforcer with the storefront policy
func NewAuthorizationService() (*AuthorizationService, error) {
	m, err := casbinmodel.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load RBAC model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize RBAC enforcer: %w", err)
	}

	for _, p := range defaultPolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("failed to add policy %v: %w", p, err)
		}
	}
	if _, err := enforcer.AddRoleForUser(model.RoleAdmin, model.RoleOperator); err != nil {
		return nil, fmt.Errorf("failed to add role inheritance: %w", err)
	}

	return &AuthorizationService{enforcer: enforcer}, nil
}

// CheckPermission reports whether user's role allows action on resource
func (s *AuthorizationService) CheckPermission(user *model.User, resource, action string) (bool, error) {
	if user == nil {
		return false, nil
	}
	allowed, err := s.enforcer.Enforce(user.Role, resource, action)
	if err != nil {
		return false, fmt.Errorf("RBAC permission check failed: %w", err)
	}
	return allowed, nil
}

// GetRolePermissions returns the permissions a role holds, including inherited ones
func (s *AuthorizationService) GetRolePermissions(role string) ([][]string, error) {
	permissions, err := s.enforcer.GetImplicitPermissionsForUser(role)
	if err != nil {
		return nil, fmt.Errorf("failed to get role permissions: %w", err)
	}
	return permissions, nil
}

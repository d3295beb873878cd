package service

import (
	"testing"

	"github.com/jonyprachine123/test-2/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizationService(t *testing.T) {
	authz, err := NewAuthorizationService()
	require.NoError(t, err)

	admin := &model.User{Username: "admin", Role: model.RoleAdmin}
	operator := &model.User{Username: "packer", Role: model.RoleOperator}
	stranger := &model.User{Username: "guest", Role: "customer"}

	tests := []struct {
		user     *model.User
		resource string
		action   string
		allowed  bool
	}{
		{admin, ResourceProducts, ActionWrite, true},
		{admin, ResourceBanners, ActionWrite, true},
		{admin, ResourceOrders, ActionRead, true},
		{admin, ResourceReviews, ActionWrite, true},
		{operator, ResourceOrders, ActionRead, true},
		{operator, ResourceOrders, ActionWrite, true},
		{operator, ResourceReviews, ActionWrite, true},
		{operator, ResourceProducts, ActionWrite, false},
		{operator, ResourceBanners, ActionWrite, false},
		{stranger, ResourceOrders, ActionRead, false},
		{nil, ResourceOrders, ActionRead, false},
	}

	for _, tt := range tests {
		name := "nil"
		if tt.user != nil {
			name = tt.user.Role
		}
		t.Run(name+"/"+tt.resource+"/"+tt.action, func(t *testing.T) {
			allowed, err := authz.CheckPermission(tt.user, tt.resource, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, allowed)
		})
	}

	permissions, err := authz.GetRolePermissions(model.RoleAdmin)
	require.NoError(t, err)
	assert.Contains(t, permissions, []string{model.RoleOperator, ResourceOrders, ActionRead})
	assert.Contains(t, permissions, []string{model.RoleAdmin, ResourceProducts, ActionWrite})
}

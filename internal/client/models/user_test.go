package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leavedesk/leavedesk/internal/common"
)

func TestIdentity_DisplayName(t *testing.T) {
	tests := []struct {
		name  string
		ident Identity
		want  string
	}{
		{"full name", Identity{User: User{FirstName: "Dana", LastName: "Price", Username: "dana"}}, "Dana Price"},
		{"first only", Identity{User: User{FirstName: "Dana", Username: "dana"}}, "Dana"},
		{"fallback to username", Identity{User: User{Username: "dana"}}, "dana"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ident.DisplayName())
		})
	}
}

func TestRequireRole(t *testing.T) {
	admin := &Identity{Role: RoleAdmin}
	employee := &Identity{Role: RoleEmployee}
	alien := &Identity{Role: "contractor"}

	tests := []struct {
		name    string
		ident   *Identity
		want    Role
		wantErr error
	}{
		{"nil identity", nil, RoleAdmin, common.ErrUnauthorized},
		{"admin ok", admin, RoleAdmin, nil},
		{"employee ok", employee, RoleEmployee, nil},
		{"employee on admin op", employee, RoleAdmin, common.ErrNotPermitted},
		{"admin on employee op", admin, RoleEmployee, common.ErrNotPermitted},
		{"unknown role", alien, RoleAdmin, common.ErrNotPermitted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireRole(tt.ident, tt.want)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestIdentity_UnmarshalWireShape(t *testing.T) {
	payload := `{
		"id": 3,
		"user": {"id": 7, "email": "dana@corp.test", "username": "dana", "first_name": "Dana", "last_name": "Price"},
		"role": "employee",
		"casual_leave_balance": 10,
		"sick_leave_balance": 8
	}`

	var ident Identity
	require.NoError(t, json.Unmarshal([]byte(payload), &ident))
	assert.Equal(t, RoleEmployee, ident.Role)
	assert.Equal(t, int64(7), ident.User.ID)
	assert.Equal(t, 10, ident.CasualLeaveBalance)
	assert.Equal(t, 8, ident.SickLeaveBalance)
	assert.True(t, ident.Role.Valid())
}

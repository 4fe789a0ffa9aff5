package middleware_test

import (
	"testing"

	"fotoshare-backend/internal/middleware"

	"github.com/stretchr/testify/assert"
)

func TestHasRoleAccess(t *testing.T) {
	// Admin boleh masuk kemana aja
	assert.True(t, middleware.HasRoleAccess(middleware.RoleAdmin, middleware.RolePhotographer))
	assert.True(t, middleware.HasRoleAccess(middleware.RoleAdmin, middleware.RoleClient))
	assert.True(t, middleware.HasRoleAccess(middleware.RoleAdmin, middleware.RoleAdmin))

	// Role lain cuma boleh kalau memang terdaftar
	assert.True(t, middleware.HasRoleAccess(middleware.RolePhotographer, middleware.RolePhotographer))
	assert.True(t, middleware.HasRoleAccess(middleware.RoleClient, middleware.RolePhotographer, middleware.RoleClient))
	assert.False(t, middleware.HasRoleAccess(middleware.RoleClient, middleware.RolePhotographer))
	assert.False(t, middleware.HasRoleAccess(middleware.RolePhotographer, middleware.RoleAdmin))

	// Role ngaco (0 atau gak dikenal) gak pernah lolos
	assert.False(t, middleware.HasRoleAccess(0, middleware.RolePhotographer, middleware.RoleClient))
	assert.False(t, middleware.HasRoleAccess(99, middleware.RoleAdmin))

	// Daftar kosong = gak ada yang boleh, kecuali admin
	assert.False(t, middleware.HasRoleAccess(middleware.RoleClient))
	assert.True(t, middleware.HasRoleAccess(middleware.RoleAdmin))
}

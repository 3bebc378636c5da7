package main

import (
	"context"
	"testing"

	"github.com/anonto42/social-admin/backend/internal/auth"
	"github.com/anonto42/social-admin/backend/internal/models"
	"github.com/anonto42/social-admin/backend/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAdmin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	req := models.CreateAdminRequest{Name: "Ops", Email: "ops@example.com", Password: "password123"}

	t.Run("new email becomes an admin", func(t *testing.T) {
		t.Parallel()

		store := &memory.Store{}
		require.NoError(t, createAdmin(ctx, store, req))

		admin, err := store.GetAdminByEmail(ctx, req.Email)
		require.NoError(t, err)
		assert.Equal(t, "Ops", admin.Name)
		assert.Equal(t, models.RoleAdmin, admin.Role)
		assert.NoError(t, auth.CheckPassword(admin.Password, req.Password))
	})

	t.Run("existing admin is left alone", func(t *testing.T) {
		t.Parallel()

		store := &memory.Store{Users: []models.User{
			{ID: 1, Name: "Original", Email: req.Email, Password: "kept", Role: models.RoleAdmin},
		}}
		require.NoError(t, createAdmin(ctx, store, req))

		require.Len(t, store.Users, 1)
		assert.Equal(t, "Original", store.Users[0].Name)
		assert.Equal(t, "kept", store.Users[0].Password)
	})

	t.Run("email held by a member fails", func(t *testing.T) {
		t.Parallel()

		store := &memory.Store{Users: []models.User{
			{ID: 1, Name: "Member", Email: "OPS@example.com", Role: models.RoleUser},
		}}
		err := createAdmin(ctx, store, req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already belongs")

		require.Len(t, store.Users, 1)
		assert.Equal(t, models.RoleUser, store.Users[0].Role)
	})
}

package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"amanah_backend/internals/constants"
	authModel "amanah_backend/internals/features/users/auth/model"
	"amanah_backend/internals/testutil"
)

func TestSeedAdminIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	require.NoError(t, SeedAdmin(ctx, db, AdminSeed{Email: " Admin@Example.org ", Password: "s3cret-pass"}))
	require.NoError(t, SeedAdmin(ctx, db, AdminSeed{Email: "admin@example.org", Password: "another-pass"}))

	var users []authModel.UserModel
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "admin@example.org", users[0].Email)
	assert.Equal(t, constants.RoleSuperAdmin, users[0].Role)
	assert.Equal(t, "Administrator", users[0].FullName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].PasswordHash), []byte("s3cret-pass")))
}

func TestSeedAdminSkipsOrRejects(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	require.NoError(t, SeedAdmin(ctx, db, AdminSeed{}))
	assert.Error(t, SeedAdmin(ctx, db, AdminSeed{Email: "a@example.org", Password: "short"}))

	var n int64
	db.Model(&authModel.UserModel{}).Count(&n)
	assert.Zero(t, n)
}

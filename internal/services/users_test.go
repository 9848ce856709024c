package services

import (
	"context"
	"testing"

	"github.com/maxaizer/placement-portal/internal/apperr"
	"github.com/maxaizer/placement-portal/internal/domain/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Users_BootstrapAdminGetsAdminRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	isAdmin, err := env.users.IsAdmin(ctx, adminID)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = env.users.IsAdmin(ctx, studentID)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	isAdmin, err = env.users.IsAdmin(ctx, "")
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func Test_Users_AdminRoleCannotBeSelfAssigned(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.CreateProfile(context.Background(), "newcomer", ProfileInput{Name: "Eve", Role: "admin"})
	assert.True(t, apperr.Is(err, apperr.KindAuthorization))

	profile, err := env.users.CreateProfile(context.Background(), "newcomer", ProfileInput{Name: "Eve", Role: "pr"})
	require.NoError(t, err)
	assert.Equal(t, models.RolePR, profile.Role)
}

func Test_Users_ProfileLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.CreateProfile(ctx, studentID, ProfileInput{Name: "Again"})
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	profile, err := env.users.EditProfile(ctx, studentID, ProfilePatch{
		Department:     lo.ToPtr("CSE"),
		GraduationYear: lo.ToPtr(2026),
		Skills:         &[]string{"go", "sql"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha", profile.Name)
	assert.Equal(t, "CSE", profile.Department)

	fetched, err := env.users.GetByID(ctx, otherID, studentID)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "sql"}, fetched.Skills)
	assert.Equal(t, 2026, fetched.GraduationYear)

	missing, err := env.users.GetProfile(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = env.users.EditProfile(ctx, "nobody", ProfilePatch{Name: lo.ToPtr("x")})
	assert.EqualError(t, err, "Profile not found")

	_, err = env.users.CreateProfile(ctx, "", ProfileInput{Name: "x"})
	assert.EqualError(t, err, "Not authenticated")
}

func Test_Users_SetResume(t *testing.T) {
	env := newTestEnv(t)

	profile, err := env.users.SetResume(context.Background(), studentID, "resumes/student-1.pdf")
	require.NoError(t, err)
	assert.Equal(t, "resumes/student-1.pdf", profile.ResumeKey)
}

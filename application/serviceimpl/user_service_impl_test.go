package serviceimpl

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhub/domain/dto"
	"taskhub/pkg/apperror"
	"taskhub/pkg/utils"
)

func signup(t *testing.T, h *harness, name, email string) *dto.AuthResponse {
	t.Helper()
	resp, err := h.userService.Signup(h.ctx, &dto.SignupRequest{Name: name, Email: email, Password: "secret1"})
	require.NoError(t, err)
	return resp
}

func TestSignupAndLogin(t *testing.T) {
	h := newHarness(t)

	resp := signup(t, h, "Alice", "  Alice@Example.com ")
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.NotEmpty(t, resp.Token)

	claims, err := utils.ValidateToken(resp.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.ID)

	login, err := h.userService.Login(h.ctx, &dto.LoginRequest{Email: "ALICE@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, login.UserID)

	stored, err := h.users.GetByID(h.ctx, resp.UserID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
}

func TestSignupRejections(t *testing.T) {
	h := newHarness(t)
	signup(t, h, "Alice", "alice@example.com")

	_, err := h.userService.Signup(h.ctx, &dto.SignupRequest{Name: "Other", Email: "ALICE@example.com", Password: "secret1"})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	_, err = h.userService.Signup(h.ctx, &dto.SignupRequest{Name: "Bob", Email: "bob@example.com", Password: "short"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = h.userService.Signup(h.ctx, &dto.SignupRequest{Name: "Bob", Email: "not-an-email", Password: "secret1"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	h.store.FailOn("users.Create", errors.New("connection reset"))
	_, err = h.userService.Signup(h.ctx, &dto.SignupRequest{Name: "Bob", Email: "bob@example.com", Password: "secret1"})
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}

func TestLoginRejections(t *testing.T) {
	h := newHarness(t)
	signup(t, h, "Alice", "alice@example.com")

	_, err := h.userService.Login(h.ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "wrong-pass"})
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
	assert.Equal(t, msgInvalidCredentials, apperror.As(err).Message)

	_, err = h.userService.Login(h.ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestLogoutRevokesToken(t *testing.T) {
	h := newHarness(t)
	resp := signup(t, h, "Alice", "alice@example.com")
	claims, err := utils.ValidateToken(resp.Token, "test-secret")
	require.NoError(t, err)

	revoked, err := h.userService.IsTokenRevoked(h.ctx, claims.TokenID)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, h.userService.Logout(h.ctx, claims.TokenID, claims.ExpiresAt))

	revoked, err = h.userService.IsTokenRevoked(h.ctx, claims.TokenID)
	require.NoError(t, err)
	assert.True(t, revoked)

	err = h.userService.Logout(h.ctx, "", claims.ExpiresAt)
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestListUsersAndProfile(t *testing.T) {
	h := newHarness(t)
	alice := signup(t, h, "Alice", "alice@example.com")
	bob := signup(t, h, "Bob", "bob@example.com")

	_, err := h.taskService.CreateIndividualTask(h.ctx, alice.UserID, individualRequest("Own"))
	require.NoError(t, err)
	_, err = h.taskService.CreateAdminTask(h.ctx, bob.UserID, adminRequest("Deploy", "Ops", alice.UserID))
	require.NoError(t, err)
	_, err = h.taskService.CreateAdminTask(h.ctx, alice.UserID, adminRequest("Self", "Solo", alice.UserID))
	require.NoError(t, err)

	users, err := h.userService.ListUsers(h.ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alice", users[0].Name)
	assert.Equal(t, "Bob", users[1].Name)

	profile, err := h.userService.GetProfile(h.ctx, alice.UserID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.Equal(t, int64(2), profile.CreatedTasksCount)
	assert.Equal(t, int64(1), profile.AssignedTasksCount)
	assert.Equal(t, int64(3), profile.TotalTasksCount)

	_, err = h.userService.GetProfile(h.ctx, uuid.New())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestUpdateProfile(t *testing.T) {
	h := newHarness(t)
	alice := signup(t, h, "Alice", "alice@example.com")
	bob := signup(t, h, "Bob", "bob@example.com")

	tests := []struct {
		name   string
		caller uuid.UUID
		req    dto.UpdateProfileRequest
		kind   apperror.Kind
	}{
		{"other user", bob.UserID, dto.UpdateProfileRequest{Name: "X", Email: "x@example.com"}, apperror.KindForbidden},
		{"missing name", alice.UserID, dto.UpdateProfileRequest{Email: "alice@example.com"}, apperror.KindValidation},
		{"email taken", alice.UserID, dto.UpdateProfileRequest{Name: "Alice", Email: "BOB@example.com"}, apperror.KindConflict},
		{"only new password", alice.UserID, dto.UpdateProfileRequest{Name: "Alice", Email: "alice@example.com", NewPassword: "another1"}, apperror.KindValidation},
		{"wrong old password", alice.UserID, dto.UpdateProfileRequest{Name: "Alice", Email: "alice@example.com", OldPassword: "nope-nope", NewPassword: "another1"}, apperror.KindUnauthorized},
		{"short new password", alice.UserID, dto.UpdateProfileRequest{Name: "Alice", Email: "alice@example.com", OldPassword: "secret1", NewPassword: "abc"}, apperror.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := h.userService.UpdateProfile(h.ctx, tt.caller, alice.UserID, &req)
			assert.Equal(t, tt.kind, apperror.KindOf(err))
		})
	}

	resp, err := h.userService.UpdateProfile(h.ctx, alice.UserID, alice.UserID, &dto.UpdateProfileRequest{
		Name:        "Alice Cooper",
		Email:       "Cooper@Example.com",
		OldPassword: "secret1",
		NewPassword: "another1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", resp.Profile.Name)
	assert.Equal(t, "cooper@example.com", resp.Profile.Email)

	claims, err := utils.ValidateToken(resp.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "cooper@example.com", claims.Email)

	_, err = h.userService.Login(h.ctx, &dto.LoginRequest{Email: "cooper@example.com", Password: "another1"})
	assert.NoError(t, err)
	_, err = h.userService.Login(h.ctx, &dto.LoginRequest{Email: "cooper@example.com", Password: "secret1"})
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

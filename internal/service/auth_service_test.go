package service_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ourhour/weddinghub/internal/model"
	"ourhour/weddinghub/internal/repository"
	"ourhour/weddinghub/internal/repository/repotest"
	"ourhour/weddinghub/internal/service"
	jwtpkg "ourhour/weddinghub/pkg/jwt"
)

func newAuthService(store *repotest.Store) (service.AuthService, *jwtpkg.Manager) {
	jm := jwtpkg.NewManager("test-signing-key", "ourhour", time.Hour, 24*time.Hour)
	return service.NewAuthService(store.Users(), repository.NewMemoryRefreshTokenStore(), jm), jm
}

func signup(t *testing.T, svc service.AuthService, email string) *service.AuthResult {
	t.Helper()
	res, err := svc.Signup(context.Background(), service.SignupInput{
		Email:           email,
		Password:        "s3cure-pass",
		PasswordConfirm: "s3cure-pass",
		Name:            "김철수",
		Phone:           "010-1234-5678",
	})
	require.NoError(t, err)
	return res
}

func TestSignupIssuesBearerTokens(t *testing.T) {
	store := repotest.NewStore()
	svc, jm := newAuthService(store)

	res := signup(t, svc, "groom@example.com")
	assert.Equal(t, model.UserRoleUser, res.User.Role)
	assert.Equal(t, model.AuthProviderLocal, res.User.Provider)
	assert.NotEqual(t, "s3cure-pass", res.User.PasswordHash)
	assert.Equal(t, "Bearer", res.Tokens.TokenType)
	assert.Equal(t, int64(3600), res.Tokens.ExpiresIn)

	claims, err := jm.Validate(res.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID.String(), claims.Subject)
	assert.Equal(t, "USER", claims.Role)
}

func TestSignupRejectsDuplicateEmailIgnoringCase(t *testing.T) {
	store := repotest.NewStore()
	svc, _ := newAuthService(store)
	signup(t, svc, "bride@example.com")

	_, err := svc.Signup(context.Background(), service.SignupInput{
		Email:           "Bride@Example.com",
		Password:        "another-pass",
		PasswordConfirm: "another-pass",
		Name:            "이영희",
	})
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestSignupRejectsPasswordMismatch(t *testing.T) {
	svc, _ := newAuthService(repotest.NewStore())
	_, err := svc.Signup(context.Background(), service.SignupInput{
		Email:           "a@example.com",
		Password:        "password-one",
		PasswordConfirm: "password-two",
		Name:            "a",
	})
	assert.ErrorIs(t, err, service.ErrPasswordMismatch)
}

func TestLoginChecksPasswordAndRecordsLastLogin(t *testing.T) {
	store := repotest.NewStore()
	svc, _ := newAuthService(store)
	created := signup(t, svc, "groom@example.com")
	ctx := context.Background()

	_, err := svc.Login(ctx, "groom@example.com", "wrong-pass")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "s3cure-pass")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	res, err := svc.Login(ctx, "GROOM@example.com", "s3cure-pass")
	require.NoError(t, err)
	assert.Equal(t, created.User.ID, res.User.ID)
	assert.NotNil(t, res.User.LastLogin)

	me, err := svc.Me(ctx, created.User.ID)
	require.NoError(t, err)
	assert.NotNil(t, me.LastLogin)
}

func TestRefreshRotatesToken(t *testing.T) {
	store := repotest.NewStore()
	svc, _ := newAuthService(store)
	res := signup(t, svc, "groom@example.com")
	ctx := context.Background()

	rotated, err := svc.Refresh(ctx, res.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, res.Tokens.RefreshToken, rotated.RefreshToken)

	_, err = svc.Refresh(ctx, res.Tokens.RefreshToken)
	assert.ErrorIs(t, err, service.ErrRefreshTokenInvalid)

	// access tokens are not refresh tokens
	_, err = svc.Refresh(ctx, rotated.AccessToken)
	assert.ErrorIs(t, err, service.ErrRefreshTokenInvalid)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	store := repotest.NewStore()
	svc, _ := newAuthService(store)
	res := signup(t, svc, "groom@example.com")
	other := signup(t, svc, "bride@example.com")
	ctx := context.Background()

	err := svc.Logout(ctx, other.User.ID, res.Tokens.RefreshToken)
	assert.ErrorIs(t, err, service.ErrRefreshTokenInvalid)

	require.NoError(t, svc.Logout(ctx, res.User.ID, res.Tokens.RefreshToken))
	_, err = svc.Refresh(ctx, res.Tokens.RefreshToken)
	assert.ErrorIs(t, err, service.ErrRefreshTokenInvalid)
}

func TestConcurrentRefreshWithOneTokenSucceedsOnce(t *testing.T) {
	store := repotest.NewStore()
	svc, _ := newAuthService(store)
	res := signup(t, svc, "groom@example.com")
	ctx := context.Background()

	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		rejected  atomic.Int32
	)
	start := make(chan struct{})
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.Refresh(ctx, res.Tokens.RefreshToken)
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, service.ErrRefreshTokenInvalid):
				rejected.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.EqualValues(t, 1, successes.Load())
	assert.EqualValues(t, 15, rejected.Load())
}

func TestLogoutTwiceIsRejected(t *testing.T) {
	store := repotest.NewStore()
	svc, _ := newAuthService(store)
	res := signup(t, svc, "groom@example.com")
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx, res.User.ID, res.Tokens.RefreshToken))
	assert.ErrorIs(t, svc.Logout(ctx, res.User.ID, res.Tokens.RefreshToken), service.ErrRefreshTokenInvalid)
}

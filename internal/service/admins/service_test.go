package admins

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
	adminRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/admin"
	"github.com/m04kA/TSZH-FacilityService/internal/service/admins/models"
	twofactorSvc "github.com/m04kA/TSZH-FacilityService/internal/service/twofactor"
	"github.com/m04kA/TSZH-FacilityService/pkg/auth"
)

// Фейки

type fakeAdminRepo struct {
	admins map[int64]*domain.Admin
}

func (r *fakeAdminRepo) GetByID(_ context.Context, id int64) (*domain.Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, adminRepo.ErrAdminNotFound
	}
	return a, nil
}

func (r *fakeAdminRepo) GetByUsername(_ context.Context, username string) (*domain.Admin, error) {
	for _, a := range r.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, adminRepo.ErrAdminNotFound
}

func (r *fakeAdminRepo) SetTwoFactorEnabled(_ context.Context, id int64, enabled bool) error {
	a, ok := r.admins[id]
	if !ok {
		return adminRepo.ErrAdminNotFound
	}
	a.TwoFactorEnabled = enabled
	return nil
}

type fakeTwoFactor struct {
	issued    int
	verifyErr error
}

func (f *fakeTwoFactor) Issue(_ context.Context, _ *domain.Admin) error {
	f.issued++
	return nil
}

func (f *fakeTwoFactor) Verify(_ context.Context, _ int64, _ string) error {
	return f.verifyErr
}

type fakeTokenIssuer struct {
	lastUserID int64
	lastRole   string
}

func (i *fakeTokenIssuer) IssueToken(userID int64, role string) (string, error) {
	i.lastUserID = userID
	i.lastRole = role
	return "admin-token", nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(t *testing.T, twoFactorEnabled bool) (*Service, *fakeAdminRepo, *fakeTwoFactor, *fakeTokenIssuer) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("adminpass"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeAdminRepo{admins: map[int64]*domain.Admin{
		1: {
			ID:               1,
			Username:         "manager",
			Email:            "manager@example.com",
			PasswordHash:     string(hash),
			TwoFactorEnabled: twoFactorEnabled,
		},
	}}
	twoFactor := &fakeTwoFactor{}
	issuer := &fakeTokenIssuer{}

	return NewService(repo, twoFactor, issuer, nopLogger{}), repo, twoFactor, issuer
}

// Тесты

func TestLogin_WithoutTwoFactor(t *testing.T) {
	svc, _, twoFactor, issuer := newTestService(t, false)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{
		Username: "manager",
		Password: "adminpass",
	})
	require.NoError(t, err)

	assert.Equal(t, "admin-token", resp.Token)
	assert.False(t, resp.TwoFactorRequired)
	assert.Equal(t, auth.RoleAdmin, issuer.lastRole)
	assert.Equal(t, 0, twoFactor.issued)
}

func TestLogin_WithTwoFactorDefersToken(t *testing.T) {
	svc, _, twoFactor, _ := newTestService(t, true)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{
		Username: "manager",
		Password: "adminpass",
	})
	require.NoError(t, err)

	// Токен не выдан, отправлен одноразовый код
	assert.Empty(t, resp.Token)
	assert.True(t, resp.TwoFactorRequired)
	assert.Equal(t, int64(1), resp.AdminID)
	assert.Equal(t, 1, twoFactor.issued)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _, _, _ := newTestService(t, false)

	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Username: "manager",
		Password: "wrongpass",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &models.LoginRequest{
		Username: "ghost",
		Password: "adminpass",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyCode_Success(t *testing.T) {
	svc, _, _, issuer := newTestService(t, true)

	resp, err := svc.VerifyCode(context.Background(), &models.VerifyCodeRequest{
		AdminID: 1,
		Code:    "123456",
	})
	require.NoError(t, err)

	assert.Equal(t, "admin-token", resp.Token)
	assert.Equal(t, int64(1), issuer.lastUserID)
	assert.Equal(t, auth.RoleAdmin, issuer.lastRole)
}

func TestVerifyCode_ErrorMapping(t *testing.T) {
	svc, _, twoFactor, _ := newTestService(t, true)

	twoFactor.verifyErr = twofactorSvc.ErrCodeExpired
	_, err := svc.VerifyCode(context.Background(), &models.VerifyCodeRequest{AdminID: 1, Code: "123456"})
	assert.ErrorIs(t, err, ErrCodeExpired)

	twoFactor.verifyErr = twofactorSvc.ErrCodeInvalid
	_, err = svc.VerifyCode(context.Background(), &models.VerifyCodeRequest{AdminID: 1, Code: "123456"})
	assert.ErrorIs(t, err, ErrCodeInvalid)
}

func TestSetupTwoFactor(t *testing.T) {
	svc, repo, _, _ := newTestService(t, false)

	require.NoError(t, svc.SetupTwoFactor(context.Background(), 1))
	assert.True(t, repo.admins[1].TwoFactorEnabled)

	assert.ErrorIs(t, svc.SetupTwoFactor(context.Background(), 404), ErrAdminNotFound)
}

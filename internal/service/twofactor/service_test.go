package twofactor

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
	codeRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/twofactor"
)

// Фейки

type fakeCodeRepo struct {
	codes map[int64]*domain.TwoFactorCode
}

func newFakeCodeRepo() *fakeCodeRepo {
	return &fakeCodeRepo{codes: make(map[int64]*domain.TwoFactorCode)}
}

func (r *fakeCodeRepo) Upsert(_ context.Context, adminID int64, code string, expiresAt time.Time) error {
	r.codes[adminID] = &domain.TwoFactorCode{
		AdminID:   adminID,
		Code:      code,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *fakeCodeRepo) Get(_ context.Context, adminID int64) (*domain.TwoFactorCode, error) {
	c, ok := r.codes[adminID]
	if !ok {
		return nil, codeRepo.ErrCodeNotFound
	}
	return c, nil
}

func (r *fakeCodeRepo) Delete(_ context.Context, adminID int64) error {
	delete(r.codes, adminID)
	return nil
}

func (r *fakeCodeRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var deleted int64
	for id, c := range r.codes {
		if c.IsExpired(now) {
			delete(r.codes, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeNotifier struct {
	sent     int
	lastCode string
}

func (n *fakeNotifier) SendTwoFactorCode(_ context.Context, _ *domain.Admin, code string) {
	n.sent++
	n.lastCode = code
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeCodeRepo, *fakeNotifier, *fakeClock) {
	repo := newFakeCodeRepo()
	notifier := &fakeNotifier{}
	clock := &fakeClock{now: time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)}

	svc := NewService(repo, notifier, nopLogger{})
	svc.timeProvider = clock
	return svc, repo, notifier, clock
}

var testAdmin = &domain.Admin{ID: 1, Username: "manager", Email: "manager@example.com"}

// Тесты

func TestIssue_SendsSixDigitCode(t *testing.T) {
	svc, repo, notifier, clock := newTestService()

	require.NoError(t, svc.Issue(context.Background(), testAdmin))

	assert.Equal(t, 1, notifier.sent)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), notifier.lastCode)

	stored := repo.codes[1]
	require.NotNil(t, stored)
	assert.Equal(t, notifier.lastCode, stored.Code)
	assert.Equal(t, clock.now.Add(domain.TwoFactorCodeTTLMinutes*time.Minute), stored.ExpiresAt)
}

func TestIssue_ReissueOverwritesPreviousCode(t *testing.T) {
	svc, repo, notifier, _ := newTestService()

	require.NoError(t, svc.Issue(context.Background(), testAdmin))
	first := notifier.lastCode

	require.NoError(t, svc.Issue(context.Background(), testAdmin))

	// Старый код больше не действует
	assert.Equal(t, notifier.lastCode, repo.codes[1].Code)
	if first != notifier.lastCode {
		assert.ErrorIs(t, svc.Verify(context.Background(), 1, first), ErrCodeInvalid)
	}
}

func TestVerify_SuccessConsumesCode(t *testing.T) {
	svc, repo, notifier, _ := newTestService()

	require.NoError(t, svc.Issue(context.Background(), testAdmin))
	require.NoError(t, svc.Verify(context.Background(), 1, notifier.lastCode))

	// Код одноразовый
	assert.Empty(t, repo.codes)
	assert.ErrorIs(t, svc.Verify(context.Background(), 1, notifier.lastCode), ErrCodeInvalid)
}

func TestVerify_WrongCode(t *testing.T) {
	svc, repo, notifier, _ := newTestService()

	require.NoError(t, svc.Issue(context.Background(), testAdmin))

	wrong := "000000"
	if wrong == notifier.lastCode {
		wrong = "000001"
	}
	assert.ErrorIs(t, svc.Verify(context.Background(), 1, wrong), ErrCodeInvalid)

	// Неверная попытка не сжигает код
	require.NotNil(t, repo.codes[1])
	assert.NoError(t, svc.Verify(context.Background(), 1, notifier.lastCode))
}

func TestVerify_ExpiredCodeIsEvicted(t *testing.T) {
	svc, repo, notifier, clock := newTestService()

	require.NoError(t, svc.Issue(context.Background(), testAdmin))

	clock.now = clock.now.Add(domain.TwoFactorCodeTTLMinutes*time.Minute + time.Second)

	assert.ErrorIs(t, svc.Verify(context.Background(), 1, notifier.lastCode), ErrCodeExpired)
	assert.Empty(t, repo.codes)
}

func TestVerify_NoCodeIssued(t *testing.T) {
	svc, _, _, _ := newTestService()

	assert.ErrorIs(t, svc.Verify(context.Background(), 42, "123456"), ErrCodeInvalid)
}

func TestEvictExpired(t *testing.T) {
	svc, repo, _, clock := newTestService()

	require.NoError(t, repo.Upsert(context.Background(), 1, "111111", clock.now.Add(-time.Minute)))
	require.NoError(t, repo.Upsert(context.Background(), 2, "222222", clock.now.Add(time.Minute)))

	require.NoError(t, svc.EvictExpired(context.Background()))

	assert.Nil(t, repo.codes[1])
	assert.NotNil(t, repo.codes[2])
}

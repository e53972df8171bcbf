package residents

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
	residentRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/resident"
	"github.com/m04kA/TSZH-FacilityService/internal/service/residents/models"
	"github.com/m04kA/TSZH-FacilityService/pkg/auth"
)

// Фейки

type fakeResidentRepo struct {
	nextID    int64
	residents map[int64]*domain.Resident
}

func newFakeResidentRepo() *fakeResidentRepo {
	return &fakeResidentRepo{nextID: 1, residents: make(map[int64]*domain.Resident)}
}

func (r *fakeResidentRepo) Create(_ context.Context, res *domain.Resident) (*domain.Resident, error) {
	for _, existing := range r.residents {
		if existing.Email == res.Email || existing.Phone == res.Phone || existing.ApartmentNumber == res.ApartmentNumber {
			return nil, residentRepo.ErrResidentExists
		}
	}

	stored := *res
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	r.nextID++
	r.residents[stored.ID] = &stored
	return &stored, nil
}

func (r *fakeResidentRepo) GetByID(_ context.Context, id int64) (*domain.Resident, error) {
	res, ok := r.residents[id]
	if !ok {
		return nil, residentRepo.ErrResidentNotFound
	}
	return res, nil
}

func (r *fakeResidentRepo) GetByApartment(_ context.Context, apartment string) (*domain.Resident, error) {
	for _, res := range r.residents {
		if res.ApartmentNumber == apartment {
			return res, nil
		}
	}
	return nil, residentRepo.ErrResidentNotFound
}

func (r *fakeResidentRepo) GetByActivationToken(_ context.Context, token string) (*domain.Resident, error) {
	for _, res := range r.residents {
		if res.ActivationToken != nil && *res.ActivationToken == token {
			return res, nil
		}
	}
	return nil, residentRepo.ErrResidentNotFound
}

func (r *fakeResidentRepo) List(_ context.Context) ([]*domain.Resident, error) {
	out := make([]*domain.Resident, 0, len(r.residents))
	for _, res := range r.residents {
		out = append(out, res)
	}
	return out, nil
}

func (r *fakeResidentRepo) Update(_ context.Context, res *domain.Resident) error {
	if _, ok := r.residents[res.ID]; !ok {
		return residentRepo.ErrResidentNotFound
	}
	r.residents[res.ID] = res
	return nil
}

func (r *fakeResidentRepo) Activate(_ context.Context, id int64, passwordHash string) error {
	res, ok := r.residents[id]
	if !ok {
		return residentRepo.ErrResidentNotFound
	}
	res.IsActive = true
	res.PasswordHash = passwordHash
	res.ActivationToken = nil
	res.ActivationTokenExpiry = nil
	return nil
}

func (r *fakeResidentRepo) SoftDelete(_ context.Context, id int64) error {
	if _, ok := r.residents[id]; !ok {
		return residentRepo.ErrResidentNotFound
	}
	delete(r.residents, id)
	return nil
}

type fakeNotifier struct {
	activations int
	lastToken   string
}

func (n *fakeNotifier) SendActivationEmail(_ context.Context, _ *domain.Resident, token string) {
	n.activations++
	n.lastToken = token
}

type fakeTokenIssuer struct {
	lastUserID int64
	lastRole   string
}

func (i *fakeTokenIssuer) IssueToken(userID int64, role string) (string, error) {
	i.lastUserID = userID
	i.lastRole = role
	return "test-token", nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	repo     *fakeResidentRepo
	notifier *fakeNotifier
	issuer   *fakeTokenIssuer
	clock    *fakeClock
	svc      *Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:     newFakeResidentRepo(),
		notifier: &fakeNotifier{},
		issuer:   &fakeTokenIssuer{},
		clock:    &fakeClock{now: time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)},
	}
	f.svc = NewService(f.repo, f.notifier, f.issuer, nopLogger{})
	f.svc.timeProvider = f.clock
	return f
}

func createRequest() *models.CreateResidentRequest {
	return &models.CreateResidentRequest{
		Name:            "Иван Петров",
		Email:           "ivan@example.com",
		Phone:           "+70000000001",
		ApartmentNumber: "12",
	}
}

// Тесты

func TestCreate_RegistersInactiveResidentWithToken(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	assert.False(t, resp.IsActive)

	stored := f.repo.residents[resp.ID]
	require.NotNil(t, stored)
	require.NotNil(t, stored.ActivationToken)
	require.NotNil(t, stored.ActivationTokenExpiry)
	assert.Equal(t, f.clock.now.Add(domain.ActivationTokenTTLHours*time.Hour), *stored.ActivationTokenExpiry)

	// Письмо с тем же токеном, что сохранен в хранилище
	assert.Equal(t, 1, f.notifier.activations)
	assert.Equal(t, *stored.ActivationToken, f.notifier.lastToken)
}

func TestCreate_DuplicateContacts(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), createRequest())
	assert.ErrorIs(t, err, ErrResidentExists)
}

func TestCreate_InvalidContacts(t *testing.T) {
	f := newFixture()

	req := createRequest()
	req.Email = "not-an-email"

	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, f.notifier.activations)
}

func TestActivate_Success(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	err = f.svc.Activate(context.Background(), &models.ActivateRequest{
		Token:    f.notifier.lastToken,
		Password: "strongpass",
	})
	require.NoError(t, err)

	stored := f.repo.residents[1]
	assert.True(t, stored.IsActive)
	assert.Nil(t, stored.ActivationToken)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("strongpass")))
}

func TestActivate_ExpiredToken(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	f.clock.now = f.clock.now.Add(domain.ActivationTokenTTLHours*time.Hour + time.Minute)

	err = f.svc.Activate(context.Background(), &models.ActivateRequest{
		Token:    f.notifier.lastToken,
		Password: "strongpass",
	})
	assert.ErrorIs(t, err, ErrActivationTokenExpired)
	assert.False(t, f.repo.residents[1].IsActive)
}

func TestActivate_UnknownToken(t *testing.T) {
	f := newFixture()

	err := f.svc.Activate(context.Background(), &models.ActivateRequest{
		Token:    "deadbeef",
		Password: "strongpass",
	})
	assert.ErrorIs(t, err, ErrActivationTokenInvalid)
}

func TestActivate_PasswordTooShort(t *testing.T) {
	f := newFixture()

	err := f.svc.Activate(context.Background(), &models.ActivateRequest{
		Token:    "sometoken",
		Password: "short",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin_Success(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	require.NoError(t, f.svc.Activate(context.Background(), &models.ActivateRequest{
		Token:    f.notifier.lastToken,
		Password: "strongpass",
	}))

	resp, err := f.svc.Login(context.Background(), &models.LoginRequest{
		ApartmentNumber: "12",
		Password:        "strongpass",
	})
	require.NoError(t, err)
	assert.Equal(t, "test-token", resp.Token)
	assert.Equal(t, int64(1), f.issuer.lastUserID)
	assert.Equal(t, auth.RoleResident, f.issuer.lastRole)
}

func TestLogin_NotActivatedAccount(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = f.svc.Login(context.Background(), &models.LoginRequest{
		ApartmentNumber: "12",
		Password:        "anything",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	require.NoError(t, f.svc.Activate(context.Background(), &models.ActivateRequest{
		Token:    f.notifier.lastToken,
		Password: "strongpass",
	}))

	_, err = f.svc.Login(context.Background(), &models.LoginRequest{
		ApartmentNumber: "12",
		Password:        "wrongpass",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownApartment(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Login(context.Background(), &models.LoginRequest{
		ApartmentNumber: "404",
		Password:        "anything",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdate_ConflictAndNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), &models.UpdateResidentRequest{
		ResidentID:      404,
		Name:            "Кто-то",
		Email:           "who@example.com",
		Phone:           "+70000000002",
		ApartmentNumber: "13",
	})
	assert.ErrorIs(t, err, ErrResidentNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	f := newFixture()

	assert.ErrorIs(t, f.svc.Delete(context.Background(), 404), ErrResidentNotFound)
}

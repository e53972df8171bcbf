package confirm_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TSZH-FacilityService/internal/api/middleware"
	confirmBooking "github.com/m04kA/TSZH-FacilityService/internal/usecase/confirm_booking"
	"github.com/m04kA/TSZH-FacilityService/pkg/auth"
)

type fakeUseCase struct {
	lastReq *confirmBooking.Request
	resp    *confirmBooking.Response
	err     error
}

func (uc *fakeUseCase) Execute(_ context.Context, req *confirmBooking.Request) (*confirmBooking.Response, error) {
	uc.lastReq = req
	if uc.err != nil {
		return nil, uc.err
	}
	return uc.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// newTestServer собирает маршрут так же, как production-роутер:
// JWT-аутентификация перед обработчиком
func newTestServer(uc *fakeUseCase) (*mux.Router, *auth.Manager) {
	manager := auth.NewManager("test-secret", time.Hour)
	handler := NewHandler(uc, nopLogger{})

	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth(manager, nopLogger{}))
	protected.HandleFunc("/bookings", handler.Handle).Methods(http.MethodPost)
	return r, manager
}

func doRequest(t *testing.T, router *mux.Router, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{resp: &confirmBooking.Response{
		ID:           1,
		ResidentID:   5,
		FacilityID:   1,
		TimeSlotID:   10,
		FacilityName: "Сауна",
		BookingDate:  time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:    "09:00",
		EndTime:      "11:00",
		Status:       "confirmed",
		CreatedAt:    time.Date(2025, 10, 14, 10, 0, 0, 0, time.UTC),
	}}

	router, manager := newTestServer(uc)
	token, err := manager.IssueToken(5, auth.RoleResident)
	require.NoError(t, err)

	rec := doRequest(t, router, token, `{"timeSlotId": 10}`)

	assert.Equal(t, http.StatusCreated, rec.Code)

	// ID жителя берется из токена, а не из тела запроса
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, int64(5), uc.lastReq.ResidentID)
	assert.Equal(t, int64(10), uc.lastReq.TimeSlotID)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Сауна", resp.FacilityName)
	assert.Equal(t, "2025-10-15", resp.BookingDate)
	assert.Equal(t, "09:00", resp.StartTime)
}

func TestHandle_WithoutToken(t *testing.T) {
	router, _ := newTestServer(&fakeUseCase{})

	rec := doRequest(t, router, "", `{"timeSlotId": 10}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_InvalidToken(t *testing.T) {
	router, _ := newTestServer(&fakeUseCase{})

	rec := doRequest(t, router, "not-a-jwt", `{"timeSlotId": 10}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"slot not available", confirmBooking.ErrSlotNotAvailable, http.StatusConflict},
		{"resident not found", confirmBooking.ErrResidentNotFound, http.StatusNotFound},
		{"facility not found", confirmBooking.ErrFacilityNotFound, http.StatusNotFound},
		{"invalid input", confirmBooking.ErrInvalidInput, http.StatusBadRequest},
		{"internal error", confirmBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, manager := newTestServer(&fakeUseCase{err: tc.err})
			token, err := manager.IssueToken(5, auth.RoleResident)
			require.NoError(t, err)

			rec := doRequest(t, router, token, `{"timeSlotId": 10}`)
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestHandle_MalformedBody(t *testing.T) {
	router, manager := newTestServer(&fakeUseCase{})
	token, err := manager.IssueToken(5, auth.RoleResident)
	require.NoError(t, err)

	rec := doRequest(t, router, token, `{"timeSlotId": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, token, `{"unknownField": 1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

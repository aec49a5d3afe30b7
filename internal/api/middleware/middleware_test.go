package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/constants"
	"github.com/RoyceAzure/lab/shopcenter/pkg/api/token"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestWithPayload(role string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	payload, _ := token.NewPayload("user@example.com", uuid.New(), role, time.Hour)
	ctx := context.WithValue(req.Context(), constants.AuthorizationPayloadKey, payload)
	return req.WithContext(ctx)
}

func TestRequestIdGenerated(t *testing.T) {
	rec := httptest.NewRecorder()
	RequestIdMiddleware(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	requestID := rec.Header().Get("request_id")
	require.NotEmpty(t, requestID)
	_, err := uuid.Parse(requestID)
	require.NoError(t, err)
}

func TestRequestIdPreserved(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("request_id", "client-supplied-id")

	rec := httptest.NewRecorder()
	RequestIdMiddleware(okHandler()).ServeHTTP(rec, req)

	require.Equal(t, "client-supplied-id", rec.Header().Get("request_id"))
}

func TestAuthMiddlewareRejectsAnonymous(t *testing.T) {
	rec := httptest.NewRecorder()
	AuthMiddleware(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "error", body["status"])
}

func TestAuthMiddlewarePassesAuthenticated(t *testing.T) {
	rec := httptest.NewRecorder()
	AuthMiddleware(okHandler()).ServeHTTP(rec, requestWithPayload("user"))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminMiddlewareRejectsUserRole(t *testing.T) {
	rec := httptest.NewRecorder()
	AdminMiddleware(okHandler()).ServeHTTP(rec, requestWithPayload("user"))

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminMiddlewarePassesAdmin(t *testing.T) {
	rec := httptest.NewRecorder()
	AdminMiddleware(okHandler()).ServeHTTP(rec, requestWithPayload("admin"))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLoggerMiddlewareRecoversPanic(t *testing.T) {
	logger := zerolog.Nop()
	panics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	LoggerMiddleware(&logger)(panics).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestStatusRecoderDefaultsToOK(t *testing.T) {
	rec := &StatusRecoder{ResponseWriter: httptest.NewRecorder()}
	require.Equal(t, http.StatusOK, rec.Status())

	rec.WriteHeader(http.StatusTeapot)
	require.Equal(t, http.StatusTeapot, rec.Status())
}

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	reqctx "github.com/dtroode/lovebomb-server/internal/api/http/context"
	"github.com/dtroode/lovebomb-server/internal/logger"
	"github.com/dtroode/lovebomb-server/internal/metrics"
	"github.com/dtroode/lovebomb-server/internal/mocks"
	noop "github.com/dtroode/lovebomb-server/internal/testutil"
)

func TestAuthenticate_Handle(t *testing.T) {
	t.Parallel()

	validID := uuid.New()

	tests := []struct {
		name       string
		header     string
		value      string
		svcUserID  uuid.UUID
		svcErr     error
		callSvc    bool
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "missing token",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "No token, authorization denied",
		},
		{
			name:       "invalid token",
			header:     "Authorization",
			value:      "Bearer invalid",
			svcErr:     assert.AnError,
			callSvc:    true,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Token is not valid",
		},
		{
			name:       "nil user id from token",
			header:     AuthTokenHeader,
			value:      "invalid",
			svcUserID:  uuid.Nil,
			callSvc:    true,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Token is not valid",
		},
		{
			name:       "valid x-auth-token",
			header:     AuthTokenHeader,
			value:      "valid",
			svcUserID:  validID,
			callSvc:    true,
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid bearer token",
			header:     "Authorization",
			value:      "Bearer valid",
			svcUserID:  validID,
			callSvc:    true,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens := mocks.NewTokenService(t)
			if tt.callSvc {
				token := tt.value
				if tt.header == "Authorization" {
					token = token[len("Bearer "):]
				}
				tokens.On("GetUserID", mock.Anything, token).Return(tt.svcUserID, tt.svcErr).Once()
			}

			cm := reqctx.NewManager()
			mw := NewAuthenticate(tokens, cm, noop.MakeNoopLogger())

			var gotID uuid.UUID
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID, _ = cm.GetUserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := httptest.NewRecorder()
			mw.Handle(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				assert.JSONEq(t, `{"msg":"`+tt.wantMsg+`"}`, rec.Body.String())
				return
			}
			assert.Equal(t, validID, gotID)
		})
	}
}

func TestLogging_Handle(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogging(logger.NewWithFormat(&buf, 0, "json"))

	h := l.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/brew", nil))

	out := buf.String()
	assert.Contains(t, out, `"msg":"HTTP request completed"`)
	assert.Contains(t, out, `"path":"/brew"`)
	assert.Contains(t, out, `"status":418`)

	buf.Reset()
	h = l.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/notepad/{notepadId}/messages", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/notepad/{notepadId}/messages", "204")
	before := testutil.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/notepad/"+uuid.NewString()+"/messages", nil))

	require.Equal(t, before+1, testutil.ToFloat64(counter))
}

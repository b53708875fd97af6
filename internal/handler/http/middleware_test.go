package http

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-todo-keeper/internal/app"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/mock"
	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/internal/utils"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// ---- auth ----

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{name: "bearer token", header: "Bearer my-jwt-token", wantToken: "my-jwt-token"},
		{name: "missing token part", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "empty header", header: "", wantErr: ErrInvalidAuthorizationHeader},
		{name: "only a space", header: " ", wantErr: ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		parseErr   error
		parse      bool
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", header: "Bearer good", parse: true, wantStatus: http.StatusOK},
		{name: "no header", wantStatus: http.StatusUnauthorized, wantBody: ErrEmptyAuthorizationHeader.Error()},
		{name: "malformed header", header: "Bearer", wantStatus: http.StatusUnauthorized, wantBody: ErrInvalidAuthorizationHeader.Error()},
		{name: "expired token", header: "Bearer old", parse: true, parseErr: service.ErrTokenIsExpiredOrInvalid, wantStatus: http.StatusUnauthorized, wantBody: app.MsgTokenIsExpiredOrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			authSvc := mock.NewMockAuthService(ctrl)
			h := &Handler{services: &service.Services{AuthService: authSvc}, logger: logger.Nop()}

			if tt.parse {
				authSvc.EXPECT().ParseToken(gomock.Any(), strings.TrimPrefix(tt.header, "Bearer ")).
					Return(models.Token{UserID: 42}, tt.parseErr)
			}

			var (
				gotUser   int64
				gotDevice string
			)
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = utils.GetUserIDFromContext(r.Context())
				gotDevice = utils.GetDeviceIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			req.Header.Set(deviceIDHeader, " device-a ")
			rec := httptest.NewRecorder()

			h.auth(next).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, int64(42), gotUser)
				assert.Equal(t, "device-a", gotDevice)
				return
			}
			assert.Equal(t, tt.wantBody, strings.TrimSpace(rec.Body.String()))
		})
	}
}

// ---- trace id ----

func TestWithTraceID(t *testing.T) {
	h := &Handler{logger: logger.Nop()}

	tests := []struct {
		name     string
		incoming string
	}{
		{name: "reuses incoming id", incoming: "my-trace-id"},
		{name: "generates id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.incoming != "" {
				req.Header.Set(traceIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()

			h.withTraceID(next).ServeHTTP(rec, req)

			got := rec.Header().Get(traceIDHeader)
			if tt.incoming != "" {
				assert.Equal(t, tt.incoming, got)
			} else {
				id, err := uuid.Parse(got)
				require.NoError(t, err)
				assert.Equal(t, uuid.Version(7), id.Version())
			}
			assert.True(t, called)
		})
	}
}

// ---- access log ----

func TestWithLogging_PassesResponseThrough(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	rec := httptest.NewRecorder()
	h.withTraceID(h.withLogging(next)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tea", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}

func TestWithLogging_WritesAccessLine(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "ok", status: http.StatusOK, wantLevel: "info"},
		{name: "client error", status: http.StatusNotFound, wantLevel: "warn"},
		{name: "server error", status: http.StatusBadGateway, wantLevel: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("abc"))
			})

			req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
			req.Header.Set(traceIDHeader, "trace-1")
			req.Header.Set(deviceIDHeader, "laptop")
			rec := httptest.NewRecorder()

			h.withTraceID(h.withLogging(next)).ServeHTTP(rec, req)

			assert.Equal(t, "trace-1", rec.Header().Get(traceIDHeader))

			var line map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, tt.wantLevel, line["level"])
			assert.Equal(t, "trace-1", line["trace_id"])
			assert.Equal(t, "laptop", line["device_id"])
			assert.Equal(t, "/api/sync", line["uri"])
			assert.EqualValues(t, tt.status, line["status"])
			assert.EqualValues(t, 3, line["size"])
		})
	}
}

// ---- gzip ----

func TestWithCompression(t *testing.T) {
	payload := strings.Repeat(`{"id":"5","name":"buy milk"}`, 50)

	tests := []struct {
		name        string
		accept      string
		status      int
		contentType string
		wantGZip    bool
	}{
		{name: "json accepted", accept: "gzip", status: http.StatusOK, contentType: "application/json", wantGZip: true},
		{name: "not accepted", status: http.StatusOK, contentType: "application/json"},
		{name: "no content", accept: "gzip", status: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				w.WriteHeader(tt.status)
				if tt.status != http.StatusNoContent {
					_, _ = io.WriteString(w, payload)
				}
			})

			req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Encoding", tt.accept)
			}
			rec := httptest.NewRecorder()

			withCompression(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if !tt.wantGZip {
				assert.Empty(t, rec.Header().Get("Content-Encoding"))
				if tt.status != http.StatusNoContent {
					assert.Equal(t, payload, rec.Body.String())
				}
				return
			}

			require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
			zr, err := gzip.NewReader(rec.Body)
			require.NoError(t, err)
			plain, err := io.ReadAll(zr)
			require.NoError(t, err)
			assert.Equal(t, payload, string(plain))
		})
	}
}

func TestWithGZipRequests_Inflates(t *testing.T) {
	var compressed bytes.Buffer
	zw := gzip.NewWriter(&compressed)
	_, err := zw.Write([]byte(`{"last_sync_at":"2026-03-01T12:00:00Z"}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		got = string(raw)
		assert.Empty(t, r.Header.Get("Content-Encoding"))
		assert.NoError(t, r.Body.Close())
		assert.NoError(t, r.Body.Close())
	})

	req := httptest.NewRequest(http.MethodPost, "/api/sync", &compressed)
	req.Header.Set("Content-Encoding", "gzip")

	withGZipRequests(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, `{"last_sync_at":"2026-03-01T12:00:00Z"}`, got)
}

func TestWithGZipRequests_PlainBodyUntouched(t *testing.T) {
	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		got = string(raw)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader(`{}`))
	withGZipRequests(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, `{}`, got)
}

func TestWithGZipRequests_RejectsBrokenBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()

	withGZipRequests(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- method check ----

func TestMethodNotServed(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/api/sync", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	router.Put("/api/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.MethodNotAllowed(methodNotServed)

	tests := []struct {
		method     string
		path       string
		wantStatus int
	}{
		{http.MethodPost, "/api/sync", http.StatusAccepted},
		{http.MethodGet, "/api/sync", http.StatusNotFound},
		{http.MethodDelete, "/api/sync", http.StatusNotFound},
		{http.MethodPut, "/api/tasks/srv_1", http.StatusOK},
		{http.MethodPatch, "/api/tasks/srv_1", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

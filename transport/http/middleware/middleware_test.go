package middleware_test

import (
	"errors"
	"hotel/config"
	"hotel/infras/otel/mocks"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRequestID(t *testing.T) {
	app := middleware.NewAppMiddleware(mocks.NewOtel(), &config.Config{}, nil)

	var seen string

	handler := app.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(constant.ContextKeyRequestID).(string)
		w.WriteHeader(http.StatusOK)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, recorder.Header().Get(constant.RequestHeaderRequestID))

	request := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
	request.Header.Set(constant.RequestHeaderRequestID, "req-42")

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", recorder.Header().Get(constant.RequestHeaderRequestID))
}

func TestTracingKeepsStatus(t *testing.T) {
	app := middleware.NewAppMiddleware(mocks.NewOtel(), &config.Config{}, nil)

	handler := app.Tracing(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusTeapot, recorder.Code)
}

func TestAPIKey(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		sent       string
		wantCode   int
	}{
		{name: "disabled", configured: "", sent: "", wantCode: http.StatusOK},
		{name: "valid key", configured: "s3cret", sent: "s3cret", wantCode: http.StatusOK},
		{name: "missing key", configured: "s3cret", sent: "", wantCode: http.StatusUnauthorized},
		{name: "wrong key", configured: "s3cret", sent: "guess", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.App.APIKey = tt.configured

			auth := middleware.NewAuthMiddleware(mocks.NewOtel(), cfg)

			request := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
			if tt.sent != "" {
				request.Header.Set(constant.RequestHeaderAPIKey, tt.sent)
			}

			recorder := httptest.NewRecorder()
			auth.APIKey(okHandler).ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)
		})
	}
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name          string
		enabled       bool
		setupMock     func(redisCache *cacheMocks.MockRedisCache)
		wantCode      int
		wantRemaining string
	}{
		{
			name:      "disabled",
			enabled:   false,
			setupMock: func(_ *cacheMocks.MockRedisCache) {},
			wantCode:  http.StatusOK,
		},
		{
			name:    "within limit",
			enabled: true,
			setupMock: func(redisCache *cacheMocks.MockRedisCache) {
				redisCache.EXPECT().
					Increment(gomock.Any(), "limiter:10.0.0.1:test-agent", 60).
					Return(int64(2), nil)
			},
			wantCode:      http.StatusOK,
			wantRemaining: "1",
		},
		{
			name:    "over limit",
			enabled: true,
			setupMock: func(redisCache *cacheMocks.MockRedisCache) {
				redisCache.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(int64(4), nil)
			},
			wantCode:      http.StatusTooManyRequests,
			wantRemaining: "0",
		},
		{
			name:    "cache down",
			enabled: true,
			setupMock: func(redisCache *cacheMocks.MockRedisCache) {
				redisCache.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(int64(0), errors.New("connection refused"))
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			redisCache := cacheMocks.NewMockRedisCache(ctrl)
			tt.setupMock(redisCache)

			cfg := &config.Config{}
			cfg.App.RateLimiter.Enable = tt.enabled
			cfg.App.RateLimiter.MaxRequests = 3
			cfg.App.RateLimiter.WindowSeconds = 60

			app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, redisCache)

			request := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
			request.Header.Set(constant.RequestHeaderForwardedFor, "10.0.0.1, 172.16.0.1")
			request.Header.Set(constant.RequestHeaderUserAgent, "test-agent")

			recorder := httptest.NewRecorder()
			app.RateLimit()(okHandler).ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, tt.wantRemaining, recorder.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}
}

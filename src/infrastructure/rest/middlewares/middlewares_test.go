package middlewares

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-campzeo-client/src/domain/alert"
	domainErrors "go-campzeo-client/src/domain/errors"
	"go-campzeo-client/src/infrastructure/apiclient"
	logger "go-campzeo-client/src/infrastructure/logger"
	"go-campzeo-client/src/infrastructure/security"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: domainErrors.NewAppErrorWithType(domainErrors.NotFound), want: http.StatusNotFound},
		{err: domainErrors.NewValidationError(nil), want: http.StatusBadRequest},
		{err: domainErrors.NewDomainRuleViolation("outside range"), want: http.StatusUnprocessableEntity},
		{err: domainErrors.NewMissingDependency("connect", alert.ScreenAccounts), want: http.StatusPreconditionFailed},
		{err: domainErrors.NewBackendError(401, ""), want: http.StatusUnauthorized},
		{err: domainErrors.NewAppErrorWithType(domainErrors.Conflict), want: http.StatusConflict},
		{err: domainErrors.NewBackendError(500, "boom"), want: http.StatusBadGateway},
		{err: errors.New("plain"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

func TestErrorHandler_RendersAlert(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/fail", func(c *gin.Context) {
		_ = c.Error(domainErrors.NewMissingDependency("FACEBOOK is not connected", alert.ScreenAccounts))
	})
	router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.Equal(t, http.StatusPreconditionFailed, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, alert.TypeRemediation, body.Alert.Type)
	assert.Equal(t, alert.ScreenAccounts, body.Alert.Remediation)
	assert.Equal(t, "FACEBOOK is not connected", body.Alert.Message)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCommonHeaders(t *testing.T) {
	router := gin.New()
	router.Use(CommonHeaders)
	var seen interface{}
	router.GET("/", func(c *gin.Context) {
		seen, _ = c.Get("requestID")
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
	assert.Equal(t, w.Header().Get(requestIDHeader), seen)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "caller-id")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "caller-id", w.Header().Get(requestIDHeader))
}

func signed(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "user-7", ExpiresAt: jwt.NewNumericDate(expiresAt)}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestBearerTokenMiddleware(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	inspector := security.NewTokenInspector(logger.NewNopLogger(), func() time.Time { return now })

	router := gin.New()
	router.Use(ErrorHandler())
	router.Use(BearerTokenMiddleware(inspector, logger.NewNopLogger()))
	router.GET("/whoami", func(c *gin.Context) {
		subject, _ := c.Get("tokenSubject")
		c.JSON(http.StatusOK, gin.H{
			"token":   apiclient.TokenFromContext(c.Request.Context()),
			"subject": subject,
		})
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantToken  string
	}{
		{name: "no header falls through", header: "", wantStatus: http.StatusOK, wantToken: ""},
		{name: "valid jwt is forwarded", header: "Bearer " + signed(t, now.Add(time.Hour)), wantStatus: http.StatusOK},
		{name: "opaque token is forwarded", header: "Bearer opaque-token", wantStatus: http.StatusOK, wantToken: "opaque-token"},
		{name: "expired jwt is rejected", header: "Bearer " + signed(t, now.Add(-time.Hour)), wantStatus: http.StatusPreconditionFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.wantToken != "" {
				assert.Equal(t, tt.wantToken, body["token"])
			}
		})
	}
}

package security

import (
	"errors"
	"strings"
	"time"

	"go-campzeo-client/src/domain/alert"
	domainErrors "go-campzeo-client/src/domain/errors"
	logger "go-campzeo-client/src/infrastructure/logger"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// TokenInfo is what the client can learn from a bearer token without its key
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
	Opaque    bool
}

// ITokenInspector checks bearer tokens before they leave the process
type ITokenInspector interface {
	Inspect(token string) (*TokenInfo, error)
	Check(token string) error
}

// TokenInspector reads token claims without verifying the signature. The
// backend verifies; the client only avoids sending tokens it knows are dead.
type TokenInspector struct {
	Logger *logger.Logger
	now    func() time.Time
	leeway time.Duration
	parser *jwt.Parser
}

func NewTokenInspector(loggerInstance *logger.Logger, now func() time.Time) *TokenInspector {
	if now == nil {
		now = time.Now
	}
	return &TokenInspector{
		Logger: loggerInstance,
		now:    now,
		leeway: 30 * time.Second,
		parser: jwt.NewParser(),
	}
}

// Inspect parses a JWT bearer token. Tokens that are not JWTs are treated as opaque.
func (s *TokenInspector) Inspect(token string) (*TokenInfo, error) {
	token = strings.TrimPrefix(strings.TrimSpace(token), "Bearer ")
	if token == "" {
		return nil, domainErrors.NewMissingDependency("missing auth token, please sign in", alert.ScreenSignIn)
	}
	if strings.Count(token, ".") != 2 {
		return &TokenInfo{Opaque: true}, nil
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := s.parser.ParseUnverified(token, &claims); err != nil {
		s.Logger.Warn("Bearer token is malformed", zap.Error(err))
		return nil, domainErrors.NewAppError(errors.New("auth token is malformed"), domainErrors.NotAuthenticated)
	}

	info := &TokenInfo{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

// Check rejects expired tokens with a sign-in remediation
func (s *TokenInspector) Check(token string) error {
	info, err := s.Inspect(token)
	if err != nil {
		return err
	}
	if info.Opaque || info.ExpiresAt.IsZero() {
		return nil
	}
	if s.now().After(info.ExpiresAt.Add(s.leeway)) {
		s.Logger.Warn("Bearer token expired",
			zap.String("subject", info.Subject),
			zap.Time("expiresAt", info.ExpiresAt))
		return domainErrors.NewMissingDependency("your session has expired, please sign in again", alert.ScreenSignIn)
	}
	return nil
}

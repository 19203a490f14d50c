package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/codequest-backend/internal/platform/ctxutil"
	"github.com/yungbote/codequest-backend/internal/platform/logger"
)

// AuthService verifies bearer tokens minted by the platform's auth service.
// It never issues tokens to clients.
type AuthService interface {
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	// GenerateAccessToken signs a token with the shared secret; used by tooling
	// and tests.
	GenerateAccessToken(userID, username string, roles []string, ttl time.Duration) (string, error)
}

// JWTClaims is the access token payload. Subject is the user id. Username is
// needed for the profile-backed stats and achievements views.
type JWTClaims struct {
	Username string   `json:"username,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	Role     string   `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type authService struct {
	log          *logger.Logger
	jwtSecretKey string
}

func NewAuthService(log *logger.Logger, jwtSecretKey string) (AuthService, error) {
	if strings.TrimSpace(jwtSecretKey) == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY required")
	}
	return &authService{
		log:          log.With("service", "AuthService"),
		jwtSecretKey: jwtSecretKey,
	}, nil
}

func (as *authService) GenerateAccessToken(userID, username string, roles []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		Username: username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, fmt.Errorf("missing token")
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsedToken, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, fmt.Errorf("invalid or expired JWT token")
	}
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return ctx, fmt.Errorf("token has no subject")
	}
	roles := append([]string(nil), claims.Roles...)
	if claims.Role != "" {
		roles = append(roles, claims.Role)
	}
	rd := &ctxutil.RequestData{
		UserID:   subject,
		Username: strings.TrimSpace(claims.Username),
		Roles:    roles,
		Token:    tokenString,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

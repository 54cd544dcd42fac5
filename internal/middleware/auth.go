package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"carbontrack/internal/config"
	apperrors "carbontrack/internal/errors"
	"carbontrack/internal/models"
	"carbontrack/internal/uuid"
)

const (
	refreshTokenExpiry = 7 * 24 * time.Hour
	tokenIssuer        = "carbontrack-api"

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	// GuestSessionHeader carries the id of an anonymous session.
	GuestSessionHeader = "X-Guest-Session"

	userIDKey  = "userID"
	emailKey   = "email"
	guestIDKey = "guestID"
)

// getJWTKey returns the JWT key from configuration
func getJWTKey() []byte {
	return []byte(config.Get().JWTSecret)
}

// JWTClaims represents the claims in the JWT
type JWTClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

func generateToken(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID:    user.ID,
		Email:     user.Email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   user.ID,
			ID:        uuid.NewRandom(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTKey())
}

// GenerateAccessToken generates a short-lived JWT access token for a user.
func GenerateAccessToken(user *models.User) (string, error) {
	return generateToken(user, tokenTypeAccess, config.Get().JWTExpirationDur)
}

// GenerateRefreshToken generates a long-lived JWT refresh token for a user.
func GenerateRefreshToken(user *models.User) (string, error) {
	return generateToken(user, tokenTypeRefresh, refreshTokenExpiry)
}

func parseToken(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getJWTKey(), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ValidateRefreshToken parses and validates a refresh token JWT.
// Returns the claims if valid, or an error if the token is invalid,
// expired, or not a refresh token.
func ValidateRefreshToken(tokenString string) (*JWTClaims, error) {
	claims, err := parseToken(tokenString)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}
	if claims.TokenType != tokenTypeRefresh {
		return nil, fmt.Errorf("token is not a refresh token")
	}
	return claims, nil
}

// HashToken returns the SHA-256 hex digest of a token string.
func HashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// bearerClaims validates the Authorization header. ok is false when the
// header is absent.
func bearerClaims(c *gin.Context) (claims *JWTClaims, ok bool, err error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false, nil
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, true, apperrors.WithMessage(apperrors.ErrInvalidToken, "Invalid authorization header format")
	}

	claims, err = parseToken(parts[1])
	if err != nil {
		return nil, true, apperrors.ErrInvalidToken
	}
	// Reject refresh tokens used as access tokens
	if claims.TokenType != tokenTypeAccess {
		return nil, true, apperrors.ErrInvalidToken
	}
	return claims, true, nil
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// AuthMiddleware verifies the JWT token and sets the user in the context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok, err := bearerClaims(c)
		if !ok {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Authorization header is required"))
			return
		}
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(emailKey, claims.Email)
		c.Next()
	}
}

// OptionalAuth authenticates the request when a token is present and falls
// back to a guest session otherwise. A present but invalid token is still
// rejected. Guests keep their id across requests by echoing the
// X-Guest-Session response header.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok, err := bearerClaims(c)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if ok {
			c.Set(userIDKey, claims.UserID)
			c.Set(emailKey, claims.Email)
			c.Next()
			return
		}

		guestID, parseErr := uuid.Parse(c.GetHeader(GuestSessionHeader))
		if parseErr != nil {
			guestID = uuid.NewRandom()
		}
		c.Set(guestIDKey, guestID)
		c.Header(GuestSessionHeader, guestID)
		c.Next()
	}
}

// UserID returns the authenticated user id, if any.
func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// GuestID returns the guest session id, if any.
func GuestID(c *gin.Context) (string, bool) {
	v, ok := c.Get(guestIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

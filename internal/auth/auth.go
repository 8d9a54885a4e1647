// Package auth resolves the staff member acting on a request from the
// auth_token cookie. Logging in happens elsewhere; tokens are minted with
// GenerateToken.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/venue-events-api/internal/config"
	"github.com/gdg-garage/venue-events-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const (
	CookieName    = "auth_token"
	TokenDuration = 24 * time.Hour
)

type contextKey string

const UserIDKey contextKey = "user_id"

type AuthHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg}
}

// AuthInput is embedded in the input of every admin operation.
type AuthInput struct {
	Cookie string `header:"Cookie" doc:"Session cookie (auth_token)"`
}

func (h *AuthHandler) GenerateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// Authorize returns the id of the staff member behind the request. A user id
// placed in ctx by Middleware wins over the cookie.
func (h *AuthHandler) Authorize(ctx context.Context, cookieHeader string) (uint, error) {
	if userID, ok := ctx.Value(UserIDKey).(uint); ok {
		return userID, nil
	}
	userID, _, err := h.session(ctx, cookieHeader)
	return userID, err
}

// session resolves the auth_token cookie to a known user and the token's
// expiry.
func (h *AuthHandler) session(ctx context.Context, cookieHeader string) (uint, time.Time, error) {
	req := &http.Request{Header: http.Header{"Cookie": {cookieHeader}}}
	cookie, err := req.Cookie(CookieName)
	if err != nil {
		return 0, time.Time{}, huma.Error401Unauthorized("Unauthorized: No token found")
	}

	userID, expires, err := h.parseToken(cookie.Value)
	if err != nil {
		return 0, time.Time{}, huma.Error401Unauthorized("Unauthorized: Invalid token")
	}

	if h.db != nil {
		var user models.User
		if err := h.db.WithContext(ctx).First(&user, userID).Error; err != nil {
			return 0, time.Time{}, huma.Error401Unauthorized("Unauthorized: Unknown user")
		}
	}
	return userID, expires, nil
}

func (h *AuthHandler) parseToken(tokenString string) (uint, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, time.Time{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, time.Time{}, fmt.Errorf("invalid token claims")
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, time.Time{}, fmt.Errorf("invalid user_id claim")
	}
	expires, err := claims.GetExpirationTime()
	if err != nil || expires == nil {
		return 0, time.Time{}, fmt.Errorf("invalid exp claim")
	}
	return uint(userIDFloat), expires.Time, nil
}

// EnsureUser returns the staff member with username, creating it on first use.
func (h *AuthHandler) EnsureUser(ctx context.Context, username, email string) (*models.User, error) {
	var user models.User
	if err := h.db.WithContext(ctx).FirstOrInit(&user, models.User{Username: username}).Error; err != nil {
		return nil, err
	}
	if email != "" {
		user.Email = email
	}
	if err := h.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

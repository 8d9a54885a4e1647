package auth

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// Middleware guards admin operations: it resolves the session cookie, puts
// the staff member's id into the request context under UserIDKey and answers
// 401 otherwise. Sessions past half their lifetime get a fresh cookie.
func (h *AuthHandler) Middleware(api huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		userID, expires, err := h.session(ctx.Context(), ctx.Header("Cookie"))
		if err != nil {
			huma.WriteErr(api, ctx, http.StatusUnauthorized, err.Error())
			return
		}

		if time.Until(expires) < TokenDuration/2 {
			if token, err := h.GenerateToken(userID); err == nil {
				cookie := &http.Cookie{
					Name:     CookieName,
					Value:    token,
					Expires:  time.Now().Add(TokenDuration),
					HttpOnly: true,
					Path:     "/",
				}
				ctx.AppendHeader("Set-Cookie", cookie.String())
			}
		}

		next(huma.WithValue(ctx, UserIDKey, userID))
	}
}

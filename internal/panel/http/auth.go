package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/panel/internal/panel/service"
	"github.com/aussiebroadwan/panel/pkg/httpx"
	"github.com/aussiebroadwan/panel/pkg/panelsdk"
	"github.com/aussiebroadwan/panel/pkg/slogx"
)

// guard adapts AuthService to the httpx authentication middleware.
type guard struct {
	auth *service.AuthService
}

func (g *guard) Authenticate(ctx context.Context, token string) (httpx.Principal, error) {
	id, err := g.auth.Authenticate(ctx, token)
	if err != nil {
		return httpx.Principal{}, err
	}
	return httpx.Principal{
		UserID:    id.User.ID,
		Username:  id.User.Username,
		Role:      id.User.Role,
		FullName:  id.User.FullName,
		SessionID: id.Session.ID,
		Token:     token,
		Claims:    id.Claims,
	}, nil
}

type AuthHandler struct {
	AuthService   *service.AuthService
	SecureCookies bool
	SessionTTL    time.Duration
}

// HandleLogin checks credentials and opens a session.
//
//	@Summary		Log in
//	@Description	Verifies username and password (and the TOTP code when enrolled), opens a session and returns its token. The token is also set as the httpOnly auth_token cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		panelsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	panelsdk.LoginResponse
//	@Failure		400		{object}	panelsdk.ErrorResponse	"Malformed body"
//	@Failure		401		{object}	panelsdk.ErrorResponse	"Invalid credentials or OTP"
//	@Failure		429		{object}	panelsdk.ErrorResponse	"Too many attempts"
//	@Failure		500		{object}	panelsdk.ErrorResponse
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req panelsdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	res, err := h.AuthService.Login(r.Context(), service.LoginInput{
		Username:  req.Username,
		Password:  req.Password,
		OTP:       req.OTP,
		IP:        httpx.IPKeyExtractor(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, h.cookie(res.Token, res.ExpiresAt))
	httpx.WriteJSON(w, http.StatusOK, panelsdk.LoginResponse{
		Success:   true,
		Message:   "Login successful",
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		User:      toUserInfo(res.User),
	})
}

// HandleLogout ends every session of the caller and clears the cookie.
//
//	@Summary		Log out
//	@Description	Deletes all sessions of the authenticated user. The cookie is cleared even when the token is missing or no longer valid.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	panelsdk.MessageResponse
//	@Failure		500	{object}	panelsdk.ErrorResponse
//	@Router			/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	http.SetCookie(w, h.clearCookie())

	if token := httpx.TokenFromRequest(r, AuthCookieName); token != "" {
		id, err := h.AuthService.Authenticate(ctx, token)
		if err == nil {
			if _, err := h.AuthService.Logout(ctx, id.User.ID); err != nil {
				writeError(w, r, err)
				return
			}
		} else {
			slogx.FromContext(ctx).Debug("logout without a live session", "error", err)
		}
	}

	httpx.WriteJSON(w, http.StatusOK, panelsdk.MessageResponse{Success: true, Message: "Logout successful"})
}

// HandleProfile returns the authenticated user.
//
//	@Summary		Current user
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	panelsdk.ProfileResponse
//	@Failure		401	{object}	panelsdk.ErrorResponse
//	@Router			/auth/profile [get].
func (h *AuthHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.PrincipalFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, r, http.StatusUnauthorized, panelsdk.MessageUnauthorized)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, panelsdk.ProfileResponse{
		Success: true,
		User:    principalInfo(p),
	})
}

// HandleValidate reports whether the presented token is still usable.
//
//	@Summary		Validate a token
//	@Description	Checks the token signature and that its user still has a live session.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	panelsdk.ValidateResponse
//	@Failure		401	{object}	panelsdk.ErrorResponse	"Invalid token or session expired"
//	@Router			/auth/validate [get].
func (h *AuthHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	token := httpx.TokenFromRequest(r, AuthCookieName)
	if token == "" {
		httpx.WriteError(w, r, http.StatusUnauthorized, panelsdk.MessageInvalidToken)
		return
	}

	claims, err := h.AuthService.ValidateToken(r.Context(), token)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, panelsdk.ValidateResponse{
		Success: true,
		Valid:   true,
		User: panelsdk.UserInfo{
			ID:       claims.User(),
			Username: claims.Username,
			FullName: claims.FullName,
			Role:     claims.Role,
			Active:   true,
		},
	})
}

func principalInfo(p httpx.Principal) panelsdk.UserInfo {
	return panelsdk.UserInfo{
		ID:       p.UserID,
		Username: p.Username,
		FullName: p.FullName,
		Role:     p.Role,
		Active:   true, // the guard rejects disabled users
	}
}

func (h *AuthHandler) cookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(h.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	}
}

func (h *AuthHandler) clearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	}
}

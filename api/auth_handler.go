package api

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site/errs"
)

// adminSubject is the only subject the admin API accepts
const adminSubject = "admin"

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	password  string
	secret    []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func newAuthHandler(password string, secret []byte, tokenTTL time.Duration, now func() time.Time) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		password:  password,
		secret:    secret,
		tokenTTL:  tokenTTL,
		now:       now,
	}
}

// login exchanges the backend password for a bearer token
// @Summary Admin login
// @Description Issues a signed admin token when the password matches BACKEND_PASSWORD
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Admin password"
// @Success 200 {object} LoginResponse "Bearer token"
// @Failure 401 {object} ErrorResponse "Unauthorized - Wrong password"
// @Failure 403 {object} ErrorResponse "Forbidden - Admin login disabled"
// @Router /admin/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.password == "" {
			h.responder.WriteError(w, errs.NewAdminUnavailableError())
			return
		}

		var req LoginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) != 1 {
			h.logger.Warn().Str("remote_addr", r.RemoteAddr).Msg("failed admin login")
			h.responder.WriteError(w, errs.NewInvalidPasswordError())
			return
		}

		now := h.now()
		expiresAt := now.Add(h.tokenTTL)
		claims := jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   adminSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("sign admin token", err))
			return
		}

		h.responder.WriteJSON(w, LoginResponse{Token: token, ExpiresAt: expiresAt.Unix()})
	}
}

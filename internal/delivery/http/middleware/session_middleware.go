package middleware

import (
	"context"
	"net/http"
	"time"

	"storefront-backend/internal/domain"
	"storefront-backend/pkg/logger"
	"storefront-backend/pkg/utils"

	"github.com/google/uuid"
)

// NewSessionMiddleware attaches the shopper's session to the request.
// A missing, expired or forged token starts a fresh session; its token is
// returned in both the session header and cookie.
func NewSessionMiddleware(signer *utils.SessionSigner, ttl time.Duration, secureCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := &domain.Session{}
			if token, err := utils.ExtractSessionToken(r); err == nil {
				if id, err := signer.Parse(token); err == nil {
					sess.ID = id
					sess.Token = token
				}
			}

			if sess.ID == "" {
				sess.ID = uuid.NewString()
				token, err := signer.Issue(sess.ID)
				if err != nil {
					logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to issue session token")
					utils.WriteError(w, http.StatusInternalServerError, "failed to start session")
					return
				}
				sess.Token = token
				sess.IsNew = true

				http.SetCookie(w, &http.Cookie{
					Name:     utils.SessionCookie,
					Value:    token,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					Secure:   secureCookie,
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set(utils.SessionHeader, sess.Token)

			ctx := r.Context()
			recordSessionID(ctx, sess.ID)
			l := logger.WithSessionID(*logger.WithContext(ctx), sess.ID)
			ctx = logger.NewContext(ctx, &l)
			ctx = context.WithValue(ctx, domain.SessionContextKey, sess)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session attached by NewSessionMiddleware.
func SessionFromContext(ctx context.Context) (*domain.Session, bool) {
	sess, ok := ctx.Value(domain.SessionContextKey).(*domain.Session)
	return sess, ok && sess != nil
}

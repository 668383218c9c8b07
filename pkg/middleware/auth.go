package middleware

import (
	"context"
	"net/http"
	"strings"

	apperrors "resbook/pkg/errors"
	"resbook/pkg/logger"
	"resbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const identityKey contextKey = "identity"

// TokenVerifier resolves a bearer token to a caller identity. Implemented
// by the auth token manager; the middleware treats it as an external
// identity-provider collaborator.
type TokenVerifier interface {
	Verify(token string) (model.Identity, error)
}

// IdentityFrom returns the identity resolved by RequireAuth. Handlers read
// it once and pass it explicitly into services; nothing below the handler
// layer touches the request context for identity.
func IdentityFrom(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(model.Identity)
	return identity, ok
}

// RequireAuth wraps a route with bearer-token authentication.
func RequireAuth(verifier TokenVerifier, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			token, err := extractBearerToken(r)
			if err != nil {
				writeAuthError(w, err)
				return
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				log.Warn("Token verification failed",
					"request_id", requestIDFrom(r.Context()),
					"path", r.URL.Path,
					"error", err,
				)
				writeAuthError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next(w, r.WithContext(ctx), ps)
		}
	}
}

// RequireRole wraps a route with authentication plus a role gate.
func RequireRole(verifier TokenVerifier, log *logger.Logger, role string) func(httprouter.Handle) httprouter.Handle {
	authenticate := RequireAuth(verifier, log)
	return func(next httprouter.Handle) httprouter.Handle {
		return authenticate(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			identity, ok := IdentityFrom(r.Context())
			if !ok || !identity.HasRole(role) {
				writeAuthError(w, apperrors.Forbidden("Insufficient role for this operation"))
				return
			}
			next(w, r, ps)
		})
	}
}

func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", apperrors.Unauthenticated("Missing Authorization header")
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", apperrors.Unauthenticated("Authorization header must use the Bearer scheme")
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", apperrors.Unauthenticated("Empty bearer token")
	}
	return token, nil
}

func writeAuthError(w http.ResponseWriter, err error) {
	appErr := apperrors.AsAppError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	_, _ = w.Write(appErr.ToJSON())
}

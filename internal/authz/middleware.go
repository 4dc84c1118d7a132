package authz

import (
	"net/http"
	"strings"

	"log/slog"

	"github.com/gymmax/gymmax/internal/platform/httpx"
)

// TokenPayload is the verified content of a bearer token.
type TokenPayload struct {
	ID   int64
	Role Role
}

// TokenVerifier checks a bearer token and extracts its payload.
type TokenVerifier interface {
	Verify(token string) (TokenPayload, error)
}

// Middleware is the per-request authorization gate. It is stateless
// across requests; policies are bound at route registration and the
// only mutable state it touches is request-scoped.
type Middleware struct {
	Tokens TokenVerifier
	Store  Store
	Logger *slog.Logger
}

// Require evaluates the gate for a route policy: token verification,
// principal resolution, role check, then ownership verification for
// non-privileged roles. Each stage fails closed.
func (m Middleware) Require(policy Policy) func(http.Handler) http.Handler {
	verifier := NewVerifier(m.Store)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
				return
			}
			payload, err := m.Tokens.Verify(token)
			if err != nil {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid token")
				return
			}

			principal, err := m.resolve(r, payload)
			if err != nil {
				if err == ErrPrincipalNotFound {
					httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "unknown principal")
					return
				}
				if m.Logger != nil {
					m.Logger.Error("authz resolve principal", slog.Any("error", err))
				}
				httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
				return
			}

			if !policy.permitsRole(principal.Role) {
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "role not permitted")
				return
			}

			ctx := ContextWithPrincipal(r.Context(), principal)
			r = r.WithContext(ctx)

			if principal.Role.Privileged() {
				next.ServeHTTP(w, r)
				return
			}

			if policy.Ownership == "" {
				next.ServeHTTP(w, r)
				return
			}

			owned, err := verifier.Verify(ctx, policy.Ownership, RouteParams(r), principal)
			if err != nil {
				// A verifier that cannot complete its query must never
				// default to allow.
				if m.Logger != nil {
					m.Logger.Error("authz verify ownership",
						slog.String("kind", string(policy.Ownership)),
						slog.Any("error", err))
				}
				httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
				return
			}
			if !owned {
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "resource not owned by caller")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// resolve performs exactly one lookup, trusting the signed role claim to
// select the collection. A forged role claim is only caught when the id
// does not exist in the selected collection; the signature is the real
// defense here.
func (m Middleware) resolve(r *http.Request, payload TokenPayload) (Principal, error) {
	if payload.Role == RoleMember {
		return m.Store.FindMemberPrincipal(r.Context(), payload.ID)
	}
	return m.Store.FindUserPrincipal(r.Context(), payload.ID)
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

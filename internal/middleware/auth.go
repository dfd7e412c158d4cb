package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"adisyon-report-service/internal/auth"

	"github.com/jackc/pgx/v5/pgxpool"
)

type contextKey string

const authContextKey contextKey = "authContext"

// AuthContext is what the report handlers get to see of the caller: who
// they are and which branch their queries are scoped to. Admins carry a
// nil BranchID and may select a branch explicitly per request.
type AuthContext struct {
	UserID    int64
	SessionID int64
	Role      auth.UserRole
	Email     string
	BranchID  *int64
}

func (ac *AuthContext) IsAdmin() bool {
	return ac != nil && ac.Role == auth.RoleAdmin
}

func WithAuthContext(ctx context.Context, authCtx *AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey, authCtx)
}

func GetAuthContext(ctx context.Context) (*AuthContext, bool) {
	value := ctx.Value(authContextKey)
	if value == nil {
		return nil, false
	}
	ac, ok := value.(*AuthContext)
	return ac, ok
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	writeAuthErrorDebug(w, status, message, "")
}

func writeAuthErrorDebug(w http.ResponseWriter, status int, message string, debug string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload := map[string]any{
		"success": false,
		"error":   "UNAUTHORIZED",
		"message": message,
	}

	if os.Getenv("APP_ENV") == "development" && strings.TrimSpace(debug) != "" {
		payload["debug"] = debug
	}

	_ = json.NewEncoder(w).Encode(payload)
}

// BranchAuth verifies the bearer token, checks that the session is still
// live and that the user is linked to an active branch, and stores the
// resulting scope on the request context. Staff and managers are pinned to
// their own branch; admins pass through unpinned.
func BranchAuth(db *pgxpool.Pool, jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ParseBearerToken(r.Header.Get("Authorization"))
			claims, err := auth.VerifyAccessToken(token, jwtSecret)
			if err != nil {
				writeAuthErrorDebug(w, http.StatusUnauthorized, "Authorization token required", err.Error())
				return
			}

			switch claims.Role {
			case auth.RoleAdmin, auth.RoleBranchManager, auth.RoleStaff:
			default:
				writeAuthError(w, http.StatusForbidden, "Report access required")
				return
			}

			userID, err := parseInt64(claims.UserID)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			sessionID, err := parseInt64(claims.SessionID)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			authCtx := &AuthContext{
				UserID:    userID,
				SessionID: sessionID,
				Role:      claims.Role,
				Email:     claims.Email,
			}

			if claims.Role == auth.RoleAdmin {
				query := `
					select 1
					from users u
					join user_sessions us on us.id = $2 and us.user_id = u.id and us.status = 'ACTIVE' and us.expires_at > now()
					where u.id = $1 and u.is_active
				`
				var one int
				if err := db.QueryRow(r.Context(), query, userID, sessionID).Scan(&one); err != nil {
					writeAuthErrorDebug(w, http.StatusUnauthorized, "Session expired", err.Error())
					return
				}
			} else {
				if claims.BranchID == nil {
					writeAuthError(w, http.StatusUnauthorized, "Branch not found")
					return
				}
				branchID, err := parseInt64(*claims.BranchID)
				if err != nil {
					writeAuthError(w, http.StatusUnauthorized, "Branch not found")
					return
				}

				query := `
					select bu.is_active, b.is_active
					from users u
					join branch_users bu on bu.user_id = u.id and bu.branch_id = $2
					join branches b on b.id = bu.branch_id
					join user_sessions us on us.id = $3 and us.user_id = u.id and us.status = 'ACTIVE' and us.expires_at > now()
					where u.id = $1
				`
				var linkActive, branchActive bool
				if err := db.QueryRow(r.Context(), query, userID, branchID, sessionID).Scan(&linkActive, &branchActive); err != nil {
					writeAuthErrorDebug(w, http.StatusUnauthorized, "Branch access required", err.Error())
					return
				}
				if !linkActive {
					writeAuthError(w, http.StatusForbidden, "Branch access is disabled")
					return
				}
				if !branchActive {
					writeAuthError(w, http.StatusForbidden, "Branch is currently disabled")
					return
				}

				authCtx.BranchID = &branchID
			}

			ctx := WithAuthContext(r.Context(), authCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseInt64(value string) (int64, error) {
	var out int64
	_, err := fmt.Sscan(value, &out)
	return out, err
}

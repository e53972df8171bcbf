package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/TSZH-FacilityService/internal/api/handlers"
	"github.com/m04kA/TSZH-FacilityService/pkg/auth"
)

const (
	msgMissingToken = "требуется авторизация"
	msgInvalidToken = "недействительный токен"
	msgAdminOnly    = "операция доступна только администратору"
)

type claimsContextKey struct{}

// TokenParser интерфейс проверки JWT-токенов
type TokenParser interface {
	ParseToken(token string) (*auth.Claims, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth middleware аутентификации: извлекает bearer-токен,
// проверяет подпись и кладет claims в контекст запроса
func Auth(parser TokenParser, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := parser.ParseToken(token)
			if err != nil {
				logger.Warn("%s %s - invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly middleware авторизации: пропускает только токены с ролью admin
func AdminOnly(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || claims.Role != auth.RoleAdmin {
				logger.Warn("%s %s - admin access denied", r.Method, r.URL.Path)
				handlers.RespondForbidden(w, msgAdminOnly)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromContext достает claims авторизованного пользователя из контекста
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*auth.Claims)
	return claims, ok
}

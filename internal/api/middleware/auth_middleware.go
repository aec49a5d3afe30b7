package middleware

import (
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/util"
	"github.com/RoyceAzure/lab/shopcenter/pkg/api"
	"github.com/RoyceAzure/lab/shopcenter/pkg/apperr"
)

// AuthMiddleware 驗證ctx是否有token payload
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if util.GetTokenPayloadFromContext(r.Context()) == nil {
			api.ErrorJSON(w, apperr.UnauthenticatedCode, "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminMiddleware 僅允許admin角色, 須接在AuthMiddleware之後
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := util.GetPrincipalFromContext(r.Context())
		if !ok {
			api.ErrorJSON(w, apperr.UnauthenticatedCode, "")
			return
		}
		if !principal.IsAdmin() {
			api.ErrorJSON(w, apperr.UnauthorizedCode, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

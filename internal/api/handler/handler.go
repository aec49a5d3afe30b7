package handler

import (
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/util"
	"github.com/RoyceAzure/lab/shopcenter/pkg/api"
	"github.com/RoyceAzure/lab/shopcenter/pkg/apperr"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// principal 取出已驗證身分, middleware保證存在, 防禦性檢查一次
func principal(w http.ResponseWriter, r *http.Request) (model.Principal, bool) {
	p, ok := util.GetPrincipalFromContext(r.Context())
	if !ok {
		api.ErrorJSON(w, apperr.UnauthenticatedCode, "")
		return model.Principal{}, false
	}
	return p, true
}

// pathUUID 解析路徑參數中的uuid
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		api.ErrorJSON(w, apperr.BadRequestCode, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// queryInt 解析query string整數, 缺值或格式錯誤回傳預設值
func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

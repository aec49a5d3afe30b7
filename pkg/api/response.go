package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/pkg/apperr"
)

// Response 統一回應格式
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func SuccessJSON(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusOK, Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func CreatedJSON(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusCreated, Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func ErrorJSON(w http.ResponseWriter, code apperr.Code, message string) {
	if message == "" {
		message = apperr.ErrStrMap[code]
	}
	writeJSON(w, code.HTTPStatus(), Response{
		Status:  "error",
		Message: message,
	})
}

// HandleServiceError 將service層錯誤轉成統一回應
// 非 *apperr.Error 一律回500, 不洩漏內部錯誤
func HandleServiceError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		ErrorJSON(w, appErr.Code, appErr.Msg)
		return
	}
	ErrorJSON(w, apperr.InternalErrorCode, apperr.ErrStrMap[apperr.InternalErrorCode])
}

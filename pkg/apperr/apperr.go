package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code 錯誤代碼
// 4xx 對應標準HTTP狀態碼, 46x 為業務自訂代碼
type Code int

const (
	BadRequestCode      Code = 400
	UnauthenticatedCode Code = 401
	UnauthorizedCode    Code = 403
	NotFoundCode        Code = 404
	ConflictCode        Code = 409
	TooManyRequestCode  Code = 429
	InvalidArgumentCode Code = 460
	InvalidQuantityCode Code = 461
	OutOfStockCode      Code = 462
	EmptyCartCode       Code = 463
	InvalidStateCode    Code = 464
	CouponInvalidCode   Code = 465
	DuplicateReviewCode Code = 466
	InternalErrorCode   Code = 500
)

var ErrStrMap = map[Code]string{
	BadRequestCode:      "bad request",
	UnauthenticatedCode: "unauthenticated",
	UnauthorizedCode:    "unauthorized",
	NotFoundCode:        "resource not found",
	ConflictCode:        "resource conflict",
	TooManyRequestCode:  "too many requests",
	InvalidArgumentCode: "invalid argument",
	InvalidQuantityCode: "invalid quantity",
	OutOfStockCode:      "out of stock",
	EmptyCartCode:       "cart is empty",
	InvalidStateCode:    "invalid state transition",
	CouponInvalidCode:   "coupon is not valid",
	DuplicateReviewCode: "review already exists",
	InternalErrorCode:   "internal server error",
}

// httpStatusMap 業務代碼對應的HTTP狀態碼, 未列出的代碼直接使用數值
var httpStatusMap = map[Code]int{
	InvalidArgumentCode: http.StatusBadRequest,
	InvalidQuantityCode: http.StatusBadRequest,
	OutOfStockCode:      http.StatusBadRequest,
	EmptyCartCode:       http.StatusBadRequest,
	InvalidStateCode:    http.StatusBadRequest,
	CouponInvalidCode:   http.StatusBadRequest,
	DuplicateReviewCode: http.StatusConflict,
}

// HTTPStatus 回傳代碼對應的HTTP狀態碼
func (c Code) HTTPStatus() int {
	if s, ok := httpStatusMap[c]; ok {
		return s
	}
	return int(c)
}

type Error struct {
	Code Code
	Msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Msg, e.err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func New(code Code, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap 保留底層錯誤供logger使用, 對外只顯示msg
func Wrap(code Code, msg string, err error) *Error {
	return &Error{Code: code, Msg: msg, err: err}
}

// CodeOf 取出錯誤代碼, 非 *Error 一律視為 InternalErrorCode
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return InternalErrorCode
}

package util

import (
	"context"

	"github.com/RoyceAzure/lab/shopcenter/internal/constants"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/RoyceAzure/lab/shopcenter/pkg/api/token"
)

// GetTokenPayloadFromContext 取出middleware塞入的token payload, 不存在時回nil
func GetTokenPayloadFromContext(ctx context.Context) *token.Payload {
	if v := ctx.Value(constants.AuthorizationPayloadKey); v != nil {
		if payload, ok := v.(*token.Payload); ok {
			return payload
		}
	}
	return nil
}

// GetPrincipalFromContext 將token payload轉成service層使用的Principal
func GetPrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	payload := GetTokenPayloadFromContext(ctx)
	if payload == nil {
		return model.Principal{}, false
	}
	return model.Principal{
		UserID: payload.UserId,
		Email:  payload.UPN,
		Role:   payload.Role,
	}, true
}

// GetRequestIDFromContext 取出request id, 不存在回unknown
func GetRequestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(constants.RequestIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return "unknown"
}

package service

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/constants"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/RoyceAzure/lab/shopcenter/pkg/api/token"
	"github.com/RoyceAzure/lab/shopcenter/pkg/apperr"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	// Register 建立新帳號
	//
	// 錯誤:
	//   - apperr.ConflictCode 409: email已存在
	//   - apperr.InternalErrorCode 500: 資料庫或雜湊錯誤
	Register(ctx context.Context, arg model.CreateUserModel) (*model.UserModel, error)
	// Login 帳密登入, 簽發access/refresh token pair並建立session
	//
	// 錯誤:
	//   - apperr.UnauthenticatedCode 401: 帳密錯誤
	//   - apperr.UnauthorizedCode 403: 帳號已停用
	Login(ctx context.Context, email, password, userAgent, clientIP string) (*model.LoginResponseModel, error)
	// ReNewToken 使用refresh token換發新的access token
	//
	// 錯誤:
	//   - apperr.UnauthenticatedCode 401: refresh token無效或過期
	//   - apperr.UnauthorizedCode 403: session不存在或已撤銷
	ReNewToken(ctx context.Context, refreshToken string) (string, error)
	// Logout 撤銷refresh token對應的session
	Logout(ctx context.Context, refreshToken string) error
	// Me 取得當前登入user資訊
	Me(ctx context.Context, principal model.Principal) (*model.UserModel, error)
}

type AuthService struct {
	store       db.IStore
	userService IUserService
	tokenMaker  token.Maker
}

var (
	ErrSessionExpired = errors.New("session has expired")
	ErrSessionRevoked = errors.New("session has been revoked")
)

func NewAuthService(store db.IStore, userService IUserService, tokenMaker token.Maker) IAuthService {
	if reflect.ValueOf(store).IsNil() {
		panic("auth service initialization failed: store cannot be nil")
	}
	if reflect.ValueOf(userService).IsNil() {
		panic("auth service initialization failed: userService cannot be nil")
	}
	if reflect.ValueOf(tokenMaker).IsNil() {
		panic("auth service initialization failed: tokenMaker cannot be nil")
	}
	return &AuthService{
		store:       store,
		userService: userService,
		tokenMaker:  tokenMaker,
	}
}

func (a *AuthService) Register(ctx context.Context, arg model.CreateUserModel) (*model.UserModel, error) {
	hashPassword, err := bcrypt.GenerateFromPassword([]byte(arg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to hash password", err)
	}

	user := model.UserModel{
		ID:           uuid.New(),
		Email:        arg.Email,
		Name:         arg.Name,
		HashPassword: string(hashPassword),
		Role:         string(constants.RoleUser),
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	err = a.store.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, apperr.New(apperr.ConflictCode, "email already registered")
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to create user", err)
	}

	return &user, nil
}

func (a *AuthService) Login(ctx context.Context, email, password, userAgent, clientIP string) (*model.LoginResponseModel, error) {
	user, err := a.store.GetUserByEmail(ctx, email)
	if err != nil {
		// 不區分帳號不存在與密碼錯誤
		return nil, apperr.New(apperr.UnauthenticatedCode, "invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashPassword), []byte(password)); err != nil {
		return nil, apperr.New(apperr.UnauthenticatedCode, "invalid email or password")
	}

	if !user.IsActive {
		return nil, apperr.New(apperr.UnauthorizedCode, "user is deactivated")
	}

	accessToken, _, err := a.tokenMaker.CreateToken(user.Email, user.ID, user.Role,
		time.Duration(constants.AccessTokenDuration)*time.Hour)
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to create access token", err)
	}

	refreshTokenDur := time.Duration(constants.RefreshTokenDuration) * time.Hour
	refreshToken, _, err := a.tokenMaker.CreateToken(user.Email, user.ID, user.Role, refreshTokenDur)
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to create refresh token", err)
	}

	err = a.store.CreateSession(ctx, model.UserSession{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: refreshToken,
		UserAgent:    userAgent,
		ClientIP:     clientIP,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
		ExpiresAt:    time.Now().UTC().Add(refreshTokenDur),
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to create session", err)
	}

	return &model.LoginResponseModel{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// validateSession 檢查session是否可用
func (a *AuthService) validateSession(session *model.UserSession) error {
	if session.RevokedAt != nil && !session.RevokedAt.IsZero() {
		return ErrSessionRevoked
	}
	if !session.ExpiresAt.IsZero() && time.Now().After(session.ExpiresAt) {
		return ErrSessionExpired
	}
	if !session.IsActive {
		return ErrSessionRevoked
	}
	return nil
}

func (a *AuthService) ReNewToken(ctx context.Context, refreshToken string) (string, error) {
	payload, err := a.tokenMaker.VertifyToken(refreshToken)
	if err != nil {
		return "", apperr.New(apperr.UnauthenticatedCode, "token invalid")
	}

	user, err := a.store.GetUserByID(ctx, payload.UserId)
	if err != nil || !user.IsActive {
		return "", apperr.New(apperr.UnauthorizedCode, "unauthorized")
	}

	session, err := a.store.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", apperr.New(apperr.UnauthorizedCode, "unauthorized")
	}

	if err := a.validateSession(&session); err != nil {
		a.store.DeleteSession(ctx, session.ID)
		return "", apperr.New(apperr.UnauthorizedCode, "unauthorized")
	}

	accessToken, _, err := a.tokenMaker.CreateToken(user.Email, user.ID, user.Role,
		time.Duration(constants.AccessTokenDuration)*time.Hour)
	if err != nil {
		return "", apperr.Wrap(apperr.InternalErrorCode, "failed to create access token", err)
	}

	return accessToken, nil
}

func (a *AuthService) Logout(ctx context.Context, refreshToken string) error {
	// 格式/簽章仍需正確, 但過期token也允許登出
	payload, err := a.tokenMaker.VertifyToken(refreshToken)
	if err != nil && !errors.Is(err, token.ErrExpiredToken) {
		return apperr.New(apperr.UnauthenticatedCode, "unauthenticated")
	}

	session, err := a.store.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		return apperr.New(apperr.UnauthorizedCode, "session not found")
	}

	if payload != nil && payload.UserId != session.UserID {
		return apperr.New(apperr.UnauthorizedCode, "unauthorized")
	}

	err = a.store.DeleteSession(ctx, session.ID)
	if err != nil {
		return apperr.Wrap(apperr.InternalErrorCode, "failed to delete session", err)
	}

	return nil
}

func (a *AuthService) Me(ctx context.Context, principal model.Principal) (*model.UserModel, error) {
	return a.userService.GetUserByID(ctx, principal.UserID)
}

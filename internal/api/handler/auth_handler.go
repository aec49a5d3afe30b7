package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcenter/internal/constants"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/lab/shopcenter/pkg/api"
	"github.com/RoyceAzure/lab/shopcenter/pkg/apperr"
)

type AuthHandler struct {
	authService service.IAuthService
}

func NewAuthHandler(authService service.IAuthService) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	return &AuthHandler{
		authService: authService,
	}
}

// @Summary signup
// @Tags auth
// @Accept json
// @Produce json
// @Param signupInfo body dto.SignupDTO true "email, name and password"
// @Success 201 {object} api.Response{data=dto.UserDTO} "created"
// @Failure 409 {object} api.Response "email already registered"
// @Router /auth/signup [post]
func (a *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var signupDTO dto.SignupDTO
	if err := json.NewDecoder(r.Body).Decode(&signupDTO); err != nil {
		api.ErrorJSON(w, apperr.BadRequestCode, "")
		return
	}
	if err := dto.Validate(signupDTO); err != nil {
		api.ErrorJSON(w, apperr.InvalidArgumentCode, err.Error())
		return
	}

	user, err := a.authService.Register(r.Context(), model.CreateUserModel{
		Email:    signupDTO.Email,
		Name:     signupDTO.Name,
		Password: signupDTO.Password,
	})
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.CreatedJSON(w, dto.ConvertUserModelToDTO(*user), "")
}

// @Summary login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param loginInfo body dto.LoginDTO true "email and password"
// @Success 200 {object} api.Response{data=dto.LoginResponse} "success"
// @Failure 401 {object} api.Response "invalid email or password"
// @Failure 403 {object} api.Response "user is deactivated"
// @Router /auth/login [post]
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var loginDTO dto.LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&loginDTO); err != nil {
		api.ErrorJSON(w, apperr.BadRequestCode, "")
		return
	}
	if err := dto.Validate(loginDTO); err != nil {
		api.ErrorJSON(w, apperr.InvalidArgumentCode, err.Error())
		return
	}

	loginRes, err := a.authService.Login(r.Context(), loginDTO.Email, loginDTO.Password,
		r.UserAgent(), r.RemoteAddr)
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.LoginResponse{
		AccessToken: dto.TokenInfo{
			Value:     loginRes.AccessToken,
			ExpiresIn: int(constants.AccessTokenDuration) * 3600,
		},
		RefreshToken: dto.TokenInfo{
			Value:     loginRes.RefreshToken,
			ExpiresIn: int(constants.RefreshTokenDuration) * 3600,
		},
		User: dto.ConvertUserModelToDTO(loginRes.User),
	}, "")
}

// @Summary renew access token
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh_token body dto.RefreshTokenDTO true "refresh token"
// @Success 200 {object} api.Response{data=dto.TokenInfo} "success"
// @Failure 401 {object} api.Response "token invalid"
// @Router /auth/refresh-token [post]
func (a *AuthHandler) ReNewToken(w http.ResponseWriter, r *http.Request) {
	var refreshTokenDTO dto.RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&refreshTokenDTO); err != nil {
		api.ErrorJSON(w, apperr.BadRequestCode, "")
		return
	}

	accessToken, err := a.authService.ReNewToken(r.Context(), refreshTokenDTO.RefreshToken)
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.TokenInfo{
		Value:     accessToken,
		ExpiresIn: int(constants.AccessTokenDuration) * 3600,
	}, "")
}

// @Summary logout
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh_token body dto.RefreshTokenDTO true "refresh token"
// @Success 200 {object} api.Response "success"
// @Router /auth/logout [post]
func (a *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var refreshTokenDTO dto.RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&refreshTokenDTO); err != nil {
		api.ErrorJSON(w, apperr.BadRequestCode, "")
		return
	}

	if err := a.authService.Logout(r.Context(), refreshTokenDTO.RefreshToken); err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, nil, "logged out")
}

// @Summary current user
// @Tags auth
// @Produce json
// @Success 200 {object} api.Response{data=dto.UserDTO} "success"
// @Failure 401 {object} api.Response "unauthenticated"
// @Router /auth/me [get]
func (a *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	user, err := a.authService.Me(r.Context(), p)
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.ConvertUserModelToDTO(*user), "")
}

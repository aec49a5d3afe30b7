package dto

import "github.com/RoyceAzure/lab/shopcenter/internal/model"

type SignupDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenInfo 表示令牌資訊
type TokenInfo struct {
	Value     string `json:"value"`
	ExpiresIn int    `json:"expires_in"`
}

type UserDTO struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

type LoginResponse struct {
	AccessToken  TokenInfo `json:"access_token"`
	RefreshToken TokenInfo `json:"refresh_token"`
	User         UserDTO   `json:"user"`
}

func ConvertUserModelsToDTO(models []model.UserModel) []UserDTO {
	out := make([]UserDTO, 0, len(models))
	for _, m := range models {
		out = append(out, ConvertUserModelToDTO(m))
	}
	return out
}

type UpdateUserActiveDTO struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func ConvertUserModelToDTO(m model.UserModel) UserDTO {
	return UserDTO{
		ID:       m.ID.String(),
		Email:    m.Email,
		Name:     m.Name,
		Role:     m.Role,
		IsActive: m.IsActive,
	}
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type UserModel struct {
	ID           uuid.UUID
	Email        string
	Name         string
	HashPassword string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
}

type CreateUserModel struct {
	Email    string
	Name     string
	Password string
}

// Principal 已驗證身分, 由middleware自token payload取出後顯式傳入service
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == "admin"
}

type LoginResponseModel struct {
	AccessToken  string
	RefreshToken string
	User         UserModel
}

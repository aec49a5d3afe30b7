package dto

import (
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
)

type CreateReviewDTO struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Rating    int32  `json:"rating" validate:"required,min=1,max=5"`
	Title     string `json:"title" validate:"max=120"`
	Comment   string `json:"comment" validate:"max=2000"`
}

type UpdateReviewDTO struct {
	Rating  *int32  `json:"rating" validate:"omitempty,min=1,max=5"`
	Title   *string `json:"title" validate:"omitempty,max=120"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

type ReviewDTO struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Rating    int32     `json:"rating"`
	Title     string    `json:"title"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func ConvertReviewModelToDTO(m model.ReviewModel) ReviewDTO {
	return ReviewDTO{
		ID:        m.ID.String(),
		ProductID: m.ProductID.String(),
		UserID:    m.UserID.String(),
		Rating:    m.Rating,
		Title:     m.Title,
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt,
	}
}

func ConvertReviewModelsToDTO(models []model.ReviewModel) []ReviewDTO {
	out := make([]ReviewDTO, 0, len(models))
	for _, m := range models {
		out = append(out, ConvertReviewModelToDTO(m))
	}
	return out
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type ReviewModel struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	UserID    uuid.UUID
	Rating    int32
	Title     string
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateReviewModel struct {
	ProductID uuid.UUID
	Rating    int32
	Title     string
	Comment   string
}

type UpdateReviewModel struct {
	Rating  *int32
	Title   *string
	Comment *string
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is a user-defined label for classifying transactions.
// Names are unique per user.
type Category struct {
	ID        int32     `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryRepository defines the interface for category persistence operations
type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	GetByID(userID uuid.UUID, id int32) (*Category, error)
	GetAllByUser(userID uuid.UUID) ([]*Category, error)
	Update(userID uuid.UUID, id int32, name string) (*Category, error)
	Delete(userID uuid.UUID, id int32) error
}

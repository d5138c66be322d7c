package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/smartbudget/smartbudget-backend/internal/domain"
	"github.com/smartbudget/smartbudget-backend/internal/websocket"
)

// CategoryService handles category-related business logic
type CategoryService struct {
	categoryRepo    domain.CategoryRepository
	transactionRepo domain.TransactionRepository
	publisher       websocket.EventPublisher
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository, transactionRepo domain.TransactionRepository, publisher websocket.EventPublisher) *CategoryService {
	return &CategoryService{
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		publisher:       publisher,
	}
}

func validateCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrNameRequired
	}
	if len(name) > domain.MaxCategoryNameLength {
		return "", domain.ErrNameTooLong
	}
	return name, nil
}

// CreateCategory creates a new category with validation
func (s *CategoryService) CreateCategory(userID uuid.UUID, name string) (*domain.Category, error) {
	name, err := validateCategoryName(name)
	if err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.Create(&domain.Category{
		UserID: userID,
		Name:   name,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(userID, websocket.CategoryCreated(category))
	return category, nil
}

// GetCategory retrieves a single category
func (s *CategoryService) GetCategory(userID uuid.UUID, id int32) (*domain.Category, error) {
	return s.categoryRepo.GetByID(userID, id)
}

// GetCategories retrieves all categories for a user
func (s *CategoryService) GetCategories(userID uuid.UUID) ([]*domain.Category, error) {
	return s.categoryRepo.GetAllByUser(userID)
}

// UpdateCategory renames a category
func (s *CategoryService) UpdateCategory(userID uuid.UUID, id int32, name string) (*domain.Category, error) {
	name, err := validateCategoryName(name)
	if err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.Update(userID, id, name)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(userID, websocket.CategoryUpdated(category))
	return category, nil
}

// DeleteCategory removes a category. Categories still referenced by
// transactions are kept and the delete fails with ErrCategoryInUse.
func (s *CategoryService) DeleteCategory(userID uuid.UUID, id int32) error {
	count, err := s.transactionRepo.CountByCategory(userID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(userID, id); err != nil {
		return err
	}

	s.publisher.Publish(userID, websocket.CategoryDeleted(map[string]int32{"id": id}))
	return nil
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/smartbudget/smartbudget-backend/internal/domain"
	"github.com/smartbudget/smartbudget-backend/internal/middleware"
	"github.com/smartbudget/smartbudget-backend/internal/service"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest represents the create/update category request body
type CategoryRequest struct {
	Name string `json:"name"`
}

// Add handles POST /api/Categories/Add
func (h *CategoryHandler) Add(c echo.Context) error {
	userID := middleware.GetUserID(c)

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.CreateCategory(userID, req.Name)
	if err != nil {
		if mapped := mapCategoryError(c, err); mapped != nil {
			return mapped
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create category")
		return NewInternalError(c, "Failed to create category")
	}

	log.Info().Str("user_id", userID.String()).Int32("category_id", category.ID).Str("name", category.Name).Msg("Category created")

	return NewMessageResponse(c, http.StatusOK, "Category created successfully", category)
}

// GetAll handles GET /api/Categories/GetAll
func (h *CategoryHandler) GetAll(c echo.Context) error {
	userID := middleware.GetUserID(c)

	categories, err := h.categoryService.GetCategories(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get categories")
		return NewInternalError(c, "Failed to get categories")
	}

	return emptyAsNotFound(c, categories, "No categories found")
}

// GetByID handles GET /api/Categories/GetById/{id}
func (h *CategoryHandler) GetByID(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := parseEntityID(c)
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	category, err := h.categoryService.GetCategory(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("category_id", id).Msg("Failed to get category")
		return NewInternalError(c, "Failed to get category")
	}

	return c.JSON(http.StatusOK, category)
}

// Update handles PUT /api/Categories/Update/{id}
func (h *CategoryHandler) Update(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := parseEntityID(c)
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.UpdateCategory(userID, id, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		if mapped := mapCategoryError(c, err); mapped != nil {
			return mapped
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("category_id", id).Msg("Failed to update category")
		return NewInternalError(c, "Failed to update category")
	}

	log.Info().Str("user_id", userID.String()).Int32("category_id", category.ID).Msg("Category updated")

	return NewMessageResponse(c, http.StatusOK, "Category updated successfully", category)
}

// Delete handles DELETE /api/Categories/Delete/{id}
func (h *CategoryHandler) Delete(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := parseEntityID(c)
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	if err := h.categoryService.DeleteCategory(userID, id); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		if errors.Is(err, domain.ErrCategoryInUse) {
			return NewConflictError(c, "Category is referenced by transactions and cannot be deleted")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("category_id", id).Msg("Failed to delete category")
		return NewInternalError(c, "Failed to delete category")
	}

	log.Info().Str("user_id", userID.String()).Int32("category_id", id).Msg("Category deleted")

	return NewMessageResponse(c, http.StatusOK, "Category deleted successfully", nil)
}

func mapCategoryError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name must be 100 characters or less"},
		})
	case errors.Is(err, domain.ErrCategoryAlreadyExists):
		return NewConflictError(c, "A category with this name already exists")
	}
	return nil
}

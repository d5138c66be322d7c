package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/smartbudget/smartbudget-backend/internal/domain"
	"github.com/smartbudget/smartbudget-backend/internal/middleware"
	"github.com/smartbudget/smartbudget-backend/internal/service"
)

// ReportHandler handles report-related HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ReportRequest represents the create/update report request body.
// Totals are computed server-side and never accepted from the client.
type ReportRequest struct {
	Description string `json:"description"`
	From        string `json:"from"`
	To          string `json:"to"`
}

func (h *ReportHandler) bindInput(c echo.Context) (*service.ReportInput, error) {
	var req ReportRequest
	if err := c.Bind(&req); err != nil {
		return nil, NewValidationError(c, "Invalid request body", nil)
	}

	from, err := parseDate(req.From)
	if err != nil {
		return nil, NewValidationError(c, "Invalid from date", []ValidationError{
			{Field: "from", Message: "Must be a date in YYYY-MM-DD format"},
		})
	}

	to, err := parseDate(req.To)
	if err != nil {
		return nil, NewValidationError(c, "Invalid to date", []ValidationError{
			{Field: "to", Message: "Must be a date in YYYY-MM-DD format"},
		})
	}

	return &service.ReportInput{
		Description: req.Description,
		From:        from,
		To:          to,
	}, nil
}

// Add handles POST /api/Report/Add
func (h *ReportHandler) Add(c echo.Context) error {
	userID := middleware.GetUserID(c)

	input, bindErr := h.bindInput(c)
	if bindErr != nil {
		return bindErr
	}

	report, err := h.reportService.CreateReport(userID, *input)
	if err != nil {
		if mapped := mapReportError(c, err); mapped != nil {
			return mapped
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create report")
		return NewInternalError(c, "Failed to create report")
	}

	log.Info().Str("user_id", userID.String()).Int32("report_id", report.ID).Str("description", report.Description).Msg("Report created")

	return NewMessageResponse(c, http.StatusOK, "Report created successfully", report)
}

// GetByUserID handles GET /api/Report/GetByUserId/{id}
// The path id must match the authenticated user; a mismatch is forbidden
// rather than an empty result.
func (h *ReportHandler) GetByUserID(c echo.Context) error {
	userID := middleware.GetUserID(c)

	pathID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid user ID", nil)
	}
	if pathID != userID {
		return NewForbiddenError(c, "Cannot access another user's reports")
	}

	reports, err := h.reportService.GetReports(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get reports")
		return NewInternalError(c, "Failed to get reports")
	}

	return emptyAsNotFound(c, reports, "No reports found")
}

// GetByID handles GET /api/Report/GetById/{id}
func (h *ReportHandler) GetByID(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := parseEntityID(c)
	if err != nil {
		return NewValidationError(c, "Invalid report ID", nil)
	}

	report, err := h.reportService.GetReport(userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			return NewNotFoundError(c, "Report not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("report_id", id).Msg("Failed to get report")
		return NewInternalError(c, "Failed to get report")
	}

	return c.JSON(http.StatusOK, report)
}

// Update handles PUT /api/Report/Update/{id}
func (h *ReportHandler) Update(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := parseEntityID(c)
	if err != nil {
		return NewValidationError(c, "Invalid report ID", nil)
	}

	input, bindErr := h.bindInput(c)
	if bindErr != nil {
		return bindErr
	}

	report, err := h.reportService.UpdateReport(userID, id, *input)
	if err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			return NewNotFoundError(c, "Report not found")
		}
		if mapped := mapReportError(c, err); mapped != nil {
			return mapped
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("report_id", id).Msg("Failed to update report")
		return NewInternalError(c, "Failed to update report")
	}

	log.Info().Str("user_id", userID.String()).Int32("report_id", report.ID).Msg("Report updated")

	return NewMessageResponse(c, http.StatusOK, "Report updated successfully", report)
}

// Delete handles DELETE /api/Report/Delete/{id}
func (h *ReportHandler) Delete(c echo.Context) error {
	userID := middleware.GetUserID(c)

	id, err := parseEntityID(c)
	if err != nil {
		return NewValidationError(c, "Invalid report ID", nil)
	}

	if err := h.reportService.DeleteReport(userID, id); err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			return NewNotFoundError(c, "Report not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Int32("report_id", id).Msg("Failed to delete report")
		return NewInternalError(c, "Failed to delete report")
	}

	log.Info().Str("user_id", userID.String()).Int32("report_id", id).Msg("Report deleted")

	return NewMessageResponse(c, http.StatusOK, "Report deleted successfully", nil)
}

func mapReportError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description is required"},
		})
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description must be 255 characters or less"},
		})
	case errors.Is(err, domain.ErrInvalidDateRange):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "from", Message: "From date must not be after to date"},
		})
	}
	return nil
}

package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smartbudget/smartbudget-backend/internal/domain"
	"github.com/smartbudget/smartbudget-backend/internal/websocket"
)

// ReportService handles report-related business logic. Totals are always
// computed here from the owner's transactions; clients never supply them.
type ReportService struct {
	reportRepo      domain.ReportRepository
	transactionRepo domain.TransactionRepository
	publisher       websocket.EventPublisher
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo domain.ReportRepository, transactionRepo domain.TransactionRepository, publisher websocket.EventPublisher) *ReportService {
	return &ReportService{
		reportRepo:      reportRepo,
		transactionRepo: transactionRepo,
		publisher:       publisher,
	}
}

// ReportInput holds the input for creating or updating a report
type ReportInput struct {
	Description string
	From        time.Time
	To          time.Time
}

func validateReportInput(input *ReportInput) error {
	input.Description = strings.TrimSpace(input.Description)
	if input.Description == "" {
		return domain.ErrNameRequired
	}
	if len(input.Description) > domain.MaxBudgetNameLength {
		return domain.ErrNameTooLong
	}
	if input.From.After(input.To) {
		return domain.ErrInvalidDateRange
	}
	return nil
}

func (s *ReportService) computeTotals(userID uuid.UUID, from, to time.Time) (domain.ReportTotals, error) {
	transactions, err := s.transactionRepo.GetByDateRange(userID, from, to)
	if err != nil {
		return domain.ReportTotals{}, err
	}
	return domain.ComputeReportTotals(transactions, from, to), nil
}

// CreateReport computes totals over the window and stores them as a snapshot.
// Transactions posted later do not rewrite the stored figures.
func (s *ReportService) CreateReport(userID uuid.UUID, input ReportInput) (*domain.Report, error) {
	if err := validateReportInput(&input); err != nil {
		return nil, err
	}

	totals, err := s.computeTotals(userID, input.From, input.To)
	if err != nil {
		return nil, err
	}

	report, err := s.reportRepo.Create(&domain.Report{
		UserID:       userID,
		Description:  input.Description,
		FromDate:     input.From,
		ToDate:       input.To,
		TotalIncome:  totals.TotalIncome,
		TotalExpense: totals.TotalExpense,
		NetBalance:   totals.NetBalance,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(userID, websocket.ReportCreated(report))
	return report, nil
}

// GetReport retrieves a single report
func (s *ReportService) GetReport(userID uuid.UUID, id int32) (*domain.Report, error) {
	return s.reportRepo.GetByID(userID, id)
}

// GetReports retrieves all reports for a user
func (s *ReportService) GetReports(userID uuid.UUID) ([]*domain.Report, error) {
	return s.reportRepo.GetAllByUser(userID)
}

// UpdateReport replaces a report's description and window and recomputes its totals
func (s *ReportService) UpdateReport(userID uuid.UUID, id int32, input ReportInput) (*domain.Report, error) {
	if err := validateReportInput(&input); err != nil {
		return nil, err
	}

	totals, err := s.computeTotals(userID, input.From, input.To)
	if err != nil {
		return nil, err
	}

	report, err := s.reportRepo.Update(userID, id, &domain.Report{
		Description:  input.Description,
		FromDate:     input.From,
		ToDate:       input.To,
		TotalIncome:  totals.TotalIncome,
		TotalExpense: totals.TotalExpense,
		NetBalance:   totals.NetBalance,
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(userID, websocket.ReportUpdated(report))
	return report, nil
}

// DeleteReport removes a report
func (s *ReportService) DeleteReport(userID uuid.UUID, id int32) error {
	if err := s.reportRepo.Delete(userID, id); err != nil {
		return err
	}

	s.publisher.Publish(userID, websocket.ReportDeleted(map[string]int32{"id": id}))
	return nil
}

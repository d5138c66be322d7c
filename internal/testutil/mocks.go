package testutil

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbudget/smartbudget-backend/internal/domain"
	"github.com/smartbudget/smartbudget-backend/internal/websocket"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	ByID       map[uuid.UUID]*domain.User
	ByUsername map[string]*domain.User
	ByEmail    map[string]*domain.User
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		ByID:       make(map[uuid.UUID]*domain.User),
		ByUsername: make(map[string]*domain.User),
		ByEmail:    make(map[string]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByUsername retrieves a user by username
func (m *MockUserRepository) GetByUsername(username string) (*domain.User, error) {
	if user, ok := m.ByUsername[username]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByEmail retrieves a user by email
func (m *MockUserRepository) GetByEmail(email string) (*domain.User, error) {
	if user, ok := m.ByEmail[strings.ToLower(email)]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// Create creates a new user
func (m *MockUserRepository) Create(user *domain.User) (*domain.User, error) {
	if _, ok := m.ByUsername[user.Username]; ok {
		return nil, domain.ErrUsernameTaken
	}
	if _, ok := m.ByEmail[strings.ToLower(user.Email)]; ok {
		return nil, domain.ErrEmailTaken
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.ByID[user.ID] = user
	m.ByUsername[user.Username] = user
	m.ByEmail[strings.ToLower(user.Email)] = user
	return user, nil
}

// MockWalletRepository is a mock implementation of domain.WalletRepository
type MockWalletRepository struct {
	Wallets map[int32]*domain.Wallet
	NextID  int32
	// HasTransactions marks wallets whose delete must fail
	HasTransactions map[int32]bool
}

// NewMockWalletRepository creates a new MockWalletRepository
func NewMockWalletRepository() *MockWalletRepository {
	return &MockWalletRepository{
		Wallets:         make(map[int32]*domain.Wallet),
		NextID:          1,
		HasTransactions: make(map[int32]bool),
	}
}

// Create creates a new wallet
func (m *MockWalletRepository) Create(wallet *domain.Wallet) (*domain.Wallet, error) {
	wallet.ID = m.NextID
	m.NextID++
	wallet.CreatedAt = time.Now()
	wallet.UpdatedAt = wallet.CreatedAt
	m.Wallets[wallet.ID] = wallet
	return wallet, nil
}

// GetByID retrieves a wallet by ID scoped to its owner
func (m *MockWalletRepository) GetByID(userID uuid.UUID, id int32) (*domain.Wallet, error) {
	wallet, ok := m.Wallets[id]
	if !ok || wallet.UserID != userID {
		return nil, domain.ErrWalletNotFound
	}
	return wallet, nil
}

// GetAllByUser retrieves all wallets for a user
func (m *MockWalletRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Wallet, error) {
	var wallets []*domain.Wallet
	for _, w := range m.Wallets {
		if w.UserID == userID {
			wallets = append(wallets, w)
		}
	}
	sort.Slice(wallets, func(i, j int) bool { return wallets[i].ID < wallets[j].ID })
	return wallets, nil
}

// Update updates a wallet's name and type
func (m *MockWalletRepository) Update(userID uuid.UUID, id int32, name string, walletType domain.WalletType) (*domain.Wallet, error) {
	wallet, err := m.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	wallet.Name = name
	wallet.Type = walletType
	wallet.UpdatedAt = time.Now()
	return wallet, nil
}

// Delete removes a wallet unless it still has transactions
func (m *MockWalletRepository) Delete(userID uuid.UUID, id int32) error {
	if _, err := m.GetByID(userID, id); err != nil {
		return err
	}
	if m.HasTransactions[id] {
		return domain.ErrWalletHasTransactions
	}
	delete(m.Wallets, id)
	return nil
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[int32]*domain.Category
	NextID     int32
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[int32]*domain.Category),
		NextID:     1,
	}
}

// Create creates a new category enforcing per-user name uniqueness
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	for _, existing := range m.Categories {
		if existing.UserID == category.UserID && existing.Name == category.Name {
			return nil, domain.ErrCategoryAlreadyExists
		}
	}
	category.ID = m.NextID
	m.NextID++
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	m.Categories[category.ID] = category
	return category, nil
}

// GetByID retrieves a category by ID scoped to its owner
func (m *MockCategoryRepository) GetByID(userID uuid.UUID, id int32) (*domain.Category, error) {
	category, ok := m.Categories[id]
	if !ok || category.UserID != userID {
		return nil, domain.ErrCategoryNotFound
	}
	return category, nil
}

// GetAllByUser retrieves all categories for a user
func (m *MockCategoryRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Category, error) {
	var categories []*domain.Category
	for _, c := range m.Categories {
		if c.UserID == userID {
			categories = append(categories, c)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

// Update renames a category
func (m *MockCategoryRepository) Update(userID uuid.UUID, id int32, name string) (*domain.Category, error) {
	category, err := m.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	for _, existing := range m.Categories {
		if existing.UserID == userID && existing.ID != id && existing.Name == name {
			return nil, domain.ErrCategoryAlreadyExists
		}
	}
	category.Name = name
	category.UpdatedAt = time.Now()
	return category, nil
}

// Delete removes a category
func (m *MockCategoryRepository) Delete(userID uuid.UUID, id int32) error {
	if _, err := m.GetByID(userID, id); err != nil {
		return err
	}
	delete(m.Categories, id)
	return nil
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository.
// When Transactions is set, SumExpensesInWindow derives the spend from it.
type MockBudgetRepository struct {
	Budgets      map[int32]*domain.Budget
	NextID       int32
	Transactions *MockTransactionRepository
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets: make(map[int32]*domain.Budget),
		NextID:  1,
	}
}

// Create creates a new budget
func (m *MockBudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	budget.ID = m.NextID
	m.NextID++
	budget.CreatedAt = time.Now()
	budget.UpdatedAt = budget.CreatedAt
	m.Budgets[budget.ID] = budget
	return budget, nil
}

// GetByID retrieves a budget by ID scoped to its owner
func (m *MockBudgetRepository) GetByID(userID uuid.UUID, id int32) (*domain.Budget, error) {
	budget, ok := m.Budgets[id]
	if !ok || budget.UserID != userID {
		return nil, domain.ErrBudgetNotFound
	}
	return budget, nil
}

// GetAllByUser retrieves all budgets for a user
func (m *MockBudgetRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Budget, error) {
	var budgets []*domain.Budget
	for _, b := range m.Budgets {
		if b.UserID == userID {
			budgets = append(budgets, b)
		}
	}
	sort.Slice(budgets, func(i, j int) bool { return budgets[i].ID < budgets[j].ID })
	return budgets, nil
}

// Update replaces a budget's details
func (m *MockBudgetRepository) Update(userID uuid.UUID, id int32, budget *domain.Budget) (*domain.Budget, error) {
	existing, err := m.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	existing.Name = budget.Name
	existing.Amount = budget.Amount
	existing.StartDate = budget.StartDate
	existing.EndDate = budget.EndDate
	existing.UpdatedAt = time.Now()
	return existing, nil
}

// Delete removes a budget
func (m *MockBudgetRepository) Delete(userID uuid.UUID, id int32) error {
	if _, err := m.GetByID(userID, id); err != nil {
		return err
	}
	delete(m.Budgets, id)
	return nil
}

// SumExpensesInWindow totals all the user's expenses dated within the window
func (m *MockBudgetRepository) SumExpensesInWindow(userID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	if m.Transactions == nil {
		return decimal.Zero, nil
	}
	transactions, err := m.Transactions.GetAllByUser(userID)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.SumByTypeInRange(transactions, domain.TransactionTypeExpense, from, to), nil
}

// MockTransactionRepository is a mock implementation of
// domain.TransactionRepository. It shares wallet state with a
// MockWalletRepository so postings move balances the way the real
// repository does, including the insufficient funds check.
type MockTransactionRepository struct {
	Transactions map[int32]*domain.Transaction
	NextID       int32
	Wallets      *MockWalletRepository
	Categories   *MockCategoryRepository
}

// NewMockTransactionRepository creates a new MockTransactionRepository
// backed by the given wallet and category mocks
func NewMockTransactionRepository(wallets *MockWalletRepository, categories *MockCategoryRepository) *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[int32]*domain.Transaction),
		NextID:       1,
		Wallets:      wallets,
		Categories:   categories,
	}
}

func (m *MockTransactionRepository) applyDelta(userID uuid.UUID, walletID int32, delta decimal.Decimal) error {
	wallet, err := m.Wallets.GetByID(userID, walletID)
	if err != nil {
		return err
	}
	newBalance := wallet.Balance.Add(delta)
	if newBalance.LessThan(decimal.Zero) {
		return domain.ErrInsufficientFunds
	}
	wallet.Balance = newBalance
	return nil
}

func effect(txType domain.TransactionType, amount decimal.Decimal) decimal.Decimal {
	if txType == domain.TransactionTypeExpense {
		return amount.Neg()
	}
	return amount
}

// Post inserts a transaction and applies its balance effect
func (m *MockTransactionRepository) Post(transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.Categories != nil {
		if _, err := m.Categories.GetByID(transaction.UserID, transaction.CategoryID); err != nil {
			return nil, err
		}
	}
	if err := m.applyDelta(transaction.UserID, transaction.WalletID, effect(transaction.Type, transaction.Amount)); err != nil {
		return nil, err
	}
	transaction.ID = m.NextID
	m.NextID++
	transaction.CreatedAt = time.Now()
	transaction.UpdatedAt = transaction.CreatedAt
	m.Transactions[transaction.ID] = transaction
	if m.Wallets != nil {
		m.Wallets.HasTransactions[transaction.WalletID] = true
	}
	return transaction, nil
}

// GetByID retrieves a transaction by ID scoped to its owner
func (m *MockTransactionRepository) GetByID(userID uuid.UUID, id int32) (*domain.Transaction, error) {
	transaction, ok := m.Transactions[id]
	if !ok || transaction.UserID != userID {
		return nil, domain.ErrTransactionNotFound
	}
	return transaction, nil
}

// GetAllByUser retrieves all transactions for a user
func (m *MockTransactionRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Transaction, error) {
	var transactions []*domain.Transaction
	for _, tx := range m.Transactions {
		if tx.UserID == userID {
			transactions = append(transactions, tx)
		}
	}
	sort.Slice(transactions, func(i, j int) bool { return transactions[i].ID < transactions[j].ID })
	return transactions, nil
}

// GetByWallet retrieves transactions posted against one wallet
func (m *MockTransactionRepository) GetByWallet(userID uuid.UUID, walletID int32) ([]*domain.Transaction, error) {
	var transactions []*domain.Transaction
	for _, tx := range m.Transactions {
		if tx.UserID == userID && tx.WalletID == walletID {
			transactions = append(transactions, tx)
		}
	}
	sort.Slice(transactions, func(i, j int) bool { return transactions[i].ID < transactions[j].ID })
	return transactions, nil
}

// GetByDateRange retrieves transactions within [from, to] inclusive
func (m *MockTransactionRepository) GetByDateRange(userID uuid.UUID, from, to time.Time) ([]*domain.Transaction, error) {
	var transactions []*domain.Transaction
	for _, tx := range m.Transactions {
		if tx.UserID == userID && tx.InDateRange(from, to) {
			transactions = append(transactions, tx)
		}
	}
	sort.Slice(transactions, func(i, j int) bool { return transactions[i].ID < transactions[j].ID })
	return transactions, nil
}

// Update replaces a transaction, reverting the old balance effect and
// applying the new one
func (m *MockTransactionRepository) Update(userID uuid.UUID, id int32, data *domain.UpdateTransactionData) (*domain.Transaction, error) {
	transaction, err := m.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if m.Categories != nil {
		if _, err := m.Categories.GetByID(userID, data.CategoryID); err != nil {
			return nil, err
		}
	}

	if err := m.applyDelta(userID, transaction.WalletID, effect(transaction.Type, transaction.Amount).Neg()); err != nil {
		return nil, err
	}
	if err := m.applyDelta(userID, data.WalletID, effect(data.Type, data.Amount)); err != nil {
		// Restore the reverted effect so the failed update changes nothing
		_ = m.applyDelta(userID, transaction.WalletID, effect(transaction.Type, transaction.Amount))
		return nil, err
	}

	transaction.WalletID = data.WalletID
	transaction.CategoryID = data.CategoryID
	transaction.Amount = data.Amount
	transaction.Type = data.Type
	transaction.Date = data.Date
	transaction.Description = data.Description
	transaction.UpdatedAt = time.Now()
	return transaction, nil
}

// Delete removes a transaction and reverts its balance effect
func (m *MockTransactionRepository) Delete(userID uuid.UUID, id int32) error {
	transaction, err := m.GetByID(userID, id)
	if err != nil {
		return err
	}
	if err := m.applyDelta(userID, transaction.WalletID, effect(transaction.Type, transaction.Amount).Neg()); err != nil {
		return err
	}
	delete(m.Transactions, id)
	return nil
}

// SumByTypeAndDateRange sums transactions by type within a date range
func (m *MockTransactionRepository) SumByTypeAndDateRange(userID uuid.UUID, from, to time.Time, txType domain.TransactionType) (decimal.Decimal, error) {
	transactions, err := m.GetAllByUser(userID)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.SumByTypeInRange(transactions, txType, from, to), nil
}

// SetReceiptPath records or clears the receipt path
func (m *MockTransactionRepository) SetReceiptPath(userID uuid.UUID, id int32, receiptPath *string) (*domain.Transaction, error) {
	transaction, err := m.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	transaction.ReceiptPath = receiptPath
	transaction.UpdatedAt = time.Now()
	return transaction, nil
}

// CountByCategory counts transactions referencing a category
func (m *MockTransactionRepository) CountByCategory(userID uuid.UUID, categoryID int32) (int64, error) {
	var count int64
	for _, tx := range m.Transactions {
		if tx.UserID == userID && tx.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

// MockReportRepository is a mock implementation of domain.ReportRepository
type MockReportRepository struct {
	Reports map[int32]*domain.Report
	NextID  int32
}

// NewMockReportRepository creates a new MockReportRepository
func NewMockReportRepository() *MockReportRepository {
	return &MockReportRepository{
		Reports: make(map[int32]*domain.Report),
		NextID:  1,
	}
}

// Create stores a report
func (m *MockReportRepository) Create(report *domain.Report) (*domain.Report, error) {
	report.ID = m.NextID
	m.NextID++
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt
	m.Reports[report.ID] = report
	return report, nil
}

// GetByID retrieves a report by ID scoped to its owner
func (m *MockReportRepository) GetByID(userID uuid.UUID, id int32) (*domain.Report, error) {
	report, ok := m.Reports[id]
	if !ok || report.UserID != userID {
		return nil, domain.ErrReportNotFound
	}
	return report, nil
}

// GetAllByUser retrieves all reports for a user
func (m *MockReportRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Report, error) {
	var reports []*domain.Report
	for _, r := range m.Reports {
		if r.UserID == userID {
			reports = append(reports, r)
		}
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].ID > reports[j].ID })
	return reports, nil
}

// Update replaces a report's details
func (m *MockReportRepository) Update(userID uuid.UUID, id int32, report *domain.Report) (*domain.Report, error) {
	existing, err := m.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	existing.Description = report.Description
	existing.FromDate = report.FromDate
	existing.ToDate = report.ToDate
	existing.TotalIncome = report.TotalIncome
	existing.TotalExpense = report.TotalExpense
	existing.NetBalance = report.NetBalance
	existing.UpdatedAt = time.Now()
	return existing, nil
}

// Delete removes a report
func (m *MockReportRepository) Delete(userID uuid.UUID, id int32) error {
	if _, err := m.GetByID(userID, id); err != nil {
		return err
	}
	delete(m.Reports, id)
	return nil
}

// MockPublisher records published events for assertions
type MockPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// PublishedEvent pairs an event with the user it was published for
type PublishedEvent struct {
	UserID uuid.UUID
	Event  websocket.Event
}

// Publish records the event
func (m *MockPublisher) Publish(userID uuid.UUID, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{UserID: userID, Event: event})
}

// EventTypes returns the types of all published events in order
func (m *MockPublisher) EventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Event.Type
	}
	return types
}

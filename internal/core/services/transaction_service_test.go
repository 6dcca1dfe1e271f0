package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pocketfin/budget_tracker_app/internal/apperrors"
	"github.com/pocketfin/budget_tracker_app/internal/core/domain"
	portssvc "github.com/pocketfin/budget_tracker_app/internal/core/ports/services"
	"github.com/pocketfin/budget_tracker_app/internal/core/services"
	"github.com/pocketfin/budget_tracker_app/internal/dto"
)

// MockTransactionRepository is a mock type for the TransactionRepository interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, query domain.TransactionQuery) ([]domain.Transaction, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransactionsByIDs(ctx context.Context, transactionIDs []string) (int64, error) {
	args := m.Called(ctx, transactionIDs)
	return args.Get(0).(int64), args.Error(1)
}

// --- Test Suite Setup ---

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockAccountRepo  *MockAccountRepository
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.TransactionSvc

	accountID  string
	categoryID string
	category   *domain.Category
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockAccountRepo, suite.mockCategoryRepo)

	suite.accountID = uuid.NewString()
	suite.categoryID = uuid.NewString()
	suite.category = &domain.Category{
		CategoryID: suite.categoryID,
		Name:       "Groceries",
		Kind:       domain.Expense,
	}
}

func (suite *TransactionServiceTestSuite) validCreateRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		DateTime:   time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
		Amount:     decimal.NewFromInt(42),
		CategoryID: suite.categoryID,
		AccountID:  suite.accountID,
	}
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_KindInheritedFromCategory() {
	ctx := context.Background()
	req := suite.validCreateRequest()

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.categoryID).Return(suite.category, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(&domain.Account{AccountID: suite.accountID}, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Kind == domain.Expense
	})).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, mock.AnythingOfType("string")).
		Return(&domain.Transaction{Kind: domain.Expense, CategoryName: "Groceries"}, nil).Once()

	created, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.Expense, created.Kind)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_KindMismatchRefused() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.Kind = domain.Income // category is expense

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.categoryID).Return(suite.category, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.accountID).Return(&domain.Account{AccountID: suite.accountID}, nil).Once()

	created, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(created)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NonPositiveAmount() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.Amount = decimal.Zero

	created, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(created)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnknownCategory() {
	ctx := context.Background()
	req := suite.validCreateRequest()

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.categoryID).Return(nil, apperrors.ErrNotFound).Once()

	created, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation, "a missing referent is an input error, not a 404")
	suite.Nil(created)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_UnknownSortKey() {
	ctx := context.Background()

	txns, err := suite.service.ListTransactions(ctx, domain.TransactionQuery{SortBy: "color"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(txns)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListTransactions")
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_KindFollowsNewCategory() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	newCategoryID := uuid.NewString()
	existing := &domain.Transaction{
		TransactionID: transactionID,
		Kind:          domain.Expense,
		CategoryID:    suite.categoryID,
		AccountID:     suite.accountID,
		Amount:        decimal.NewFromInt(10),
		DateTime:      time.Now(),
	}
	salary := &domain.Category{CategoryID: newCategoryID, Name: "Salary", Kind: domain.Income}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(existing, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, newCategoryID).Return(salary, nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Kind == domain.Income && txn.CategoryID == newCategoryID
	})).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).
		Return(&domain.Transaction{TransactionID: transactionID, Kind: domain.Income, CategoryName: "Salary"}, nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, transactionID, dto.UpdateTransactionRequest{CategoryID: &newCategoryID})

	suite.Require().NoError(err)
	suite.Equal(domain.Income, updated.Kind)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransactions_ReportsSkipped() {
	ctx := context.Background()
	ids := []string{uuid.NewString(), uuid.NewString(), uuid.NewString()}

	// One of the three vanished before the delete ran.
	suite.mockTxnRepo.On("DeleteTransactionsByIDs", ctx, ids).Return(int64(2), nil).Once()

	deleted, skipped, err := suite.service.DeleteTransactions(ctx, ids)

	suite.Require().NoError(err)
	suite.Equal(int64(2), deleted)
	suite.Equal(int64(1), skipped)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransactions_EmptySelection() {
	ctx := context.Background()

	deleted, skipped, err := suite.service.DeleteTransactions(ctx, nil)

	suite.Require().NoError(err)
	suite.Zero(deleted)
	suite.Zero(skipped)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransactionsByIDs")
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_MissingIsNoOp() {
	ctx := context.Background()
	transactionID := uuid.NewString()

	suite.mockTxnRepo.On("DeleteTransactionsByIDs", ctx, []string{transactionID}).Return(int64(0), nil).Once()

	err := suite.service.DeleteTransaction(ctx, transactionID)

	suite.Require().NoError(err)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

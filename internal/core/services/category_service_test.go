package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pocketfin/budget_tracker_app/internal/apperrors"
	"github.com/pocketfin/budget_tracker_app/internal/core/domain"
	portssvc "github.com/pocketfin/budget_tracker_app/internal/core/ports/services"
	"github.com/pocketfin/budget_tracker_app/internal/core/services"
	"github.com/pocketfin/budget_tracker_app/internal/dto"
)

// MockCategoryRepository is a mock type for the CategoryRepository interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, kind domain.TransactionKind) ([]domain.Category, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type CategoryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCategoryRepository
	service  portssvc.CategorySvc
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCategoryRepository)
	suite.service = services.NewCategoryService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *CategoryServiceTestSuite) TestCreateCategory_Success() {
	ctx := context.Background()
	req := dto.CreateCategoryRequest{Name: "Groceries", Kind: domain.Expense}

	suite.mockRepo.On("SaveCategory", ctx, mock.AnythingOfType("domain.Category")).Return(nil).Once()

	created, err := suite.service.CreateCategory(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.CategoryID)
	suite.Equal(domain.Expense, created.Kind)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_InvalidKind() {
	ctx := context.Background()
	req := dto.CreateCategoryRequest{Name: "Groceries", Kind: "transfer"}

	created, err := suite.service.CreateCategory(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(created)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCategory")
}

func (suite *CategoryServiceTestSuite) TestListCategories_FilteredByKind() {
	ctx := context.Background()
	income := []domain.Category{
		{CategoryID: uuid.NewString(), Name: "Salary", Kind: domain.Income},
	}

	suite.mockRepo.On("ListCategories", ctx, domain.Income).Return(income, nil).Once()

	categories, err := suite.service.ListCategories(ctx, domain.Income)

	suite.Require().NoError(err)
	suite.Len(categories, 1)
	suite.Equal("Salary", categories[0].Name)
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_KindChange() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	existing := &domain.Category{CategoryID: categoryID, Name: "Side Income", Kind: domain.Expense}
	newKind := domain.Income

	suite.mockRepo.On("FindCategoryByID", ctx, categoryID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateCategory", ctx, mock.AnythingOfType("domain.Category")).Return(nil).Once()

	updated, err := suite.service.UpdateCategory(ctx, categoryID, dto.UpdateCategoryRequest{Kind: &newKind})

	suite.Require().NoError(err)
	suite.Equal(domain.Income, updated.Kind)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_MissingIsNoOp() {
	ctx := context.Background()
	categoryID := uuid.NewString()

	suite.mockRepo.On("DeleteCategory", ctx, categoryID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteCategory(ctx, categoryID)

	suite.Require().NoError(err)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_RefusedWithDependents() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	depErr := apperrors.NewHasDependentsError("category", categoryID, 2)

	suite.mockRepo.On("DeleteCategory", ctx, categoryID).Return(depErr).Once()

	err := suite.service.DeleteCategory(ctx, categoryID)

	suite.Require().Error(err)
	var gotDep *apperrors.HasDependentsError
	suite.Require().ErrorAs(err, &gotDep)
	suite.Equal("category", gotDep.EntityKind)
	suite.Equal(int64(2), gotDep.Count)
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}

package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	_ "modernc.org/sqlite"

	"github.com/pocketfin/budget_tracker_app/internal/apperrors"
	"github.com/pocketfin/budget_tracker_app/internal/core/domain"
	"github.com/pocketfin/budget_tracker_app/internal/core/events"
	portsrepo "github.com/pocketfin/budget_tracker_app/internal/core/ports/repositories"
	"github.com/pocketfin/budget_tracker_app/internal/repositories/database/sqlite"
)

type SQLiteRepositoryTestSuite struct {
	suite.Suite
	db    *sql.DB
	bus   *events.Bus
	repos *portsrepo.RepositoryProvider
	ctx   context.Context
}

func (suite *SQLiteRepositoryTestSuite) SetupTest() {
	db, err := sql.Open("sqlite", ":memory:")
	suite.Require().NoError(err)
	db.SetMaxOpenConns(1)
	suite.Require().NoError(sqlite.RunMigrations(db))

	suite.db = db
	suite.bus = events.NewBus()
	suite.repos = sqlite.NewRepositoryProvider(db, suite.bus)
	suite.ctx = context.Background()
}

func (suite *SQLiteRepositoryTestSuite) TearDownTest() {
	suite.db.Close()
}

func (suite *SQLiteRepositoryTestSuite) newAccount(name string) domain.Account {
	now := time.Now().UTC().Truncate(time.Millisecond)
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Name:        name,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	suite.Require().NoError(suite.repos.AccountRepo.SaveAccount(suite.ctx, account))
	return account
}

func (suite *SQLiteRepositoryTestSuite) newCategory(name string, kind domain.TransactionKind) domain.Category {
	now := time.Now().UTC().Truncate(time.Millisecond)
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		Name:        name,
		Kind:        kind,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	suite.Require().NoError(suite.repos.CategoryRepo.SaveCategory(suite.ctx, category))
	return category
}

func (suite *SQLiteRepositoryTestSuite) newTransaction(account domain.Account, category domain.Category, amount int64, at time.Time) domain.Transaction {
	now := time.Now().UTC().Truncate(time.Millisecond)
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Kind:          category.Kind,
		DateTime:      at,
		Amount:        decimal.NewFromInt(amount),
		CategoryID:    category.CategoryID,
		AccountID:     account.AccountID,
		AuditFields:   domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	suite.Require().NoError(suite.repos.TransactionRepo.SaveTransaction(suite.ctx, txn))
	return txn
}

// --- Accounts ---

func (suite *SQLiteRepositoryTestSuite) TestAccountRoundTrip() {
	saved := suite.newAccount("Main Account")

	found, err := suite.repos.AccountRepo.FindAccountByID(suite.ctx, saved.AccountID)

	suite.Require().NoError(err)
	suite.Equal(saved.AccountID, found.AccountID)
	suite.Equal("Main Account", found.Name)
	suite.True(saved.CreatedAt.Equal(found.CreatedAt))
}

func (suite *SQLiteRepositoryTestSuite) TestFindAccount_Missing() {
	_, err := suite.repos.AccountRepo.FindAccountByID(suite.ctx, "nope")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SQLiteRepositoryTestSuite) TestListAccounts_OrderedByName() {
	suite.newAccount("Wallet")
	suite.newAccount("Bank")

	accounts, err := suite.repos.AccountRepo.ListAccounts(suite.ctx)

	suite.Require().NoError(err)
	suite.Require().Len(accounts, 2)
	suite.Equal("Bank", accounts[0].Name)
	suite.Equal("Wallet", accounts[1].Name)
}

func (suite *SQLiteRepositoryTestSuite) TestDeleteAccount_RefusedWhileReferenced() {
	account := suite.newAccount("Main Account")
	category := suite.newCategory("Groceries", domain.Expense)
	suite.newTransaction(account, category, 50, time.Now().UTC())

	err := suite.repos.AccountRepo.DeleteAccount(suite.ctx, account.AccountID)

	var depErr *apperrors.HasDependentsError
	suite.Require().ErrorAs(err, &depErr)
	suite.Equal("account", depErr.EntityKind)
	suite.Equal(int64(1), depErr.Count)

	// Still present after the refusal.
	_, err = suite.repos.AccountRepo.FindAccountByID(suite.ctx, account.AccountID)
	suite.NoError(err)
}

func (suite *SQLiteRepositoryTestSuite) TestDeleteAccount_SucceedsAfterDependentsGone() {
	account := suite.newAccount("Main Account")
	category := suite.newCategory("Groceries", domain.Expense)
	txn := suite.newTransaction(account, category, 50, time.Now().UTC())

	_, err := suite.repos.TransactionRepo.DeleteTransactionsByIDs(suite.ctx, []string{txn.TransactionID})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repos.AccountRepo.DeleteAccount(suite.ctx, account.AccountID))

	_, err = suite.repos.AccountRepo.FindAccountByID(suite.ctx, account.AccountID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Categories ---

func (suite *SQLiteRepositoryTestSuite) TestListCategories_KindFilter() {
	suite.newCategory("Salary", domain.Income)
	suite.newCategory("Groceries", domain.Expense)
	suite.newCategory("Bills", domain.Expense)

	expense, err := suite.repos.CategoryRepo.ListCategories(suite.ctx, domain.Expense)
	suite.Require().NoError(err)
	suite.Len(expense, 2)

	all, err := suite.repos.CategoryRepo.ListCategories(suite.ctx, "")
	suite.Require().NoError(err)
	suite.Len(all, 3)
}

func (suite *SQLiteRepositoryTestSuite) TestDeleteCategory_RefusedWhileReferenced() {
	account := suite.newAccount("Main Account")
	category := suite.newCategory("Groceries", domain.Expense)
	suite.newTransaction(account, category, 10, time.Now().UTC())
	suite.newTransaction(account, category, 20, time.Now().UTC())

	err := suite.repos.CategoryRepo.DeleteCategory(suite.ctx, category.CategoryID)

	var depErr *apperrors.HasDependentsError
	suite.Require().ErrorAs(err, &depErr)
	suite.Equal(int64(2), depErr.Count)
}

// --- Transactions ---

func (suite *SQLiteRepositoryTestSuite) TestFindTransaction_ResolvesNames() {
	account := suite.newAccount("Main Account")
	category := suite.newCategory("Groceries", domain.Expense)
	saved := suite.newTransaction(account, category, 75, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))

	found, err := suite.repos.TransactionRepo.FindTransactionByID(suite.ctx, saved.TransactionID)

	suite.Require().NoError(err)
	suite.Equal("Groceries", found.CategoryName)
	suite.Equal("Main Account", found.AccountName)
	suite.True(found.Amount.Equal(decimal.NewFromInt(75)))
	suite.True(found.DateTime.Equal(saved.DateTime))
}

func (suite *SQLiteRepositoryTestSuite) TestListTransactions_FiltersAndSort() {
	accountA := suite.newAccount("Account A")
	accountB := suite.newAccount("Account B")
	groceries := suite.newCategory("Groceries", domain.Expense)
	salary := suite.newCategory("Salary", domain.Income)

	day := func(d int) time.Time { return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC) }
	t1 := suite.newTransaction(accountA, groceries, 30, day(1))
	t2 := suite.newTransaction(accountA, salary, 1000, day(5))
	suite.newTransaction(accountB, groceries, 99, day(3))

	// Account filter.
	byAccount, err := suite.repos.TransactionRepo.ListTransactions(suite.ctx, domain.TransactionQuery{
		AccountIDs: []string{accountA.AccountID},
	})
	suite.Require().NoError(err)
	suite.Require().Len(byAccount, 2)
	suite.Equal(t2.TransactionID, byAccount[0].TransactionID, "date sort is newest first")
	suite.Equal(t1.TransactionID, byAccount[1].TransactionID)

	// Kind filter.
	income, err := suite.repos.TransactionRepo.ListTransactions(suite.ctx, domain.TransactionQuery{
		Kind: domain.Income,
	})
	suite.Require().NoError(err)
	suite.Require().Len(income, 1)
	suite.Equal(t2.TransactionID, income[0].TransactionID)

	// Date range filter.
	ranged, err := suite.repos.TransactionRepo.ListTransactions(suite.ctx, domain.TransactionQuery{
		DateRange: &domain.DateRange{From: day(2), To: day(4)},
	})
	suite.Require().NoError(err)
	suite.Require().Len(ranged, 1)
	suite.Equal("Account B", ranged[0].AccountName)

	// Amount sort.
	byAmount, err := suite.repos.TransactionRepo.ListTransactions(suite.ctx, domain.TransactionQuery{
		SortBy: domain.SortByAmount,
	})
	suite.Require().NoError(err)
	suite.Require().Len(byAmount, 3)
	suite.True(byAmount[0].Amount.Equal(decimal.NewFromInt(1000)))
	suite.True(byAmount[2].Amount.Equal(decimal.NewFromInt(30)))
}

func (suite *SQLiteRepositoryTestSuite) TestListTransactions_RepeatedQueryIdenticalOrder() {
	account := suite.newAccount("Main Account")
	category := suite.newCategory("Groceries", domain.Expense)
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	// Same instant, so ordering falls to the transaction id tie-break.
	suite.newTransaction(account, category, 10, at)
	suite.newTransaction(account, category, 10, at)
	suite.newTransaction(account, category, 10, at)

	first, err := suite.repos.TransactionRepo.ListTransactions(suite.ctx, domain.TransactionQuery{})
	suite.Require().NoError(err)
	second, err := suite.repos.TransactionRepo.ListTransactions(suite.ctx, domain.TransactionQuery{})
	suite.Require().NoError(err)

	suite.Require().Len(first, 3)
	for i := range first {
		suite.Equal(first[i].TransactionID, second[i].TransactionID)
	}
}

func (suite *SQLiteRepositoryTestSuite) TestUpdateTransaction_EditVisibleImmediately() {
	account := suite.newAccount("Main Account")
	category := suite.newCategory("Groceries", domain.Expense)
	txn := suite.newTransaction(account, category, 40, time.Now().UTC().Truncate(time.Millisecond))

	txn.Amount = decimal.NewFromInt(55)
	txn.Description = "weekly shop"
	suite.Require().NoError(suite.repos.TransactionRepo.UpdateTransaction(suite.ctx, txn))

	found, err := suite.repos.TransactionRepo.FindTransactionByID(suite.ctx, txn.TransactionID)
	suite.Require().NoError(err)
	suite.True(found.Amount.Equal(decimal.NewFromInt(55)))
	suite.Equal("weekly shop", found.Description)
}

func (suite *SQLiteRepositoryTestSuite) TestBatchDelete_SkipsVanishedIDs() {
	account := suite.newAccount("Main Account")
	category := suite.newCategory("Groceries", domain.Expense)
	t1 := suite.newTransaction(account, category, 10, time.Now().UTC())
	t2 := suite.newTransaction(account, category, 20, time.Now().UTC())

	deleted, err := suite.repos.TransactionRepo.DeleteTransactionsByIDs(suite.ctx, []string{
		t1.TransactionID, t2.TransactionID, "already-gone",
	})

	suite.Require().NoError(err)
	suite.Equal(int64(2), deleted)

	remaining, err := suite.repos.TransactionRepo.ListTransactions(suite.ctx, domain.TransactionQuery{})
	suite.Require().NoError(err)
	suite.Empty(remaining)
}

// --- Change events ---

func (suite *SQLiteRepositoryTestSuite) TestWritesPublishEvents() {
	var got []events.Event
	sub := suite.bus.Subscribe(func(e events.Event) { got = append(got, e) }, events.KindTransaction)
	defer sub.Close()

	account := suite.newAccount("Main Account")
	category := suite.newCategory("Groceries", domain.Expense)
	txn := suite.newTransaction(account, category, 10, time.Now().UTC())

	_, err := suite.repos.TransactionRepo.DeleteTransactionsByIDs(suite.ctx, []string{txn.TransactionID})
	suite.Require().NoError(err)

	suite.Require().Len(got, 2)
	suite.Equal(events.OpCreate, got[0].Op)
	suite.Equal(events.OpDelete, got[1].Op)
	suite.Equal([]string{txn.TransactionID}, got[1].IDs)
}

func TestSQLiteRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(SQLiteRepositoryTestSuite))
}

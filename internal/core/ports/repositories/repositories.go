// Package repositories declares the persistence ports the services depend on.
// Adapters live under internal/repositories/database.
package repositories

// RepositoryProvider bundles the repository implementations of one store
// backend for injection into the service layer.
type RepositoryProvider struct {
	AccountRepo     AccountRepository
	CategoryRepo    CategoryRepository
	TransactionRepo TransactionRepository
}

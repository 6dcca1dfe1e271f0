package domain

// Account represents a money holding (wallet, bank account, cash) that
// transactions are recorded against.
type Account struct {
	AccountID string `json:"accountID"` // Primary Key (UUID)
	Name      string `json:"name"`      // User-defined display name
	AuditFields
}

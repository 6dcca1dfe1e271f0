package models

// Account is the storage representation of a money holding.
type Account struct {
	AccountID string `db:"account_id"`
	Name      string `db:"name"`
	AuditFields
}

package models

// Category is the storage representation of a transaction category.
// Kind is one of "income" or "expense".
type Category struct {
	CategoryID string `db:"category_id"`
	Name       string `db:"name"`
	Kind       string `db:"kind"`
	AuditFields
}

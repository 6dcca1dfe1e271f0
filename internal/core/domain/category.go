package domain

// Category labels transactions. Kind decides whether the category's
// transactions count towards income or expense totals.
//
// Category names are not enforced unique. Aggregations group by name, so two
// categories sharing a name are indistinguishable in a breakdown; see
// CategoryBreakdown.
type Category struct {
	CategoryID string          `json:"categoryID"` // Primary Key (UUID)
	Name       string          `json:"name"`
	Kind       TransactionKind `json:"kind"` // income or expense
	AuditFields
}

package domain

// Bank represents a bank participating in the back office.
type Bank struct {
	BankID  string `json:"bankID"` // Primary Key (UUID)
	Name    string `json:"name"`
	BIC     string `json:"bic"` // Bank identification code, unique
	Address string `json:"address"`
	AuditFields
}

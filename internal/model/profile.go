package model

// Profile is account data supplied by the external auth collaborator, read-only.
type Profile struct {
	Name        string
	Email       string
	Phone       string
	KycStatus   string
	AccountType string
}

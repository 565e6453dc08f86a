package bankdetails

import (
	"strings"
	"time"
)

const (
	AccountTypeSavings = "SAVINGS"
	AccountTypeCurrent = "CURRENT"
	AccountTypeSalary  = "SALARY"
)

var AccountTypes = []string{AccountTypeSavings, AccountTypeCurrent, AccountTypeSalary}

type BankDetail struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employeeId"`
	BankName      string    `json:"bankName"`
	AccountNumber string    `json:"accountNumber"`
	IFSCCode      string    `json:"ifscCode"`
	Branch        string    `json:"branch"`
	AccountType   string    `json:"accountType"`
	IsPrimary     bool      `json:"isPrimary"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// MaskedAccountNumber keeps the last four digits for display.
func (d BankDetail) MaskedAccountNumber() string {
	digits := len(d.AccountNumber)
	if digits <= 4 {
		return strings.Repeat("X", digits)
	}
	return strings.Repeat("X", digits-4) + d.AccountNumber[digits-4:]
}

package bankdetails

import (
	"regexp"
	"strings"
)

var (
	accountNumberPattern = regexp.MustCompile(`^[0-9]{9,18}$`)
	ifscPattern          = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
)

// Validate applies the field rules for a new or updated bank detail.
// IFSC is only checked when present.
func Validate(detail BankDetail) error {
	bankName := strings.TrimSpace(detail.BankName)
	if bankName == "" {
		return ErrBankNameRequired
	}
	if len(bankName) > 255 {
		return ErrBankNameTooLong
	}
	if !accountNumberPattern.MatchString(detail.AccountNumber) {
		return ErrInvalidAccountNumber
	}
	if detail.IFSCCode != "" && !ifscPattern.MatchString(detail.IFSCCode) {
		return ErrInvalidIFSC
	}
	if strings.TrimSpace(detail.AccountType) == "" {
		return ErrAccountTypeRequired
	}
	for _, t := range AccountTypes {
		if detail.AccountType == t {
			return nil
		}
	}
	return ErrInvalidAccountType
}

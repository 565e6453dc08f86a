package bankdetails

import "errors"

var (
	ErrNotFound               = errors.New("bank detail not found")
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrBankNameRequired       = errors.New("bank name is required")
	ErrBankNameTooLong        = errors.New("bank name exceeds 255 characters")
	ErrInvalidAccountNumber   = errors.New("account number must be 9 to 18 digits")
	ErrInvalidIFSC            = errors.New("ifsc code format is invalid")
	ErrAccountTypeRequired    = errors.New("account type is required")
	ErrInvalidAccountType     = errors.New("account type is invalid")
	ErrDuplicateAccountNumber = errors.New("account number already exists for employee")
	ErrAccountInactive        = errors.New("bank detail is inactive")
	ErrWrongEmployee          = errors.New("bank detail belongs to another employee")
)

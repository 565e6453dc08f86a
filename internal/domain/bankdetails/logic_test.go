package bankdetails

import (
	"errors"
	"strings"
	"testing"
)

func validDetail() BankDetail {
	return BankDetail{
		BankName:      "State Bank",
		AccountNumber: "123456789012",
		IFSCCode:      "SBIN0001234",
		AccountType:   AccountTypeSavings,
	}
}

func TestValidateAccepts(t *testing.T) {
	if err := Validate(validDetail()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	detail := validDetail()
	detail.IFSCCode = ""
	if err := Validate(detail); err != nil {
		t.Fatalf("empty ifsc should be accepted: %v", err)
	}
}

func TestValidateRejectsAccountNumber(t *testing.T) {
	cases := []string{"12AB", "12345678", "1234567890123456789", "12345 6789"}
	for _, number := range cases {
		detail := validDetail()
		detail.AccountNumber = number
		if err := Validate(detail); !errors.Is(err, ErrInvalidAccountNumber) {
			t.Fatalf("account number %q: expected ErrInvalidAccountNumber, got %v", number, err)
		}
	}
}

func TestValidateRejectsIFSC(t *testing.T) {
	cases := []string{"SBIN1001234", "sbin0001234", "SBI00012345", "SBIN000123"}
	for _, code := range cases {
		detail := validDetail()
		detail.IFSCCode = code
		if err := Validate(detail); !errors.Is(err, ErrInvalidIFSC) {
			t.Fatalf("ifsc %q: expected ErrInvalidIFSC, got %v", code, err)
		}
	}
}

func TestValidateBankName(t *testing.T) {
	detail := validDetail()
	detail.BankName = "  "
	if err := Validate(detail); !errors.Is(err, ErrBankNameRequired) {
		t.Fatalf("expected ErrBankNameRequired, got %v", err)
	}

	detail = validDetail()
	detail.BankName = strings.Repeat("b", 256)
	if err := Validate(detail); !errors.Is(err, ErrBankNameTooLong) {
		t.Fatalf("expected ErrBankNameTooLong, got %v", err)
	}
}

func TestValidateAccountType(t *testing.T) {
	detail := validDetail()
	detail.AccountType = ""
	if err := Validate(detail); !errors.Is(err, ErrAccountTypeRequired) {
		t.Fatalf("expected ErrAccountTypeRequired, got %v", err)
	}

	detail.AccountType = "CHECKING"
	if err := Validate(detail); !errors.Is(err, ErrInvalidAccountType) {
		t.Fatalf("expected ErrInvalidAccountType, got %v", err)
	}
}

func TestMaskedAccountNumber(t *testing.T) {
	detail := BankDetail{AccountNumber: "123456789012"}
	if got := detail.MaskedAccountNumber(); got != "XXXXXXXX9012" {
		t.Fatalf("unexpected mask: %q", got)
	}

	detail.AccountNumber = "1234"
	if got := detail.MaskedAccountNumber(); got != "XXXX" {
		t.Fatalf("short numbers should be fully masked, got %q", got)
	}
}

package services

import (
	"errors"
	"fmt"

	"gold-pos/internal/repository"
)

var (
	ErrNotFound           = repository.ErrNotFound
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateCode      = errors.New("product code already exists")
	ErrNotInStock         = errors.New("product is not in stock")
	ErrInvalidTransition  = errors.New("invalid sale status transition")
	ErrCustomerRequired   = errors.New("a customer is required for credit sales")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidCredentials = errors.New("invalid code")
)

// DuplicateCodeError carries the record that already holds the code.
type DuplicateCodeError struct {
	Check DuplicateCheck
}

func (e *DuplicateCodeError) Error() string {
	if e.Check.Source == DuplicateSourceSales && e.Check.Sale != nil {
		return fmt.Sprintf("product code %q was sold to %s on %s",
			e.Check.Code, e.Check.Sale.CustomerName, e.Check.Sale.Date.Format("2006-01-02"))
	}
	return fmt.Sprintf("product code %q is already in stock", e.Check.Code)
}

func (e *DuplicateCodeError) Unwrap() error { return ErrDuplicateCode }

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

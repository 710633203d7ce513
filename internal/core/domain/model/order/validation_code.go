package order

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const validationCodeDigits = 6

var (
	validationCodeSpace = big.NewInt(1_000_000)

	ErrValidationCodeIsNotConstructed = errs.NewValueIsRequiredError("validation code")
)

// ValidationCode is the one-time 6 digit code that proves the physical handoff.
// It is drawn from crypto/rand so it cannot be guessed from the order data.
type ValidationCode struct {
	value string
	guard guard.ConstructorGuard
}

func NewValidationCode() (ValidationCode, error) {
	n, err := rand.Int(rand.Reader, validationCodeSpace)
	if err != nil {
		return ValidationCode{}, fmt.Errorf("generate validation code: %w", err)
	}
	return ValidationCode{
		value: fmt.Sprintf("%06d", n.Int64()),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// ValidationCodeFromString restores a stored code. It must be exactly 6 ASCII digits.
func ValidationCodeFromString(s string) (ValidationCode, error) {
	if len(s) != validationCodeDigits {
		return ValidationCode{}, errs.NewValueIsInvalidErrorWithCause(
			"validation code", fmt.Errorf("must have %d digits, got %d", validationCodeDigits, len(s)))
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return ValidationCode{}, errs.NewValueIsInvalidErrorWithCause(
				"validation code", fmt.Errorf("%q is not a digit", r))
		}
	}
	return ValidationCode{value: s, guard: guard.NewConstructorGuard()}, nil
}

func (c ValidationCode) Validate() error {
	return c.guard.Validate(ErrValidationCodeIsNotConstructed)
}

// IsZero reports a missing code, as found on historically malformed records.
func (c ValidationCode) IsZero() bool {
	return c.value == ""
}

func (c ValidationCode) String() string {
	return c.value
}

// Matches compares the submitted code by exact string equality.
func (c ValidationCode) Matches(submitted string) bool {
	if c.IsZero() {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.value), []byte(submitted)) == 1
}

package checkout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrEmptyCart is returned before any database work happens.
	ErrEmptyCart = errors.New("checkout: cart is empty")

	// ErrInsufficientStock means a cart line asked for more units than
	// remain. The whole order is rolled back.
	ErrInsufficientStock = errors.New("checkout: insufficient stock")

	// ErrDuplicateSubmission means the same cart was already submitted
	// from this session.
	ErrDuplicateSubmission = errors.New("checkout: order already placed")
)

// CustomerInfo is the checkout form payload.
type CustomerInfo struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Phone   string `validate:"required"`
	Address string `validate:"required"`
}

var validate = validator.New()

// Normalized trims every field and lowercases the email so the same
// shopper never splits into two customer rows over casing.
func (c CustomerInfo) Normalized() CustomerInfo {
	return CustomerInfo{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.ToLower(strings.TrimSpace(c.Email)),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
	}
}

// Validate reports the first missing or malformed field.
func (c CustomerInfo) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fmt.Errorf("checkout: %s", fieldMessage(fieldErrs[0]))
		}
		return err
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		return "please enter your name"
	case "Email":
		if fe.Tag() == "email" {
			return "please enter a valid email address"
		}
		return "please enter your email address"
	case "Phone":
		return "please enter your phone number"
	case "Address":
		return "please enter your delivery address"
	}
	return "invalid checkout details"
}

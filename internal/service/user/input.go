package user

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/heartmarshall/messenger-backend/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("field"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// RegisterInput holds parameters for registering a user.
type RegisterInput struct {
	Email   string        `field:"email" validate:"required,email,max=254"`
	Address *AddressInput `field:"address"`
}

// AddressInput is the optional postal address of a new user. When given,
// every part is required.
type AddressInput struct {
	Street  string `field:"street" validate:"required,max=200"`
	City    string `field:"city" validate:"required,max=100"`
	Country string `field:"country" validate:"required,max=100"`
}

// Validate checks all fields and collects all errors.
func (i RegisterInput) Validate() error {
	normalized := i
	normalized.Email = domain.NormalizeEmail(i.Email)
	if i.Address != nil {
		addr := i.Address.normalized()
		normalized.Address = &addr
	}

	err := validate.Struct(normalized)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate register input: %w", err)
	}

	errs := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, domain.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: fieldMessage(fe),
		})
	}
	return &domain.ValidationError{Errors: errs}
}

func (a AddressInput) normalized() AddressInput {
	return AddressInput{
		Street:  domain.NormalizeText(a.Street),
		City:    domain.NormalizeText(a.City),
		Country: domain.NormalizeText(a.Country),
	}
}

// fieldPath drops the struct name from a validator namespace:
// "RegisterInput.address.city" becomes "address.city".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "invalid email"
	case "max":
		return fmt.Sprintf("max %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

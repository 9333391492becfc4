package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"loanapi/internal/core/domain"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Money fields are validated by value
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Money is stored as decimal(15,2); more precision would be rounded away
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		d := decimal.NewFromFloat(fl.Field().Float())
		return d.Equal(d.Round(2))
	})
	_ = v.RegisterValidation("loantype", func(fl validator.FieldLevel) bool {
		return domain.LoanType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("loanstatus", func(fl validator.FieldLevel) bool {
		return domain.LoanStatus(fl.Field().String()).Valid()
	})

	return v
}

// Struct validates a request body and returns a readable error
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, message(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "len", "alpha", "uppercase":
		return fmt.Sprintf("%s must be a valid 3-letter ISO code (e.g., USD, EUR, GEL)", fe.Field())
	case "money":
		return fmt.Sprintf("%s must have at most 2 decimal places", fe.Field())
	case "loantype":
		return fmt.Sprintf("%s must be one of FastLoan, AutoLoan, Installment", fe.Field())
	case "loanstatus":
		return fmt.Sprintf("%s must be one of Processing, Approved, Rejected", fe.Field())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// Package forms decodes HTML form posts into typed structs and validates
// them, producing one user-facing message per failing field.
package forms

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/shopspring/decimal"
)

// Messages maps a form field name to its validation message
type Messages map[string]string

var (
	decoder  = schema.NewDecoder()
	validate = validator.New(validator.WithRequiredStructEnabled())

	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

func init() {
	decoder.IgnoreUnknownKeys(true)

	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("schema"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister("filled", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister("address", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	mustRegister("password", func(fl validator.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	})
	mustRegister("posdecimal", func(fl validator.FieldLevel) bool {
		_, ok := PositiveDecimal(fl.Field().String())
		return ok
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Decode parses the request body (urlencoded or multipart, whichever was
// already parsed) into dst
func Decode(r *http.Request, dst any) error {
	if r.PostForm == nil {
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("parse form: %w", err)
		}
	}
	if err := decoder.Decode(dst, r.PostForm); err != nil {
		return fmt.Errorf("decode form: %w", err)
	}
	return nil
}

// check validates form and translates failures through messages, keyed by
// "field.tag". The first failing rule of each field wins.
func check(form any, messages map[string]string) Messages {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Messages{"form": "Invalid input."}
	}
	out := Messages{}
	for _, fe := range fieldErrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid.", fe.Field())
		}
		out[fe.Field()] = msg
	}
	return out
}

// StrongPassword reports whether pw is 8-12 characters with at least one
// lowercase letter, uppercase letter, digit and symbol
func StrongPassword(pw string) bool {
	n := len([]rune(pw))
	if n < 8 || n > 12 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range pw {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// PositiveDecimal parses s and reports whether it is a number above zero
func PositiveDecimal(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

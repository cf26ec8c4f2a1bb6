// Package form is the record form: raw field input and the client-side
// checks run before anything is sent to the backend.
package form

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrMissingField means at least one field was left blank.
	ErrMissingField = errors.New("missing field")
	// ErrInvalidAge means age is not an integer, or not positive when
	// positivity is required.
	ErrInvalidAge = errors.New("invalid age")
)

// Fields is the raw text of the three form inputs. Extra is the
// variant-specific third field: major or email.
type Fields struct {
	Name  string `validate:"required"`
	Age   string `validate:"required"`
	Extra string `validate:"required"`
}

// Trimmed returns f with surrounding whitespace removed from every field.
func (f Fields) Trimmed() Fields {
	return Fields{
		Name:  strings.TrimSpace(f.Name),
		Age:   strings.TrimSpace(f.Age),
		Extra: strings.TrimSpace(f.Extra),
	}
}

// IsZero reports whether every field is blank.
func (f Fields) IsZero() bool {
	return f == Fields{}
}

// Values is a form that passed Parse.
type Values struct {
	Name  string
	Age   int
	Extra string
}

// Rules selects the optional checks.
type Rules struct {
	// PositiveAge rejects ages <= 0.
	PositiveAge bool
}

var validate = validator.New()

// Parse checks presence of every field and that age is an integer, plus the
// optional rules, and returns the typed values.
func Parse(f Fields, rules Rules) (Values, error) {
	f = f.Trimmed()

	if err := validate.Struct(f); err != nil {
		return Values{}, ErrMissingField
	}

	age, err := strconv.Atoi(f.Age)
	if err != nil {
		return Values{}, ErrInvalidAge
	}

	if rules.PositiveAge {
		if err := validate.Var(age, "gt=0"); err != nil {
			return Values{}, ErrInvalidAge
		}
	}

	return Values{Name: f.Name, Age: age, Extra: f.Extra}, nil
}

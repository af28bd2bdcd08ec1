package dashboard

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput marks caller mistakes; handlers map it to 400.
var ErrInvalidInput = errors.New("invalid input")

var validate = validator.New()

// Selection identifies what the dashboard shows. Zero fields are resolved
// during a refresh: latest season, first race, race session.
type Selection struct {
	Season      int    `json:"season" validate:"omitempty,gte=1950,lte=2100"`
	Round       int    `json:"round" validate:"omitempty,gte=1,lte=30"`
	SessionType string `json:"sessionType" validate:"omitempty,oneof=FP1 FP2 FP3 SQ SS S Q R"`
}

// IsZero reports whether nothing was requested.
func (s Selection) IsZero() bool {
	return s == Selection{}
}

// Validate checks field ranges.
func (s Selection) Validate() error {
	return validateStruct(s)
}

func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

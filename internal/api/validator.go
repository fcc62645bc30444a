package api

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/terraship/carbonroute/internal/pkg/constants"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate maps struct-tag violations to InvalidRequest so they surface as
// 400 before any external source is called.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return fmt.Errorf("%w: %s", constants.ErrInvalidRequest, err.Error())
	}
	return nil
}

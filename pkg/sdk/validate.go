package sdk

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput checks an input struct's validate tags before it goes on
// the wire, so obviously malformed calls fail without a round trip.
func validateInput(in interface{}) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field ranges and table integrity. Every failure wraps
// ErrInvalidPolicy, ErrMissingCategory or ErrUnknownCategory.
func (c *RiskConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)",
					fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidPolicy, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	if _, err := c.Profiles(); err != nil {
		return err
	}
	if _, err := c.LabelAliases(); err != nil {
		return err
	}
	return nil
}

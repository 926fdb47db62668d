package options

import (
	"github.com/pkg/errors"
)

// FlagIsRequiredError is returned when a required flag is not set
func FlagIsRequiredError(name string) error {
	return errors.Errorf("--%s is required", name)
}

// InvalidFlagValueError is returned when a flag is set to a value outside of its range
func InvalidFlagValueError(name, value string) error {
	return errors.Errorf("invalid value %q for --%s", value, name)
}

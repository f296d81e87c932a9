package config

import (
	"fmt"
	"strings"

	gerrors "github.com/DeBrosOfficial/giab/pkg/errors"
	"github.com/DeBrosOfficial/giab/pkg/logging"
)

// Validate performs validation of the entire config.
// It aggregates all errors and returns them, allowing the caller to print all issues at once.
func (c *Config) Validate() []error {
	var errs []error

	errs = append(errs, c.validatePaths()...)
	errs = append(errs, c.validateLogging()...)
	errs = append(errs, c.validateHandshake()...)

	return errs
}

func (c *Config) validatePaths() []error {
	var errs []error

	if strings.TrimSpace(c.BaseDir) == "" {
		errs = append(errs, gerrors.NewValidationError("base_dir",
			"must not be empty; pass --dir or set base_dir in the config file", c.BaseDir))
	}

	if strings.TrimSpace(c.Tool) == "" {
		errs = append(errs, gerrors.NewValidationError("tool",
			fmt.Sprintf("must not be empty (default %q)", DefaultTool), c.Tool))
	}

	return errs
}

func (c *Config) validateLogging() []error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return []error{gerrors.NewValidationError("logging.level", err.Error(), c.Logging.Level)}
	}
	return nil
}

func (c *Config) validateHandshake() []error {
	var errs []error
	hc := c.Handshake

	if hc.PollInterval <= 0 {
		errs = append(errs, gerrors.NewValidationError("handshake.poll_interval",
			"must be positive", hc.PollInterval.String()))
	}

	if hc.Timeout < 0 {
		errs = append(errs, gerrors.NewValidationError("handshake.timeout",
			"must be zero (wait forever) or positive", hc.Timeout.String()))
	}

	if hc.Timeout > 0 && hc.PollInterval > 0 && hc.Timeout < hc.PollInterval {
		errs = append(errs, gerrors.NewValidationError("handshake.timeout",
			fmt.Sprintf("shorter than poll_interval (%s)", hc.PollInterval), hc.Timeout.String()))
	}

	return errs
}

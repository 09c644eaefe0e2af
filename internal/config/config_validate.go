// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks struct-tag constraints and then the cross-field rules
// that tags cannot express.
func (c *Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		return translateValidationError(err)
	}

	if err := c.validateOutput(); err != nil {
		return err
	}

	return c.validateReport()
}

func (c *Config) validateOutput() error {
	seen := make(map[string]bool, len(c.Output.Backends))
	for _, b := range c.Output.Backends {
		if seen[b] {
			return fmt.Errorf("PERSIST_BACKENDS lists %q more than once", b)
		}
		seen[b] = true
	}
	return nil
}

func (c *Config) validateReport() error {
	if last := c.Report.PortStart + c.Report.PortAttempts - 1; last > 65535 {
		return fmt.Errorf("dashboard port range %d-%d exceeds 65535", c.Report.PortStart, last)
	}
	return nil
}

// translateValidationError reduces validator output to one readable message
// naming the koanf path of every failing field.
func translateValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

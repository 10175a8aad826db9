package providers

import (
	"alarmbot/internal/structures"
	"errors"
	"fmt"
	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.One())
	}

	// tolerance may legitimately be zero, which the tag validators treat as "empty"
	if c.conf.Alarm.Tolerance < 0 || c.conf.Alarm.Tolerance >= 1 {
		return errors.New("invalid config: alarm.tolerance must be in [0, 1)")
	}
	return nil
}

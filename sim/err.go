package sim

import (
	"errors"

	"github.com/bern-rtos/bern-rtos/translate"
)

var f = translate.From

var (
	ErrRegionCount   = errors.New(f("region set exceeds hardware capacity"))
	ErrRegionInvalid = errors.New(f("region size or alignment invalid"))
	ErrNotStarted    = errors.New(f("simulation not started"))
)

package mem

import (
	"errors"

	"github.com/bern-rtos/bern-rtos/arch"
	"github.com/bern-rtos/bern-rtos/translate"
)

var f = translate.From

var (
	ErrRegionAccess = errors.New(f("region access combination unsupported"))
	ErrNoRegions    = errors.New(f("process has no regions"))
)

// ErrRegionSize indicates a region size the protection hardware cannot
// enforce.
type ErrRegionSize struct {
	Size uint64
	Min  uint64
}

func (err *ErrRegionSize) Error() string {
	return f("region size %#x is not a power of two of at least %#x", err.Size, err.Min)
}

// ErrRegionAlign indicates a region base that is not aligned to the region
// size.
type ErrRegionAlign struct {
	Addr uint64
	Size uint64
}

func (err *ErrRegionAlign) Error() string {
	return f("region base %#x is not aligned to size %#x", err.Addr, err.Size)
}

// ErrRegionCapacity indicates more regions than the hardware supports.
type ErrRegionCapacity struct {
	Requested int
	Supported int
}

func (err *ErrRegionCapacity) Error() string {
	return f("%d regions requested, hardware supports %d", err.Requested, err.Supported)
}

// ErrRegionOverlap indicates two exclusive regions of distinct processes
// covering a common address.
type ErrRegionOverlap struct {
	Owner  string
	Other  string
	Region arch.Region
}

func (err *ErrRegionOverlap) Error() string {
	return f("region %#x+%#x of %v overlaps exclusive region of %v",
		err.Region.Addr, err.Region.Size, err.Owner, err.Other)
}

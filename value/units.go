package value

import (
	"fmt"
	"time"
)

// DurationUnit is the unit a Duration is expressed in
type DurationUnit int

const (
	Nanoseconds DurationUnit = iota
	Microseconds
	Milliseconds
	Seconds
	Minutes
	Hours
	Days
)

var durationUnitNames = [...]string{"ns", "us", "ms", "s", "min", "h", "d"}

// seconds per unit
var durationUnitFactors = [...]float64{1e-9, 1e-6, 1e-3, 1, 60, 3600, 86400}

// String returns the unit symbol as written on the wire
func (u DurationUnit) String() string {
	if u < 0 || int(u) >= len(durationUnitNames) {
		return fmt.Sprintf("DurationUnit(%d)", int(u))
	}
	return durationUnitNames[u]
}

// Factor returns the number of seconds in one of this unit
func (u DurationUnit) Factor() float64 {
	if u < 0 || int(u) >= len(durationUnitFactors) {
		return 0
	}
	return durationUnitFactors[u]
}

// ParseDurationUnit parses a wire unit symbol
func ParseDurationUnit(s string) (DurationUnit, error) {
	for i, name := range durationUnitNames {
		if s == name {
			return DurationUnit(i), nil
		}
	}
	return 0, fmt.Errorf("unknown duration unit %q", s)
}

// GoDuration converts to a time.Duration, truncating to nanoseconds
func (d Duration) GoDuration() time.Duration {
	return time.Duration(d.Value * d.Unit.Factor() * float64(time.Second))
}

// DataSizeUnit is the unit a DataSize is expressed in
type DataSizeUnit int

const (
	B DataSizeUnit = iota
	KB
	KiB
	MB
	MiB
	GB
	GiB
	TB
	TiB
	PB
	PiB
)

var dataSizeUnitNames = [...]string{"b", "kb", "kib", "mb", "mib", "gb", "gib", "tb", "tib", "pb", "pib"}

// bytes per unit
var dataSizeUnitFactors = [...]float64{
	1,
	1e3, 1 << 10,
	1e6, 1 << 20,
	1e9, 1 << 30,
	1e12, 1 << 40,
	1e15, 1 << 50,
}

// String returns the unit symbol as written on the wire
func (u DataSizeUnit) String() string {
	if u < 0 || int(u) >= len(dataSizeUnitNames) {
		return fmt.Sprintf("DataSizeUnit(%d)", int(u))
	}
	return dataSizeUnitNames[u]
}

// Factor returns the number of bytes in one of this unit
func (u DataSizeUnit) Factor() float64 {
	if u < 0 || int(u) >= len(dataSizeUnitFactors) {
		return 0
	}
	return dataSizeUnitFactors[u]
}

// ParseDataSizeUnit parses a wire unit symbol
func ParseDataSizeUnit(s string) (DataSizeUnit, error) {
	for i, name := range dataSizeUnitNames {
		if s == name {
			return DataSizeUnit(i), nil
		}
	}
	return 0, fmt.Errorf("unknown data size unit %q", s)
}

// ToUnit converts the size to another unit, preserving the amount
func (d DataSize) ToUnit(u DataSizeUnit) DataSize {
	return DataSize{Value: d.Value * d.Unit.Factor() / u.Factor(), Unit: u}
}

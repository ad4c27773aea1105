package value

import (
	"testing"
	"time"
)

func TestDurationUnit_RoundTrip(t *testing.T) {
	units := []DurationUnit{Nanoseconds, Microseconds, Milliseconds, Seconds, Minutes, Hours, Days}
	for _, u := range units {
		t.Run(u.String(), func(t *testing.T) {
			parsed, err := ParseDurationUnit(u.String())
			if err != nil {
				t.Fatalf("ParseDurationUnit(%q): %v", u.String(), err)
			}
			if parsed != u {
				t.Errorf("parsed %v, want %v", parsed, u)
			}
		})
	}
}

func TestParseDurationUnit_Unknown(t *testing.T) {
	for _, s := range []string{"", "parsec", "NS", "sec", "minutes"} {
		if _, err := ParseDurationUnit(s); err == nil {
			t.Errorf("ParseDurationUnit(%q) should fail", s)
		}
	}
}

func TestDurationUnit_Factor(t *testing.T) {
	tests := []struct {
		unit DurationUnit
		want float64
	}{
		{Nanoseconds, 1e-9},
		{Microseconds, 1e-6},
		{Milliseconds, 1e-3},
		{Seconds, 1},
		{Minutes, 60},
		{Hours, 3600},
		{Days, 86400},
	}
	for _, tt := range tests {
		if got := tt.unit.Factor(); got != tt.want {
			t.Errorf("%v.Factor() = %v, want %v", tt.unit, got, tt.want)
		}
	}
}

func TestDuration_GoDuration(t *testing.T) {
	tests := []struct {
		d    Duration
		want time.Duration
	}{
		{Duration{2.5, Minutes}, 150 * time.Second},
		{Duration{500, Milliseconds}, 500 * time.Millisecond},
		{Duration{1, Days}, 24 * time.Hour},
		{Duration{0, Seconds}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			if got := tt.d.GoDuration(); got != tt.want {
				t.Errorf("GoDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDataSizeUnit_RoundTrip(t *testing.T) {
	units := []DataSizeUnit{B, KB, KiB, MB, MiB, GB, GiB, TB, TiB, PB, PiB}
	for _, u := range units {
		t.Run(u.String(), func(t *testing.T) {
			parsed, err := ParseDataSizeUnit(u.String())
			if err != nil {
				t.Fatalf("ParseDataSizeUnit(%q): %v", u.String(), err)
			}
			if parsed != u {
				t.Errorf("parsed %v, want %v", parsed, u)
			}
		})
	}
}

func TestParseDataSizeUnit_Unknown(t *testing.T) {
	for _, s := range []string{"", "bytes", "KB", "gib "} {
		if _, err := ParseDataSizeUnit(s); err == nil {
			t.Errorf("ParseDataSizeUnit(%q) should fail", s)
		}
	}
}

func TestDataSize_ToUnit(t *testing.T) {
	tests := []struct {
		name string
		in   DataSize
		to   DataSizeUnit
		want DataSize
	}{
		{"mib to kib", DataSize{4, MiB}, KiB, DataSize{4096, KiB}},
		{"kb to b", DataSize{1, KB}, B, DataSize{1000, B}},
		{"b to kib", DataSize{2048, B}, KiB, DataSize{2, KiB}},
		{"same unit", DataSize{7, GB}, GB, DataSize{7, GB}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.ToUnit(tt.to); got != tt.want {
				t.Errorf("ToUnit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuantity_String(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Duration{2.5, Minutes}, "2.5.min"},
		{Duration{100, Nanoseconds}, "100.ns"},
		{DataSize{4, MiB}, "4.mib"},
		{IntSeq{0, 10, 1}, "IntSeq(0, 10)"},
		{IntSeq{0, 10, 2}, "IntSeq(0, 10).step(2)"},
		{Regex{`\d+`}, `Regex("\\d+")`},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			s, ok := tt.v.(interface{ String() string })
			if !ok {
				t.Fatalf("%T has no String method", tt.v)
			}
			if got := s.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

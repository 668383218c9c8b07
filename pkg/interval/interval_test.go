package interval

import (
	"testing"
	"time"
)

var base = time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return time.Date(2026, time.March, 10, h, m, 0, 0, time.UTC)
}

func TestIsWellFormed(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"ordered", at(10, 0), at(11, 0), true},
		{"equal bounds", at(10, 0), at(10, 0), false},
		{"inverted", at(11, 0), at(10, 0), false},
		{"one nanosecond", base, base.Add(time.Nanosecond), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWellFormed(tt.start, tt.end); got != tt.want {
				t.Errorf("IsWellFormed(%v, %v) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{"identical", New(at(10, 0), at(11, 0)), New(at(10, 0), at(11, 0)), true},
		{"partial overlap", New(at(10, 0), at(12, 0)), New(at(11, 0), at(13, 0)), true},
		{"contained", New(at(10, 0), at(13, 0)), New(at(11, 0), at(12, 0)), true},
		{"touching end to start", New(at(10, 0), at(11, 0)), New(at(11, 0), at(12, 0)), false},
		{"touching start to end", New(at(11, 0), at(12, 0)), New(at(10, 0), at(11, 0)), false},
		{"disjoint", New(at(10, 0), at(11, 0)), New(at(12, 0), at(13, 0)), false},
		{"one minute inside boundary", New(at(10, 0), at(11, 0)), New(at(10, 59), at(12, 0)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// the predicate is symmetric
			if got := Overlaps(tt.b, tt.a); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

package schedule

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{
			name:  "valid ISO date",
			input: "2025-01-16",
			want:  NewDate(2025, time.January, 16),
		},
		{
			name:  "leap day",
			input: "2024-02-29",
			want:  NewDate(2024, time.February, 29),
		},
		{
			name:    "wrong layout",
			input:   "16/01/2025",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDaysSince(t *testing.T) {
	t.Parallel()

	anchor := NewDate(2025, time.January, 1)

	tests := []struct {
		name string
		d    Date
		want int
	}{
		{"same day", anchor, 0},
		{"next day", NewDate(2025, time.January, 2), 1},
		{"across month boundary", NewDate(2025, time.February, 1), 31},
		{"across leap february", NewDate(2024, time.March, 1), -306},
		{"before anchor", NewDate(2024, time.December, 31), -1},
		{"one year later", NewDate(2026, time.January, 1), 365},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.d.DaysSince(anchor); got != tt.want {
				t.Errorf("%v.DaysSince(%v) = %d, want %d", tt.d, anchor, got, tt.want)
			}
		})
	}
}

func TestAddDaysNormalizes(t *testing.T) {
	t.Parallel()

	d := NewDate(2025, time.January, 31)
	if got, want := d.AddDays(1), NewDate(2025, time.February, 1); got != want {
		t.Errorf("AddDays(1) = %v, want %v", got, want)
	}
	if got, want := d.AddDays(-31), NewDate(2024, time.December, 31); got != want {
		t.Errorf("AddDays(-31) = %v, want %v", got, want)
	}
}

func TestDateIn(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("Asia/Riyadh")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	got := NewDate(2025, time.June, 10).In(loc, 8, 30)
	want := time.Date(2025, time.June, 10, 8, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("In() = %v, want %v", got, want)
	}
}

func TestParseMonthDay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    MonthDay
		wantErr bool
	}{
		{"november fifteenth", "11-15", MonthDay{Month: time.November, Day: 15}, false},
		{"first of march", "03-01", MonthDay{Month: time.March, Day: 1}, false},
		{"missing zero pad", "3-1", MonthDay{}, true},
		{"day out of range", "02-30", MonthDay{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseMonthDay(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMonthDay(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMonthDay(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMonthDay(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMonthDayMatchesAcrossYears(t *testing.T) {
	t.Parallel()

	md := MonthDay{Month: time.November, Day: 15}
	for _, year := range []int{2024, 2025, 2030} {
		if got := NewDate(year, time.November, 15).MonthDay(); got != md {
			t.Errorf("year %d: MonthDay() = %v, want %v", year, got, md)
		}
	}
	if got := NewDate(2025, time.November, 16).MonthDay(); got == md {
		t.Error("adjacent day must not match")
	}
}

func TestDateRangeContains(t *testing.T) {
	t.Parallel()

	r := DateRange{
		Start: NewDate(2025, time.March, 1),
		End:   NewDate(2025, time.May, 31),
	}

	tests := []struct {
		name string
		d    Date
		want bool
	}{
		{"start boundary", r.Start, true},
		{"end boundary", r.End, true},
		{"middle", NewDate(2025, time.April, 15), true},
		{"day before start", NewDate(2025, time.February, 28), false},
		{"day after end", NewDate(2025, time.June, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := r.Contains(tt.d); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestDateTextRoundTrip(t *testing.T) {
	t.Parallel()

	d := NewDate(2025, time.September, 7)
	b, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if string(b) != "2025-09-07" {
		t.Errorf("MarshalText = %q, want %q", b, "2025-09-07")
	}

	var back Date
	if err := back.UnmarshalText(b); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

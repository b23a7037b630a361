package timefilter

import (
	"testing"
)

func TestMillisRoundTrip(t *testing.T) {
	cases := []TimeOfDay{
		{},
		{Hour: 9, Minute: 30},
		{Hour: 18, Minute: 30},
		{Hour: 23, Minute: 59, Second: 59, Millisecond: 999},
		{Hour: 0, Minute: 0, Second: 0, Millisecond: 1},
		{Hour: 12, Minute: 0, Second: 30, Millisecond: 500},
	}
	for _, tc := range cases {
		got := FromMillis(tc.Millis())
		if got != tc {
			t.Fatalf("FromMillis(Millis(%v)) = %v, want identity", tc, got)
		}
	}
}

func TestFromMillisEndOfDay(t *testing.T) {
	got := FromMillis(DayMillis)
	if got != EndOfDay {
		t.Fatalf("FromMillis(DayMillis) = %v, want %v", got, EndOfDay)
	}
	if got.Millis() != DayMillis {
		t.Fatalf("EndOfDay.Millis() = %d, want %d", got.Millis(), DayMillis)
	}
}

func TestFromMillisNormalizes(t *testing.T) {
	cases := []struct {
		ms   int
		want TimeOfDay
	}{
		{DayMillis + 3_600_000, TimeOfDay{Hour: 1}},
		{-3_600_000, TimeOfDay{Hour: 23}},
		{2 * DayMillis, TimeOfDay{}},
		{0, TimeOfDay{}},
	}
	for _, tc := range cases {
		if got := FromMillis(tc.ms); got != tc.want {
			t.Fatalf("FromMillis(%d) = %v, want %v", tc.ms, got, tc.want)
		}
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "09:30", want: TimeOfDay{Hour: 9, Minute: 30}},
		{in: "23:59:59", want: TimeOfDay{Hour: 23, Minute: 59, Second: 59}},
		{in: "12:34:56.789", want: TimeOfDay{Hour: 12, Minute: 34, Second: 56, Millisecond: 789}},
		{in: "24:00", want: EndOfDay},
		{in: "24:01", wantErr: true},
		{in: "25:00", wantErr: true},
		{in: "09:60", wantErr: true},
		{in: "9:30", wantErr: true},
		{in: "09:30:61", wantErr: true},
		{in: "09:30:00.1", wantErr: true},
		{in: "garbage", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseTimeOfDay(%q) = %v, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseTimeOfDay(%q) unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseTimeOfDay(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

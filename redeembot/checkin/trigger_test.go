package checkin

import (
	"testing"
	"time"
)

func TestDailyTrigger_Next(t *testing.T) {
	trig, err := NewDailyTrigger("00:10", "UTC")
	if err != nil {
		t.Fatalf("NewDailyTrigger() error = %v", err)
	}

	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{
			name: "LaterToday",
			from: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 10, 1, 0, 10, 0, 0, time.UTC),
		},
		{
			name: "AlreadyPassed",
			from: time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC),
			want: time.Date(2025, 10, 2, 0, 10, 0, 0, time.UTC),
		},
		{
			name: "ExactlyNow",
			from: time.Date(2025, 10, 1, 0, 10, 0, 0, time.UTC),
			want: time.Date(2025, 10, 2, 0, 10, 0, 0, time.UTC),
		},
		{
			name: "MonthRollover",
			from: time.Date(2025, 10, 31, 23, 0, 0, 0, time.UTC),
			want: time.Date(2025, 11, 1, 0, 10, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trig.Next(tt.from); !got.Equal(tt.want) {
				t.Errorf("Next(%v) = %v, want %v", tt.from, got, tt.want)
			}
		})
	}
}

func TestDailyTrigger_Timezone(t *testing.T) {
	trig, err := NewDailyTrigger("09:00", "Asia/Tokyo")
	if err != nil {
		t.Fatalf("NewDailyTrigger() error = %v", err)
	}

	got := trig.Next(time.Date(2025, 10, 1, 0, 30, 0, 0, time.UTC))
	want := time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Next() = %v, want %v", got, want)
	}
}

func TestNewDailyTrigger_Invalid(t *testing.T) {
	if _, err := NewDailyTrigger("25:99", "UTC"); err == nil {
		t.Error("NewDailyTrigger(25:99) error = nil")
	}
	if _, err := NewDailyTrigger("00:10", "Nowhere/Land"); err == nil {
		t.Error("NewDailyTrigger(Nowhere/Land) error = nil")
	}
}

func TestDailyTrigger_ArmDisarm(t *testing.T) {
	trig, err := NewDailyTrigger("00:10", "")
	if err != nil {
		t.Fatalf("NewDailyTrigger() error = %v", err)
	}

	fired := make(chan struct{}, 1)
	trig.Arm(func() { fired <- struct{}{} })
	if !trig.Armed() {
		t.Fatal("Armed() = false after Arm")
	}
	trig.Disarm()
	if trig.Armed() {
		t.Error("Armed() = true after Disarm")
	}
}

package market

import (
	"testing"
	"time"
)

func TestIsOpen(t *testing.T) {
	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"monday morning", time.Date(2024, 10, 7, 10, 0, 0, 0, time.UTC), true},
		{"monday open edge", time.Date(2024, 10, 7, 9, 0, 0, 0, time.UTC), true},
		{"monday last hour", time.Date(2024, 10, 7, 15, 59, 0, 0, time.UTC), true},
		{"monday after close", time.Date(2024, 10, 7, 16, 0, 0, 0, time.UTC), false},
		{"monday before open", time.Date(2024, 10, 7, 8, 59, 0, 0, time.UTC), false},
		{"saturday", time.Date(2024, 10, 5, 11, 0, 0, 0, time.UTC), false},
		{"sunday", time.Date(2024, 10, 6, 11, 0, 0, 0, time.UTC), false},
	}
	for _, c := range cases {
		if got := IsOpen(c.at); got != c.want {
			t.Fatalf("%s: IsOpen = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestStatusText(t *testing.T) {
	open := Status(time.Date(2024, 10, 7, 10, 0, 0, 0, time.UTC))
	if !open.Open || open.Text != "Market Open" {
		t.Fatalf("unexpected open status %+v", open)
	}
	closed := Status(time.Date(2024, 10, 6, 10, 0, 0, 0, time.UTC))
	if closed.Open || closed.Text != "Market Closed" {
		t.Fatalf("unexpected closed status %+v", closed)
	}
}

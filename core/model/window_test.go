package model

import (
	"reflect"
	"testing"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       []int
	}{
		{"plain", 17, 20, []int{17, 18, 19}},
		{"wrap", 22, 6, []int{22, 23, 0, 1, 2, 3, 4, 5}},
		{"full day", 0, 24, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23}},
		{"wrap to midnight", 18, 0, []int{18, 19, 20, 21, 22, 23}},
		{"empty", 5, 5, nil},
	}
	for _, tt := range tests {
		got := Window(tt.start, tt.end)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: Window(%d,%d) = %v, want %v", tt.name, tt.start, tt.end, got, tt.want)
		}
	}
}

func TestEffectiveWindowClamps(t *testing.T) {
	if got := EffectiveWindow(30, 24); !reflect.DeepEqual(got, []int{23}) {
		t.Fatalf("start clamped to 23 and end 24 should give [23], got %v", got)
	}
	got := EffectiveWindow(-3, 2)
	if !reflect.DeepEqual(got, []int{0, 1}) {
		t.Fatalf("unexpected window %v", got)
	}
	if got := EffectiveWindow(25, 23); len(got) != 0 {
		t.Fatalf("expected empty window got %v", got)
	}
}

func TestClampDuration(t *testing.T) {
	if d := ClampDuration(10, 6); d != 6 {
		t.Fatalf("expected 6 got %d", d)
	}
	if d := ClampDuration(3, 6); d != 3 {
		t.Fatalf("expected 3 got %d", d)
	}
	if d := ClampDuration(-1, 6); d != 0 {
		t.Fatalf("expected 0 got %d", d)
	}
}

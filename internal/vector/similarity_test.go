package vector

import (
	"math"
	"testing"
)

func TestSquaredL2(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 0},
		{"unit apart", []float32{0, 0}, []float32{1, 0}, 1},
		{"3-4 triangle", []float32{0, 0}, []float32{3, 4}, 25},
		{"negative components", []float32{-1, 0}, []float32{1, 0}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SquaredL2(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SquaredL2 = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestScore(t *testing.T) {
	if Score(0) != 1.0 {
		t.Errorf("Score(0) = %f, want 1.0", Score(0))
	}
	if Score(1) != 0.5 {
		t.Errorf("Score(1) = %f, want 0.5", Score(1))
	}
	// 1/(1+2) = 0.33333... rounds to 4 digits
	if Score(2) != 0.3333 {
		t.Errorf("Score(2) = %f, want 0.3333", Score(2))
	}
}

func TestScore_Monotonic(t *testing.T) {
	prev := Score(0)
	for d := 0.1; d < 100; d += 0.7 {
		s := Score(d)
		if s > prev {
			t.Fatalf("score increased with distance: Score(%f)=%f > %f", d, s, prev)
		}
		if s <= 0 || s > 1 {
			t.Fatalf("Score(%f)=%f out of (0, 1]", d, s)
		}
		prev = s
	}
}

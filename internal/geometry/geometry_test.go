package geometry

import "testing"

func TestScaleRoundsIntegral(t *testing.T) {
	tests := []struct {
		name   string
		size   Size[int]
		factor float64
		want   Size[int]
	}{
		{"identity", NewSize(360, 720), 1.0, NewSize(360, 720)},
		{"double", NewSize(360, 720), 2.0, NewSize(720, 1440)},
		{"fractional rounds", NewSize(3, 3), 1.5, NewSize(5, 5)},
		{"shrink", NewSize(721, 33), 0.5, NewSize(361, 17)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.size.Scale(tt.factor); got != tt.want {
				t.Fatalf("Scale(%v) = %v, want %v", tt.factor, got, tt.want)
			}
		})
	}
}

func TestScaleFloatKeepsPrecision(t *testing.T) {
	p := Pos(10.5, 20.25).Scale(2.0)
	if p.X != 21.0 || p.Y != 40.5 {
		t.Fatalf("unexpected scaled position: %v", p)
	}
}

func TestDistanceSquared(t *testing.T) {
	a := Pos(1.0, 2.0)
	b := Pos(4.0, 6.0)
	if d := a.DistanceSquared(b); d != 25.0 {
		t.Fatalf("DistanceSquared = %v, want 25", d)
	}
}

func TestZeroSizeSuppression(t *testing.T) {
	if !(Size[int]{}).IsZero() {
		t.Fatal("zero value should report IsZero")
	}
	if !NewSize(0, 720).IsZero() {
		t.Fatal("zero width should report IsZero")
	}
	if NewSize(360, 720).IsZero() {
		t.Fatal("configured size should not report IsZero")
	}
}

func TestConversions(t *testing.T) {
	p := ConvertPosition[int](Pos(10.7, 3.2))
	if p != Pos(10, 3) {
		t.Fatalf("ConvertPosition truncates to %v", p)
	}
	s := ConvertSize[float64](NewSize(360, 720))
	if s.Width != 360.0 || s.Height != 720.0 {
		t.Fatalf("ConvertSize = %v", s)
	}
}

package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestVec2_Len(t *testing.T) {
	tests := []struct {
		v        Vec2
		expected float64
	}{
		{Vec2{3, 4}, 5.0},
		{Vec2{1, 0}, 1.0},
		{Vec2{0, 0}, 0.0},
		{Vec2{-6, -8}, 10.0},
	}

	for _, tt := range tests {
		if got := tt.v.Len(); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Len(%v) = %v, want %v", tt.v, got, tt.expected)
		}
	}
}

func TestVec2_Arithmetic(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, -4}

	if got := a.Add(b); got != (Vec2{4, -2}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != (Vec2{-2, 6}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2.5); got != (Vec2{2.5, 5}) {
		t.Errorf("Scale = %v", got)
	}
	if got := b.Neg(); got != (Vec2{-3, 4}) {
		t.Errorf("Neg = %v", got)
	}
	if got := a.Dist(b); math.Abs(got-math.Sqrt(40)) > 1e-12 {
		t.Errorf("Dist = %v", got)
	}
}

func TestVec2_RotatePreservesMagnitude(t *testing.T) {
	vectors := []Vec2{{0, 5}, {3, 4}, {-7.5, 2}, {1e-3, -1e-3}, {0, 0}, {1200, -800}}
	angles := []float64{-360, -180, -5, -0.1, 0, 0.1, 4.999, 5, 90, 137.5, 720}

	for _, v := range vectors {
		for _, a := range angles {
			r := v.Rotate(a)
			if math.Abs(r.Len()-v.Len()) > 1e-9*math.Max(1, v.Len()) {
				t.Errorf("Rotate(%v, %v) changed magnitude: %v -> %v", v, a, v.Len(), r.Len())
			}
		}
	}
}

func TestVec2_RotateQuarterTurn(t *testing.T) {
	r := Vec2{1, 0}.Rotate(90)
	if math.Abs(r.X) > 1e-12 || math.Abs(r.Y-1) > 1e-12 {
		t.Errorf("expected (0, 1), got %v", r)
	}
}

func TestAngleBetween(t *testing.T) {
	v := Vec2{0, 5}
	for _, a := range []float64{-5, -2.5, 0, 3, 5} {
		got := AngleBetween(v, v.Rotate(a))
		if math.Abs(got-math.Abs(a)) > 1e-6 {
			t.Errorf("AngleBetween after Rotate(%v) = %v", a, got)
		}
	}
	if AngleBetween(Vec2{}, v) != 0 {
		t.Error("zero vector should yield 0")
	}
}

func TestJitterAngle(t *testing.T) {
	tests := []struct {
		u, limit, expected float64
	}{
		{0, 5, -5},
		{0.5, 5, 0},
		{0.999, 5, 4.99},
		{0.25, 10, -5},
	}

	for _, tt := range tests {
		if got := JitterAngle(tt.u, tt.limit); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("JitterAngle(%v, %v) = %v, want %v", tt.u, tt.limit, got, tt.expected)
		}
	}
}

func TestParseCollisionMode(t *testing.T) {
	tests := []struct {
		in      string
		want    CollisionMode
		wantErr bool
	}{
		{"", CollisionSnapshot, false},
		{"snapshot", CollisionSnapshot, false},
		{"sequential", CollisionSequential, false},
		{"impulse", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCollisionMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if err != nil && !errors.Is(err, ErrInvalidParams) {
				t.Errorf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
}

func TestParams_Validate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}

	tests := []struct {
		name  string
		apply func(*Params)
		field string
	}{
		{"zero move speed", func(p *Params) { p.MoveSpeed = 0 }, "move_speed"},
		{"negative jitter", func(p *Params) { p.JitterDegrees = -1 }, "jitter_degrees"},
		{"nan gravity", func(p *Params) { p.Gravity.Y = math.NaN() }, "gravity"},
		{"bad mode", func(p *Params) { p.Collision = CollisionMode(7) }, "collision"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.apply(&p)
			err := p.Validate()
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("field = %s, want %s", cfgErr.Field, tt.field)
			}
			if !errors.Is(err, ErrInvalidParams) {
				t.Error("expected wrapped ErrInvalidParams")
			}
		})
	}
}

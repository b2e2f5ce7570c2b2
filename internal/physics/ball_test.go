package physics

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/integrators"
)

// fixedRand always returns the same sample; 0.5 yields a zero jitter angle.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

var (
	window = dynamo.Bounds{W: 800, H: 600}
	semi   = integrators.NewSemiImplicitEuler()
)

func newBall(t *testing.T, radius float64, pos dynamo.Vec2, rng dynamo.RandSource) *Ball {
	t.Helper()
	b, err := NewBall(radius, pos, rng)
	if err != nil {
		t.Fatalf("NewBall: %v", err)
	}
	return b
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestNewBall(t *testing.T) {
	b := newBall(t, 10, dynamo.Vec2{X: 400, Y: 300}, fixedRand(0.5))

	if b.Radius() != 10 {
		t.Errorf("radius = %v", b.Radius())
	}
	if b.Velocity() != (dynamo.Vec2{}) {
		t.Errorf("expected zero velocity, got %v", b.Velocity())
	}
	if b.Color() != DefaultColor {
		t.Errorf("expected default color, got %v", b.Color())
	}
	if b.Center() != (dynamo.Vec2{X: 410, Y: 310}) {
		t.Errorf("center = %v", b.Center())
	}
}

func TestNewBall_InvalidRadius(t *testing.T) {
	for _, r := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewBall(r, dynamo.Vec2{}, fixedRand(0.5))
		if !errors.Is(err, dynamo.ErrInvalidRadius) {
			t.Errorf("radius %v: expected ErrInvalidRadius, got %v", r, err)
		}
	}
}

func TestIntegrate_ReferenceScenario(t *testing.T) {
	b := newBall(t, 10, dynamo.Vec2{X: 400, Y: 300}, fixedRand(0.5))
	b.SetVelocity(dynamo.Vec2{X: 0, Y: 5})

	b.Integrate(0.01, dynamo.DefaultParams(), semi)
	hit := b.ResolveWallCollision(window, dynamo.DefaultParams())

	if hit != WallNone {
		t.Errorf("unexpected wall hit %v", hit)
	}
	if v := b.Velocity(); !approx(v.X, 0) || !approx(v.Y, 5.098) {
		t.Errorf("velocity = %v, want (0, 5.098)", v)
	}
	if p := b.Position(); !approx(p.X, 400) || !approx(p.Y, 302.549) {
		t.Errorf("position = %v, want (400, 302.549)", p)
	}
}

func TestIntegrate_Formula(t *testing.T) {
	p := dynamo.DefaultParams()
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		pos := dynamo.Vec2{X: rng.Float64() * 800, Y: rng.Float64() * 600}
		vel := dynamo.Vec2{X: rng.NormFloat64() * 10, Y: rng.NormFloat64() * 10}
		dt := rng.Float64() * 0.1

		b := newBall(t, 10, pos, fixedRand(0.5))
		b.SetVelocity(vel)
		b.Integrate(dt, p, semi)

		wantVel := vel.Add(dynamo.Vec2{X: 0, Y: 9.8}.Scale(dt))
		wantPos := pos.Add(wantVel.Scale(dt * 50))
		if !approx(b.Velocity().X, wantVel.X) || !approx(b.Velocity().Y, wantVel.Y) {
			t.Errorf("velocity = %v, want %v", b.Velocity(), wantVel)
		}
		if !approx(b.Position().X, wantPos.X) || !approx(b.Position().Y, wantPos.Y) {
			t.Errorf("position = %v, want %v", b.Position(), wantPos)
		}
	}
}

func TestWallCollision_LeftEdge(t *testing.T) {
	b := newBall(t, 10, dynamo.Vec2{X: -3, Y: 300}, fixedRand(0.5))
	b.SetVelocity(dynamo.Vec2{X: -4, Y: 1})

	hit := b.ResolveWallCollision(window, dynamo.DefaultParams())

	if !hit.Has(WallLeft) || hit.Count() != 1 {
		t.Errorf("hit = %v, want left only", hit)
	}
	if b.Position().X != 0 || b.Position().Y != 300 {
		t.Errorf("position = %v, want (0, 300)", b.Position())
	}
	if v := b.Velocity(); !approx(v.X, 4) || !approx(v.Y, 1) {
		t.Errorf("velocity = %v, want (4, 1) with zero jitter", v)
	}
}

func TestWallCollision_JitterBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := dynamo.DefaultParams()

	for i := 0; i < 500; i++ {
		b := newBall(t, 10, dynamo.Vec2{X: -3, Y: 300}, rng)
		b.SetVelocity(dynamo.Vec2{X: -4, Y: 2})
		b.ResolveWallCollision(window, p)

		reflected := dynamo.Vec2{X: 4, Y: 2}
		v := b.Velocity()
		if b.Position().X != 0 {
			t.Fatalf("x = %v, want 0", b.Position().X)
		}
		if v.X <= 0 {
			t.Fatalf("vx sign not flipped: %v", v)
		}
		if angle := dynamo.AngleBetween(reflected, v); angle > 5+1e-9 {
			t.Fatalf("rotation %v exceeds 5 degrees", angle)
		}
		if !approx(v.Len(), reflected.Len()) {
			t.Fatalf("magnitude changed: %v -> %v", reflected.Len(), v.Len())
		}
	}
}

func TestWallCollision_Edges(t *testing.T) {
	tests := []struct {
		name    string
		pos     dynamo.Vec2
		vel     dynamo.Vec2
		wantPos dynamo.Vec2
		wantVel dynamo.Vec2
		wantHit Wall
	}{
		{"right", dynamo.Vec2{X: 785, Y: 300}, dynamo.Vec2{X: 3, Y: 0}, dynamo.Vec2{X: 780, Y: 300}, dynamo.Vec2{X: -3, Y: 0}, WallRight},
		{"top", dynamo.Vec2{X: 100, Y: -0.5}, dynamo.Vec2{X: 0, Y: -2}, dynamo.Vec2{X: 100, Y: 0}, dynamo.Vec2{X: 0, Y: 2}, WallTop},
		{"bottom", dynamo.Vec2{X: 100, Y: 590}, dynamo.Vec2{X: 1, Y: 6}, dynamo.Vec2{X: 100, Y: 580}, dynamo.Vec2{X: 1, Y: -6}, WallBottom},
		{"corner", dynamo.Vec2{X: -1, Y: -1}, dynamo.Vec2{X: -3, Y: -4}, dynamo.Vec2{X: 0, Y: 0}, dynamo.Vec2{X: 3, Y: 4}, WallLeft | WallTop},
		{"inside", dynamo.Vec2{X: 100, Y: 100}, dynamo.Vec2{X: -3, Y: -4}, dynamo.Vec2{X: 100, Y: 100}, dynamo.Vec2{X: -3, Y: -4}, WallNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBall(t, 10, tt.pos, fixedRand(0.5))
			b.SetVelocity(tt.vel)

			hit := b.ResolveWallCollision(window, dynamo.DefaultParams())

			if hit != tt.wantHit {
				t.Errorf("hit = %v, want %v", hit, tt.wantHit)
			}
			if b.Position() != tt.wantPos {
				t.Errorf("position = %v, want %v", b.Position(), tt.wantPos)
			}
			if v := b.Velocity(); !approx(v.X, tt.wantVel.X) || !approx(v.Y, tt.wantVel.Y) {
				t.Errorf("velocity = %v, want %v", v, tt.wantVel)
			}
		})
	}
}

func TestWallCollision_CornerRotatesTwice(t *testing.T) {
	// u=1 would be +5 degrees; 0.75 gives +2.5 per rotation.
	b := newBall(t, 10, dynamo.Vec2{X: -1, Y: -1}, fixedRand(0.75))
	b.SetVelocity(dynamo.Vec2{X: -3, Y: -4})

	b.ResolveWallCollision(window, dynamo.DefaultParams())

	want := dynamo.Vec2{X: 3, Y: -4}.Rotate(2.5)
	want.Y = -want.Y
	want = want.Rotate(2.5)
	if v := b.Velocity(); !approx(v.X, want.X) || !approx(v.Y, want.Y) {
		t.Errorf("velocity = %v, want %v", v, want)
	}
}

func TestWallCollision_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := dynamo.DefaultParams()

	starts := []dynamo.Vec2{{X: 400, Y: 300}, {X: -3, Y: 10}, {X: 795, Y: 595}, {X: 0, Y: 0}, {X: 780, Y: 580}}
	for _, start := range starts {
		b := newBall(t, 10, start, rng)
		b.SetVelocity(dynamo.Vec2{X: 7, Y: -2})
		b.ResolveWallCollision(window, p)

		pos, vel := b.Position(), b.Velocity()
		if hit := b.ResolveWallCollision(window, p); hit != WallNone {
			t.Errorf("start %v: second pass hit %v", start, hit)
		}
		if b.Position() != pos || b.Velocity() != vel {
			t.Errorf("start %v: second pass changed state", start)
		}
	}
}

func TestDistance_UsesTopLeftCorner(t *testing.T) {
	small := newBall(t, 5, dynamo.Vec2{X: 0, Y: 0}, fixedRand(0.5))
	large := newBall(t, 20, dynamo.Vec2{X: 0, Y: 24}, fixedRand(0.5))

	if d := Distance(small, large); d != 24 {
		t.Errorf("distance = %v, want 24", d)
	}
	if !Overlaps(small, large) {
		t.Error("expected overlap by position fields")
	}
	if small.Center().Dist(large.Center()) < 25 {
		t.Error("centres should be apart; test setup is wrong")
	}
}

func TestOverlaps_Threshold(t *testing.T) {
	const eps = 1e-6
	tests := []struct {
		name string
		dist float64
		want bool
	}{
		{"just inside", 20 - eps, true},
		{"exactly touching", 20, false},
		{"just outside", 20 + eps, false},
		{"coincident", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newBall(t, 8, dynamo.Vec2{X: 100, Y: 100}, fixedRand(0.5))
			b := newBall(t, 12, dynamo.Vec2{X: 100 + tt.dist, Y: 100}, fixedRand(0.5))
			if got := Overlaps(a, b); got != tt.want {
				t.Errorf("Overlaps at %v = %v, want %v", tt.dist, got, tt.want)
			}
		})
	}
}

func TestReflect(t *testing.T) {
	b := newBall(t, 10, dynamo.Vec2{}, fixedRand(0.5))
	b.Reflect(dynamo.Vec2{X: 2, Y: -3}, dynamo.DefaultParams())

	if v := b.Velocity(); !approx(v.X, -2) || !approx(v.Y, 3) {
		t.Errorf("velocity = %v, want (-2, 3)", v)
	}
}

package scenario

import (
	"math"
	"testing"
)

func TestTwoBodyCircularSetup(t *testing.T) {
	sc := TwoBody(1.0, 1.0, 3.0, 6.0)

	if len(sc.Bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(sc.Bodies))
	}

	sep := sc.Bodies[1].Pos.Sub(sc.Bodies[0].Pos).Norm()
	if math.Abs(sep-6.0) > 1e-12 {
		t.Errorf("expected separation 6, got %f", sep)
	}

	// Heavier body sits closer to the barycenter.
	if math.Abs(sc.Bodies[1].Pos.X) > math.Abs(sc.Bodies[0].Pos.X) {
		t.Error("heavier body should be closer to the barycenter")
	}

	// v = omega * |x| for each body.
	omega := math.Sqrt(4.0 / 216.0)
	v0 := sc.Bodies[0].Vel.Norm()
	if math.Abs(v0-omega*4.5) > 1e-12 {
		t.Errorf("expected |v0| %f, got %f", omega*4.5, v0)
	}
}

func TestBuildNormalizesFrame(t *testing.T) {
	for _, name := range List() {
		sc, err := Get(name)
		if err != nil {
			t.Fatalf("get %s: %v", name, err)
		}

		sys, err := sc.Build()
		if err != nil {
			t.Fatalf("build %s: %v", name, err)
		}

		if p := sys.Momentum().Norm(); p > 1e-12 {
			t.Errorf("%s: expected zero momentum after build, got %g", name, p)
		}
	}
}

func TestBuildRejectsBadBodies(t *testing.T) {
	sc := TwoBody(1.0, 1.0, 3.0, 6.0)
	sc.Bodies[0].Mass = -1.0

	if _, err := sc.Build(); err == nil {
		t.Error("expected error for negative mass")
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("nonexistent"); err == nil {
		t.Error("expected error for unknown scenario")
	}
}

func TestFourBody(t *testing.T) {
	sc := FourBody()
	if len(sc.Bodies) != 4 {
		t.Fatalf("expected 4 bodies, got %d", len(sc.Bodies))
	}

	total := 0.0
	for _, b := range sc.Bodies {
		total += b.Mass
	}
	if math.Abs(total-6.6) > 1e-12 {
		t.Errorf("expected total mass 6.6, got %f", total)
	}
}

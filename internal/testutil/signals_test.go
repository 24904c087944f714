package testutil

import "testing"

func TestConstant(t *testing.T) {
	c := Constant[int16](512, 4)
	if len(c) != 4 {
		t.Fatalf("len = %d, want 4", len(c))
	}
	for i, v := range c {
		if v != 512 {
			t.Fatalf("Constant[%d] = %v, want 512", i, v)
		}
	}
}

func TestStep(t *testing.T) {
	s := Step[int32](-7, 2, 5)
	want := []int32{0, 0, -7, -7, -7}
	RequireSliceEqual(t, s, want)
}

func TestImpulse(t *testing.T) {
	imp := Impulse[int32](1000, 8, 3)
	if len(imp) != 8 {
		t.Fatalf("len = %d, want 8", len(imp))
	}
	for i, v := range imp {
		if i == 3 {
			if v != 1000 {
				t.Fatalf("imp[3] = %v, want 1000", v)
			}
		} else if v != 0 {
			t.Fatalf("imp[%d] = %v, want 0", i, v)
		}
	}
}

func TestImpulseOutOfBounds(t *testing.T) {
	imp := Impulse[int64](1, 4, 10)
	for i, v := range imp {
		if v != 0 {
			t.Fatalf("imp[%d] = %v, want all zeros for out-of-bounds pos", i, v)
		}
	}
}

func TestQuantizedSine(t *testing.T) {
	s := QuantizedSine[int32](50, 1000, 100, 512, 40)
	if s[0] != 512 {
		t.Fatalf("s[0] = %v, want 512", s[0])
	}
	// Quarter period of a 50 Hz sine at 1 kHz is 5 samples.
	if s[5] != 612 {
		t.Fatalf("s[5] = %v, want 612", s[5])
	}
	for i, v := range s {
		if v < 412 || v > 612 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise[int16](42, 8, 256)
	b := DeterministicNoise[int16](42, 8, 256)
	RequireSliceEqual(t, a, b)

	for i, v := range a {
		if v < -8 || v > 8 {
			t.Fatalf("noise[%d] = %v outside [-8, 8]", i, v)
		}
	}
}

func TestDeterministicNoiseDifferentSeeds(t *testing.T) {
	a := DeterministicNoise[int32](1, 100, 16)
	b := DeterministicNoise[int32](2, 100, 16)
	if d, _ := MaxAbsDiff(a, b); d == 0 {
		t.Fatal("different seeds produced identical noise")
	}
}

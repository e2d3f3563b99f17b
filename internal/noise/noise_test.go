package noise

import (
	"errors"
	"math"
	"testing"

	"github.com/Faultbox/slenderish/pkg/rtin"
)

var _ rtin.PlaneSampler = (*Sampler)(nil)

func simplex(amplitude float64) Layer {
	return Layer{Kind: KindSimplex, Amplitude: amplitude, Frequency: 0.05, Octaves: 4, Persistence: 0.5, Lacunarity: 2}
}

func perlinLayer(amplitude float64) Layer {
	return Layer{Kind: KindPerlin, Amplitude: amplitude, Frequency: 0.03, Octaves: 3, Persistence: 0.5, Lacunarity: 2}
}

func TestSamplerIsDeterministic(t *testing.T) {
	layers := []Layer{simplex(1), perlinLayer(0.5)}

	a, err := New(7, layers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := New(7, layers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for x := 0.0; x < 32; x += 3.5 {
		for y := 0.0; y < 32; y += 2.25 {
			if a.Eval(x, y) != b.Eval(x, y) {
				t.Fatalf("expected equal heights at (%v, %v)", x, y)
			}
		}
	}
}

func TestSeedChangesTerrain(t *testing.T) {
	a, _ := New(1, []Layer{simplex(1)})
	b, _ := New(2, []Layer{simplex(1)})

	same := true
	for x := 0.0; x < 64 && same; x += 1.7 {
		if a.Eval(x, x*0.6) != b.Eval(x, x*0.6) {
			same = false
		}
	}
	if same {
		t.Error("expected different seeds to produce different terrain")
	}
}

func TestAmplitudeScales(t *testing.T) {
	one, _ := New(3, []Layer{simplex(1)})
	three, _ := New(3, []Layer{simplex(3)})

	for x := 0.5; x < 40; x += 4.1 {
		a, b := one.Eval(x, 2*x), three.Eval(x, 2*x)
		if math.Abs(a*3-b) > 1e-9 {
			t.Errorf("at %v: expected %v, got %v", x, a*3, b)
		}
	}
}

func TestSimplexStaysInRange(t *testing.T) {
	s, _ := New(11, []Layer{simplex(2)})
	for x := 0.0; x < 100; x += 1.3 {
		for y := 0.0; y < 100; y += 2.9 {
			if h := s.Eval(x, y); math.Abs(h) > 2.1 {
				t.Fatalf("height %v at (%v, %v) outside [-2.1, 2.1]", h, x, y)
			}
		}
	}
}

func TestNoLayersIsFlat(t *testing.T) {
	s, err := New(1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h := s.Get(3, 4); h != 0 {
		t.Errorf("expected 0, got %v", h)
	}
}

func TestGetMatchesEval(t *testing.T) {
	s, _ := New(5, []Layer{simplex(1), perlinLayer(1)})
	if got, expected := s.Get(12, 9), float32(s.Eval(12, 9)); got != expected {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestLayerValidation(t *testing.T) {
	tests := []struct {
		name    string
		layer   Layer
		wantErr error
	}{
		{"unknown kind", Layer{Kind: "worley", Frequency: 1, Octaves: 1, Persistence: 0.5, Lacunarity: 2}, ErrUnknownKind},
		{"no octaves", Layer{Kind: KindSimplex, Frequency: 1, Persistence: 0.5, Lacunarity: 2}, nil},
		{"zero frequency", Layer{Kind: KindPerlin, Octaves: 1, Persistence: 0.5, Lacunarity: 2}, nil},
		{"zero persistence", Layer{Kind: KindPerlin, Frequency: 1, Octaves: 1, Lacunarity: 2}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(1, []Layer{tt.layer})
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

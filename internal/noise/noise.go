// Package noise provides layered fractal height samplers for terrain
// generation.
package noise

import (
	"errors"
	"fmt"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Kind selects the noise function of a layer.
type Kind string

// Supported layer kinds.
const (
	KindPerlin  Kind = "perlin"
	KindSimplex Kind = "simplex"
)

// ErrUnknownKind is returned for layers with an unsupported kind.
var ErrUnknownKind = errors.New("noise: unknown layer kind")

// Layer describes one fractal noise layer.
type Layer struct {
	Kind        Kind
	Amplitude   float64
	Frequency   float64
	Octaves     int
	Persistence float64 // amplitude factor between octaves
	Lacunarity  float64 // frequency factor between octaves
}

// Validate checks the layer parameters.
func (l Layer) Validate() error {
	switch l.Kind {
	case KindPerlin, KindSimplex:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, l.Kind)
	}
	if l.Octaves < 1 {
		return fmt.Errorf("noise: %s layer needs at least one octave, got %d", l.Kind, l.Octaves)
	}
	if l.Frequency <= 0 {
		return fmt.Errorf("noise: %s layer frequency must be positive, got %v", l.Kind, l.Frequency)
	}
	if l.Persistence <= 0 || l.Lacunarity <= 0 {
		return fmt.Errorf("noise: %s layer persistence and lacunarity must be positive", l.Kind)
	}
	return nil
}

type source interface {
	eval(x, y float64) float64
}

// perlinSource delegates octave summation to go-perlin, which divides the
// amplitude by alpha and multiplies the frequency by beta at each octave.
type perlinSource struct {
	p *perlin.Perlin
}

func (s perlinSource) eval(x, y float64) float64 {
	return s.p.Noise2D(x, y)
}

// simplexSource sums octaves of OpenSimplex noise and normalises the result
// to the range of a single octave.
type simplexSource struct {
	n           opensimplex.Noise
	octaves     int
	persistence float64
	lacunarity  float64
}

func (s simplexSource) eval(x, y float64) float64 {
	total, maxVal := 0.0, 0.0
	amplitude, frequency := 1.0, 1.0

	for i := 0; i < s.octaves; i++ {
		total += s.n.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= s.persistence
		frequency *= s.lacunarity
	}
	return total / maxVal
}

type layer struct {
	src       source
	amplitude float64
	frequency float64
}

// Sampler sums its layers. It satisfies rtin.PlaneSampler.
type Sampler struct {
	layers []layer
}

// New builds a sampler. Layer i is seeded with seed+i so identical layers
// still differ.
func New(seed int64, layers []Layer) (*Sampler, error) {
	s := &Sampler{layers: make([]layer, 0, len(layers))}

	for i, l := range layers {
		if err := l.Validate(); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}

		layerSeed := seed + int64(i)
		var src source
		switch l.Kind {
		case KindPerlin:
			src = perlinSource{p: perlin.NewPerlin(1/l.Persistence, l.Lacunarity, int32(l.Octaves), layerSeed)}
		case KindSimplex:
			src = simplexSource{
				n:           opensimplex.New(layerSeed),
				octaves:     l.Octaves,
				persistence: l.Persistence,
				lacunarity:  l.Lacunarity,
			}
		}

		s.layers = append(s.layers, layer{src: src, amplitude: l.Amplitude, frequency: l.Frequency})
	}

	return s, nil
}

// Eval returns the height at (x, y).
func (s *Sampler) Eval(x, y float64) float64 {
	var h float64
	for _, l := range s.layers {
		h += l.amplitude * l.src.eval(x*l.frequency, y*l.frequency)
	}
	return h
}

// Get returns the height at a grid position.
func (s *Sampler) Get(x, y float32) float32 {
	return float32(s.Eval(float64(x), float64(y)))
}

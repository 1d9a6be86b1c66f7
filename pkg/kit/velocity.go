package kit

import (
	"fmt"
	"math"

	"github.com/drumgizmo-tools/dgkit/pkg/config"
)

const (
	// VolumeMax is the volume of the original sample.
	VolumeMax = 1.0
	// VolumeMin is the volume of the dimmest variation.
	VolumeMin = 0.25
)

// linearVolume spreads volumes evenly from VolumeMax to VolumeMin.
func linearVolume(i, levels int) float64 {
	return VolumeMax - (float64(i)/float64(levels-1))*(VolumeMax-VolumeMin)
}

// logarithmicVolume maps the same endpoints through log10(1 + 9x), x going from 1 to 0.
func logarithmicVolume(i, levels int) float64 {
	x := 1 - float64(i)/float64(levels-1)
	return VolumeMin + math.Log10(1+9*x)*(VolumeMax-VolumeMin)
}

// Volumes returns the relative volume of every variation index for the given method.
// Index 0 is always VolumeMax and, with two or more levels, the last index is VolumeMin.
func Volumes(method config.VariationsMethod, levels int) ([]float64, error) {
	if levels < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLevels, levels)
	}

	var curve func(i, levels int) float64

	switch method {
	case config.MethodLinear:
		curve = linearVolume
	case config.MethodLogarithmic:
		curve = logarithmicVolume
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	volumes := make([]float64, levels)
	volumes[0] = VolumeMax

	for i := 1; i < levels; i++ {
		volumes[i] = curve(i, levels)
	}

	if levels > 1 {
		volumes[levels-1] = VolumeMin
	}

	return volumes, nil
}

// Variations builds the variation list for the given method and level count.
func Variations(method config.VariationsMethod, levels int) ([]Variation, error) {
	volumes, err := Volumes(method, levels)
	if err != nil {
		return nil, err
	}

	variations := make([]Variation, len(volumes))
	for i, volume := range volumes {
		variations[i] = Variation{
			Index:  i,
			Volume: volume,
			Power:  volume,
		}
	}

	return variations, nil
}

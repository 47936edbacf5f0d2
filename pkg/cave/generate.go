package cave

import (
	"errors"
	"fmt"
)

// ErrGenerationExhausted is returned by Generate when every attempt was
// rejected. It wraps ErrRejected.
var ErrGenerationExhausted = fmt.Errorf("%w: generation attempts exhausted", ErrRejected)

// DefaultMaxGenerations caps the regenerate-until-valid loop.
const DefaultMaxGenerations = 100

// Params configures one synthesize, smooth and validate cycle and the outer
// retry loop around it.
type Params struct {
	Width             int
	Height            int
	FillProbability   float64
	SmoothIterations  int
	MinRegionFraction float64
	MaxRepairAttempts int
	MaxGenerations    int
}

// DefaultParams returns a 64x64 cave with the tuned defaults.
func DefaultParams() Params {
	return Params{
		Width:             64,
		Height:            64,
		FillProbability:   0.52,
		SmoothIterations:  DefaultSmoothIterations,
		MinRegionFraction: DefaultMinRegionFraction,
		MaxRepairAttempts: DefaultMaxRepairAttempts,
		MaxGenerations:    DefaultMaxGenerations,
	}
}

// Validate checks every parameter and reports the first violation.
func (p Params) Validate() error {
	switch {
	case p.Width < 1 || p.Height < 1:
		return fmt.Errorf("%w: grid size %dx%d", ErrInvalidConfig, p.Width, p.Height)
	case !(p.FillProbability >= 0 && p.FillProbability <= 1):
		return fmt.Errorf("%w: fill probability %v outside [0,1]", ErrInvalidConfig, p.FillProbability)
	case p.SmoothIterations < 0:
		return fmt.Errorf("%w: smooth iterations %d", ErrInvalidConfig, p.SmoothIterations)
	case p.MaxGenerations < 1:
		return fmt.Errorf("%w: max generations %d", ErrInvalidConfig, p.MaxGenerations)
	}
	return p.validateOptions().Validate()
}

func (p Params) validateOptions() ValidateOptions {
	return ValidateOptions{
		MinRegionFraction: p.MinRegionFraction,
		MaxAttempts:       p.MaxRepairAttempts,
	}
}

// Result is an accepted cave grid.
type Result struct {
	Grid *Grid
	// Region is the dominant open region the grid was pruned to.
	Region Region
	// Attempts is the number of full generation cycles it took, starting at 1.
	Attempts int
}

// Attempt runs a single synthesize, smooth and validate cycle. A rejected grid
// is reported with an error wrapping ErrRejected.
func Attempt(p Params, rng RandomSource) (*Grid, Region, error) {
	if err := p.Validate(); err != nil {
		return nil, Region{}, err
	}

	raw, err := Synthesize(p.Width, p.Height, p.FillProbability, rng)
	if err != nil {
		return nil, Region{}, err
	}
	smoothed := Smooth(raw, p.SmoothIterations)
	return ValidateAndRepair(smoothed, rng, p.validateOptions())
}

// Generate calls Attempt until a grid is accepted or MaxGenerations cycles
// have been rejected. onReject, when non-nil, is called after every rejected
// cycle with its 1-based number and the rejection reason.
func Generate(p Params, rng RandomSource, onReject func(attempt int, err error)) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxGenerations; attempt++ {
		grid, region, err := Attempt(p, rng)
		if err == nil {
			return &Result{Grid: grid, Region: region, Attempts: attempt}, nil
		}
		if !errors.Is(err, ErrRejected) {
			return nil, err
		}
		lastErr = err
		if onReject != nil {
			onReject(attempt, err)
		}
	}

	return nil, fmt.Errorf("%w after %d attempts: %v", ErrGenerationExhausted, p.MaxGenerations, lastErr)
}

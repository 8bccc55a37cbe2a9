// Package pricing derives the mass and price of a configured piece from its
// geometry and materials. Pure computation, no I/O.
//
// Canonical formulas:
//
//	necklace: mass = linkCount * linkVolume * density
//	ring:     mass = density * volume
//	price    = mass * costPerGram + gemPrice, rounded to cents
package pricing

import (
	"fmt"
	"math"

	"jewelry-store/internal/entity"
)

// NecklaceQuote prices a chain of linkCount links. gemPrice is zero for a
// piece without a gem.
func NecklaceQuote(linkCount int, linkVolume, density, costPerGram, gemPrice float64) (*entity.Quote, error) {
	if linkCount < 0 {
		return nil, fmt.Errorf("%w: link count must not be negative", entity.ErrValidation)
	}
	if err := checkInputs(linkVolume, density, costPerGram, gemPrice); err != nil {
		return nil, err
	}

	mass := float64(linkCount) * linkVolume * density
	return &entity.Quote{
		Mass:  mass,
		Price: roundCents(mass*costPerGram + gemPrice),
	}, nil
}

// RingQuote prices a ring from its metal volume.
func RingQuote(volume, density, costPerGram, gemPrice float64) (*entity.Quote, error) {
	if err := checkInputs(volume, density, costPerGram, gemPrice); err != nil {
		return nil, err
	}

	mass := density * volume
	return &entity.Quote{
		Mass:  mass,
		Price: roundCents(mass*costPerGram + gemPrice),
	}, nil
}

func checkInputs(vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: inputs must be finite", entity.ErrValidation)
		}
		if v < 0 {
			return fmt.Errorf("%w: inputs must not be negative", entity.ErrValidation)
		}
	}
	return nil
}

func roundCents(p float64) float64 {
	return math.Round(p*100) / 100
}

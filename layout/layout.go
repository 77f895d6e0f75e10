// Package layout places ranked holders on a fixed-size canvas.
package layout

import (
	"math"

	"holdermap/models"
)

const (
	minDiameter     = 40.0
	maxDiameter     = 180.0
	defaultDiameter = 100.0

	// angleStep approximates the golden angle so consecutively ranked
	// bubbles do not land on top of each other for small sets.
	angleStep     = 2.4
	radiusDivisor = 2.5
)

// Compute maps each holder to a canvas position and diameter, index-aligned
// with the input. Placement is a deterministic spiral; diameter interpolates
// between minDiameter and maxDiameter against the min/max balance of the
// displayed set. No collision resolution is attempted: overlap is an
// accepted trade-off for determinism.
func Compute(holders []models.HolderRecord, width, height, padding float64) []models.BubblePosition {
	total := len(holders)
	if total == 0 {
		return nil
	}

	minBal, maxBal := holders[0].BalanceMajorUnits, holders[0].BalanceMajorUnits
	for _, h := range holders[1:] {
		if h.BalanceMajorUnits < minBal {
			minBal = h.BalanceMajorUnits
		}
		if h.BalanceMajorUnits > maxBal {
			maxBal = h.BalanceMajorUnits
		}
	}

	positions := make([]models.BubblePosition, total)

	for i, h := range holders {
		diameter := defaultDiameter
		if maxBal > minBal {
			ratio := (h.BalanceMajorUnits - minBal) / (maxBal - minBal)
			diameter = minDiameter + ratio*(maxDiameter-minDiameter)
		}

		angle := float64(i) * angleStep
		radius := float64(i) / float64(total) * math.Min(width, height) / radiusDivisor

		positions[i] = models.BubblePosition{
			Left:     clamp(width/2+radius*math.Cos(angle), padding, width-padding),
			Top:      clamp(height/2+radius*math.Sin(angle), padding, height-padding),
			Diameter: diameter,
		}
	}

	return positions
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package game

import (
	"math"
	"math/rand"
)

// SamplePosition draws a point in the spawn annulus: uniform angle,
// radius interpolated between the inner and outer edge, small jitter on
// both planar axes, fixed height. Never fails.
func SamplePosition() Position {
	angle := rand.Float64() * 2 * math.Pi
	radius := SpawnRadiusMin + rand.Float64()*(SpawnRadiusMax-SpawnRadiusMin)
	return Position{
		X: math.Cos(angle)*radius + (rand.Float64()*2-1)*SpawnJitter,
		Y: SpawnHeight,
		Z: math.Sin(angle)*radius + (rand.Float64()*2-1)*SpawnJitter,
	}
}

// SampleFarFrom draws positions until one is at least minDist (planar
// distance) from everything in existing, giving up after SampleAttempts
// and returning the best candidate seen. Separation is a soft target:
// callers must tolerate closer results. Entries with non-finite planar
// coordinates are skipped.
func SampleFarFrom(existing []Position, minDist float64) Position {
	best := SamplePosition()
	bestDist := nearestPlanar(best, existing)
	if bestDist >= minDist {
		return best
	}
	for i := 1; i < SampleAttempts; i++ {
		cand := SamplePosition()
		d := nearestPlanar(cand, existing)
		if d >= minDist {
			return cand
		}
		if d > bestDist {
			best, bestDist = cand, d
		}
	}
	return best
}

func nearestPlanar(p Position, existing []Position) float64 {
	nearest := math.Inf(1)
	for _, e := range existing {
		if !planarValid(e) {
			continue
		}
		d := math.Hypot(p.X-e.X, p.Z-e.Z)
		if d < nearest {
			nearest = d
		}
	}
	return nearest
}

func planarValid(p Position) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Z) && !math.IsInf(p.Z, 0)
}

package main

// pressureZ returns the Z height at distance along a stroke of length
// total. The pen ramps linearly from zUp to zDown over the first press
// units, holds zDown, and ramps back to zUp over the last lift units.
// When the stroke is shorter than press+lift both ramps are shrunk by the
// same factor so that they meet without overlapping.
func pressureZ(distance, total, zUp, zDown, press, lift float64) float64 {
	if ramps := press + lift; total < ramps {
		scale := 1.0
		if ramps > 0 {
			scale = total / ramps
		}
		press *= scale
		lift *= scale
	}
	remaining := total - distance

	switch {
	case distance <= press:
		progress := 1.0
		if press > 0 {
			progress = distance / press
		}
		return zUp + (zDown-zUp)*progress
	case remaining <= lift:
		progress := 1.0
		if lift > 0 {
			progress = (lift - remaining) / lift
		}
		return zDown + (zUp-zDown)*progress
	default:
		return zDown
	}
}

// zForGrayscale maps black (0) to zDown and white (1) to zUp.
func zForGrayscale(gray, zUp, zDown float64) float64 {
	return zDown + gray*(zUp-zDown)
}

// openness normalizes an envelope height to 0 at zUp and 1 at zDown.
func openness(envZ, zUp, zDown float64) float64 {
	if zDown == zUp {
		return 1
	}
	return (envZ - zUp) / (zDown - zUp)
}

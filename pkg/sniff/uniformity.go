package sniff

import "math"

// consistencyScore computes τ₀ from the field-count vector: 1/(1+2σ) where σ
// is the population standard deviation. A zero-variance table scores 1.
func consistencyScore(fieldCounts []int) float64 {
	n := len(fieldCounts)
	if n == 0 {
		return 0
	}

	var sum int
	for _, c := range fieldCounts {
		sum += c
	}
	mean := float64(sum) / float64(n)

	var variance float64
	for _, c := range fieldCounts {
		d := float64(c) - mean
		variance += d * d
	}
	variance /= float64(n)

	return 1 / (1 + 2*math.Sqrt(variance))
}

// dispersionScore computes τ₁, a bounded composite of mode dominance, field
// count range, and row-to-row transitions. Unlike the unbounded dispersion
// measure in the literature this stays in [0,1] so it can be combined with
// τ₀ in a geometric mean. τ₁ = 1 exactly when every row has the modal count.
func dispersionScore(t *Table) float64 {
	n := len(t.FieldCounts)
	if n == 0 {
		return 0
	}

	modeScore := float64(t.ModalFrequency) / float64(n)

	minFC, maxFC := t.FieldCounts[0], t.FieldCounts[0]
	transitions := 0
	for i, c := range t.FieldCounts {
		if c < minFC {
			minFC = c
		}
		if c > maxFC {
			maxFC = c
		}
		if i > 0 && c != t.FieldCounts[i-1] {
			transitions++
		}
	}

	rangeScore := 0.0
	if maxFC > 0 {
		rangeScore = 1 - float64(maxFC-minFC)/float64(maxFC)
	}
	rangeScore = clamp01(rangeScore)

	denom := n - 1
	if denom < 1 {
		denom = 1
	}
	transitionScore := 1 - float64(transitions)/float64(denom)

	return 0.4*modeScore + 0.3*rangeScore + 0.3*transitionScore
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

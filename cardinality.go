package hll

import "math"

// Cardinality estimates the number of distinct tokens observed. The
// second return value is false when the sketch is Undefined ("no
// result"; the aggregation layer in agg.go maps this to null for a
// host). An error is returned only when the Dense estimator is asked to
// operate on fewer than 9 registers (m<=8), a Data error distinct from
// "no result".
func (s *SketchValue) Cardinality() (float64, bool, error) {
	switch s.rep {
	case repEmpty:
		return 0, true, nil

	case repExplicit:
		return float64(len(s.expl)), true, nil

	case repDense:
		v, err := denseCardinality(s.p, s.reg)
		if err != nil {
			return 0, false, err
		}
		return v, true, nil

	default: // repUndefined
		return 0, false, nil
	}
}

// denseCardinality implements the HLL estimator: raw harmonic-mean
// estimate, small-range linear-counting correction when registers are
// still zero and the raw estimate is small, and large-range rescue when
// the raw estimate exceeds the 64-bit hash space's safe threshold.
func denseCardinality(p *params, reg denseRegisters) (float64, error) {
	m := int64(1) << uint(p.log2m)
	if m <= 8 {
		return 0, errDataf("cardinality estimator requires m > 8 registers, got %d", m)
	}

	sum, numberOfZeros := reg.indicator(p)

	estimate := p.alphaMSquared / sum

	if numberOfZeros != 0 && estimate < p.smallEstimatorCutoff {
		return math.Ceil(float64(m) * math.Log(float64(m)/float64(numberOfZeros))), nil
	}

	if estimate <= p.largeEstimatorCutoff {
		return math.Ceil(estimate), nil
	}

	return math.Ceil(-1 * p.twoToL * math.Log(1.0-(estimate/p.twoToL))), nil
}

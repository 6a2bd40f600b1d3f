// Package sample computes the frame-sampling plan for a conversion.
package sample

// Plan describes fixed frame-skip sampling: of the decoded sequence, every
// Stride-th frame is retained, up to MaxFrames. The alternative strategy,
// subclipping by time before resampling, keeps slightly different frames
// near the duration boundary; only frame-skip is implemented here.
type Plan struct {
	// Stride is the frame-skip factor: one in every Stride decoded frames
	// is retained. Always >= 1.
	Stride int

	// MaxFrames caps the number of retained frames; 0 means unbounded.
	MaxFrames int
}

// Compute derives the plan for approximating targetFPS from sourceFPS with
// at most maxDuration seconds of output. When unbounded is set, maxDuration
// is ignored and no frame cap applies.
func Compute(sourceFPS float64, targetFPS, maxDuration int, unbounded bool) Plan {
	stride := int(sourceFPS / float64(targetFPS))
	if stride < 1 {
		stride = 1
	}

	p := Plan{Stride: stride}
	if !unbounded {
		p.MaxFrames = maxDuration * targetFPS
	}
	return p
}

// Keep reports whether the decoded frame at index is retained.
func (p Plan) Keep(index int) bool {
	return index%p.Stride == 0
}

// DecodeBudget is the number of source frames that must be decoded to fill
// the plan, 0 when unbounded. The last retained frame has index
// (MaxFrames-1)*Stride, so decoding can stop right after it.
func (p Plan) DecodeBudget() int {
	if p.MaxFrames == 0 {
		return 0
	}
	return (p.MaxFrames-1)*p.Stride + 1
}

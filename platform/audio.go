package platform

import "github.com/bdwalton/gones2/apu"

// sampleStream adapts apu.APU.DrainSamples (mono float32 in [0,~1.0])
// to the io.Reader ebiten/audio.Context.NewPlayer expects: interleaved
// 16-bit signed little-endian stereo PCM. The teacher never wired
// audio at all, so this has no direct teacher precedent; it reuses the
// ebiten/audio module the teacher's go.mod already pulls in rather
// than adding a second audio dependency, per SPEC_FULL.md §3.
type sampleStream struct {
	apu        *apu.APU
	sampleRate int
	pending    []byte
}

// Read fills p with PCM bytes drained from the APU's output buffer,
// padding with silence when the emulator hasn't produced enough
// samples yet (Update runs once per host frame; audio.Player pulls
// bytes on its own schedule, so underrun is routine, not an error).
func (s *sampleStream) Read(p []byte) (int, error) {
	for len(s.pending) < len(p) {
		samples := s.apu.DrainSamples()
		if len(samples) == 0 {
			break
		}
		s.pending = append(s.pending, encodePCM(samples)...)
	}

	if len(s.pending) == 0 {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	if n < len(p) {
		for i := n; i < len(p); i++ {
			p[i] = 0
		}
		n = len(p)
	}
	return n, nil
}

// encodePCM converts mono float32 samples (mixer output is already
// bounded to roughly [0, 1.0] per apu.mix's NESDev formulas) into
// interleaved 16-bit stereo PCM, duplicating the mono channel to both
// ears.
func encodePCM(samples []float32) []byte {
	out := make([]byte, 0, len(samples)*4)
	for _, f := range samples {
		v := int16(f * 32767)
		lo := byte(v)
		hi := byte(v >> 8)
		out = append(out, lo, hi, lo, hi)
	}
	return out
}

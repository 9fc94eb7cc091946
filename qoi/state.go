package qoi

// State is the codec state threaded through one image: the pixel cache, the previous pixel and
// the pending run. Encoding or decoding an image in several calls must reuse the same State.
// A State must not be shared between images or goroutines.
type State struct {
	index    [indexLength]pixel
	previous pixel
	run      int
	channels int
}

// NewState returns the state at the start of a stream for the given layout.
func NewState(colors Colors) *State {
	return &State{
		previous: opaquePixel(),
		channels: colors.Channels(),
	}
}

// Run returns the number of repeats of the previous pixel that are still pending.
// The encoder has not emitted them yet, the decoder has not written them yet.
func (s *State) Run() int {
	return s.run
}

// Channels returns the number of bytes per pixel the state was created for.
func (s *State) Channels() int {
	return s.channels
}

// cache stores p in its slot, replacing whatever collided there.
func (s *State) cache(p pixel) {
	s.index[p.Hash()] = p // We do not check for equality as copying a 4B array is faster than checking
}

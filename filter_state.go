package sbc

import "github.com/llehouerou/go-sbc/internal/filterbank"

// Config is a supported channel and sub-band combination.
type Config uint8

// Filter configurations.
const (
	Mono4 Config = iota
	Mono8
	Stereo4
	Stereo8
)

// ConfigFor returns the configuration for a channel and sub-band count.
// It returns ErrInvalidConfig for anything other than 1 or 2 channels and
// 4 or 8 sub-bands.
func ConfigFor(channels, subbands int) (Config, error) {
	var c Config
	switch channels {
	case 1:
	case 2:
		c = Stereo4
	default:
		return 0, ErrInvalidConfig
	}
	switch subbands {
	case 4:
	case 8:
		c++
	default:
		return 0, ErrInvalidConfig
	}
	return c, nil
}

// Channels returns 1 or 2.
func (c Config) Channels() int {
	if c >= Stereo4 {
		return 2
	}
	return 1
}

// Subbands returns 4 or 8.
func (c Config) Subbands() int {
	if c&1 == 0 {
		return 4
	}
	return 8
}

// Valid reports whether c is one of the four defined configurations.
func (c Config) Valid() bool {
	return c <= Stereo8
}

// Matches reports whether frames with header h can be decoded with c.
func (c Config) Matches(h Header) bool {
	return c.Channels() == h.Channels() && c.Subbands() == h.SubbandCount()
}

func (c Config) String() string {
	switch c {
	case Mono4:
		return "mono/4"
	case Mono8:
		return "mono/8"
	case Stereo4:
		return "stereo/4"
	case Stereo8:
		return "stereo/8"
	}
	return "invalid"
}

// Samples holds one block of reconstructed sub-band samples, indexed by
// [channel][sub-band].
type Samples [MaxChannels][MaxSubbands]int32

// Block is one block of decoded PCM: Subbands() samples for each channel.
type Block struct {
	pcm [MaxChannels][MaxSubbands]int16
	cfg Config
}

// Config returns the configuration the block was decoded with.
func (b *Block) Config() Config {
	return b.cfg
}

// Channels returns the number of channels in the block.
func (b *Block) Channels() int {
	return b.cfg.Channels()
}

// Subbands returns the number of samples per channel.
func (b *Block) Subbands() int {
	return b.cfg.Subbands()
}

// Samples returns the PCM samples of channel ch.
func (b *Block) Samples(ch int) []int16 {
	return b.pcm[ch][:b.cfg.Subbands()]
}

// Interleave writes the block into dst as channel-interleaved samples and
// returns the number written. dst must hold Channels()*Subbands() samples.
func (b *Block) Interleave(dst []int16) int {
	ch := b.cfg.Channels()
	sb := b.cfg.Subbands()
	for i := 0; i < sb; i++ {
		for c := 0; c < ch; c++ {
			dst[i*ch+c] = b.pcm[c][i]
		}
	}
	return sb * ch
}

// FilterState is the synthesis filter history of one stream.
//
// It must be reused across all frames of a stream: each block shifts the
// history by one step and the output depends on the previous blocks.
type FilterState struct {
	cfg  Config
	bank filterbank.Bank
	v    [MaxChannels][MaxSubbands]filterbank.History
	step int
}

// NewFilterState returns a zeroed filter state. It panics if cfg is not a
// defined configuration.
func NewFilterState(cfg Config) *FilterState {
	if !cfg.Valid() {
		panic("sbc: invalid filter config " + cfg.String())
	}
	return &FilterState{
		cfg:  cfg,
		bank: filterbank.ForSubbands(cfg.Subbands()),
	}
}

// Config returns the configuration the state was created with.
func (s *FilterState) Config() Config {
	return s.cfg
}

// Step returns the history cursor (0 to 9).
func (s *FilterState) Step() int {
	return s.step
}

// Reset clears the history and rewinds the cursor.
func (s *FilterState) Reset() {
	s.v = [MaxChannels][MaxSubbands]filterbank.History{}
	s.step = 0
}

// Filter synthesizes one block of PCM from sub-band samples and advances
// the history cursor.
func (s *FilterState) Filter(in *Samples) Block {
	b := Block{cfg: s.cfg}
	n := s.cfg.Subbands()
	for ch := 0; ch < s.cfg.Channels(); ch++ {
		s.bank.Synthesize(s.step, s.v[ch][:n], in[ch][:n], b.pcm[ch][:n])
	}
	s.step = filterbank.NextStep(s.step)
	return b
}

// offsets returns the loudness offsets of the configured bank.
func (s *FilterState) offsets(freq Frequency) []int8 {
	return s.bank.Offsets(uint8(freq))
}

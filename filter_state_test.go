package sbc

import (
	"errors"
	"testing"
)

func TestConfigFor(t *testing.T) {
	tests := []struct {
		channels, subbands int
		want               Config
		err                error
	}{
		{1, 4, Mono4, nil},
		{1, 8, Mono8, nil},
		{2, 4, Stereo4, nil},
		{2, 8, Stereo8, nil},
		{0, 4, 0, ErrInvalidConfig},
		{3, 8, 0, ErrInvalidConfig},
		{1, 6, 0, ErrInvalidConfig},
	}

	for _, tt := range tests {
		got, err := ConfigFor(tt.channels, tt.subbands)
		if !errors.Is(err, tt.err) {
			t.Errorf("ConfigFor(%d, %d) error = %v, want %v", tt.channels, tt.subbands, err, tt.err)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ConfigFor(%d, %d) = %v, want %v", tt.channels, tt.subbands, got, tt.want)
		}
		if err == nil && (got.Channels() != tt.channels || got.Subbands() != tt.subbands) {
			t.Errorf("%v reports %d/%d", got, got.Channels(), got.Subbands())
		}
	}
}

func TestNewFilterState_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewFilterState(Config(4)) did not panic")
		}
	}()
	NewFilterState(Config(4))
}

func TestFilterState_StepWraps(t *testing.T) {
	s := NewFilterState(Stereo8)
	var in Samples
	for i := 0; i < 25; i++ {
		if s.Step() != i%10 {
			t.Fatalf("block %d: Step = %d, want %d", i, s.Step(), i%10)
		}
		s.Filter(&in)
	}
	s.Reset()
	if s.Step() != 0 {
		t.Errorf("Step after Reset = %d, want 0", s.Step())
	}
}

func TestFilterState_SilenceInSilenceOut(t *testing.T) {
	for _, cfg := range []Config{Mono4, Mono8, Stereo4, Stereo8} {
		s := NewFilterState(cfg)
		var in Samples
		for i := 0; i < 12; i++ {
			b := s.Filter(&in)
			if b.Channels() != cfg.Channels() || b.Subbands() != cfg.Subbands() {
				t.Fatalf("%v: block shape %d/%d", cfg, b.Channels(), b.Subbands())
			}
			for ch := 0; ch < b.Channels(); ch++ {
				for _, v := range b.Samples(ch) {
					if v != 0 {
						t.Fatalf("%v: non-zero output %d from silence", cfg, v)
					}
				}
			}
		}
	}
}

// Channels of a stereo state are filtered independently.
func TestFilterState_ChannelsIndependent(t *testing.T) {
	stereo := NewFilterState(Stereo4)
	mono := NewFilterState(Mono4)

	for i := 0; i < 15; i++ {
		var in Samples
		in[0] = [MaxSubbands]int32{int32(i * 1000), -20000, 3000, int32(-i * 500)}
		in[1] = [MaxSubbands]int32{50000, 0, -50000, 0}

		sb := stereo.Filter(&in)
		mb := mono.Filter(&in)
		for k, v := range mb.Samples(0) {
			if sb.Samples(0)[k] != v {
				t.Fatalf("block %d sample %d: stereo left %d, mono %d", i, k, sb.Samples(0)[k], v)
			}
		}
	}
}

func TestBlock_Interleave(t *testing.T) {
	b := Block{cfg: Stereo4}
	b.pcm[0] = [MaxSubbands]int16{1, 2, 3, 4}
	b.pcm[1] = [MaxSubbands]int16{-1, -2, -3, -4}

	dst := make([]int16, 8)
	if n := b.Interleave(dst); n != 8 {
		t.Fatalf("Interleave returned %d, want 8", n)
	}
	want := []int16{1, -1, 2, -2, 3, -3, 4, -4}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst = %v, want %v", dst, want)
		}
	}
}

func TestConfig_Matches(t *testing.T) {
	h := NewHeader(Freq44100, Blocks16, JointStereo, Loudness, Subbands8, 53)
	if !Stereo8.Matches(h) {
		t.Error("Stereo8 should match joint stereo 8 sub-band header")
	}
	if Mono8.Matches(h) || Stereo4.Matches(h) {
		t.Error("mismatched configs reported as matching")
	}
	if !Mono8.Matches(MSBCHeader()) {
		t.Error("Mono8 should match mSBC")
	}
}

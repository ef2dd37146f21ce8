package sbc

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestDecoder_FFmpegReference compares decoded output against PCM produced by
// FFmpeg's decoder for the streams under testdata/generated.
// Run `go run testdata/generate.go` first.
func TestDecoder_FFmpegReference(t *testing.T) {
	files, _ := filepath.Glob(filepath.Join("testdata", "generated", "*", "*.sbc"))
	if len(files) == 0 {
		t.Skip("testdata/generated not found - run: go run testdata/generate.go")
	}

	for _, path := range files {
		name := strings.TrimPrefix(path, filepath.Join("testdata", "generated")+string(filepath.Separator))
		t.Run(name, func(t *testing.T) {
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			raw, err := os.ReadFile(strings.TrimSuffix(path, ".sbc") + ".raw")
			if err != nil {
				t.Skipf("no reference PCM: %v", err)
			}
			ref := make([]int16, len(raw)/2)
			for i := range ref {
				ref[i] = int16(binary.LittleEndian.Uint16(raw[2*i:]))
			}

			dec := NewDecoder(bytes.NewReader(data), nil)
			pcm := make([]int16, MaxFrameSamples)
			var got []int16
			for {
				info, err := dec.Decode(pcm)
				if err != nil {
					break
				}
				got = append(got, pcm[:info.Samples]...)
			}

			if d := len(got) - len(ref); d < -MaxFrameSamples || d > MaxFrameSamples {
				t.Fatalf("decoded %d samples, reference has %d", len(got), len(ref))
			}
			n := min(len(got), len(ref))

			var signal, noise float64
			maxDiff := 0
			for i := 0; i < n; i++ {
				r := float64(ref[i])
				e := float64(got[i]) - r
				signal += r * r
				noise += e * e
				maxDiff = max(maxDiff, int(math.Abs(e)))
			}

			if signal == 0 {
				if maxDiff > 4 {
					t.Errorf("silent reference: max diff = %d, want <= 4", maxDiff)
				}
				return
			}
			snr := 10 * math.Log10(signal/math.Max(noise, 1))
			if snr < 40 {
				t.Errorf("SNR = %.1f dB, want >= 40 (max diff %d)", snr, maxDiff)
			}
		})
	}
}

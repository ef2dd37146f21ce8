//go:build ignore

// This script generates reference data for SBC decoder testing.
// Run with: go run testdata/generate.go
//
// Requirements: FFmpeg built with its native SBC encoder and decoder.
//
// Generated test data structure:
//   testdata/generated/
//   ├── 16000_mono_8sb_64k/
//   │   ├── sine1k.sbc    # Encoded frames
//   │   ├── sine1k.raw    # Reference PCM decoded by FFmpeg (s16le)
//   │   └── sine1k.json   # Stream parameters
//   └── ...

package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/llehouerou/go-sbc"
	"github.com/llehouerou/go-sbc/internal/output"
)

// TestConfig describes a test configuration
type TestConfig struct {
	SampleRate  int     `json:"sample_rate"`
	NumChannels int     `json:"num_channels"` // 1=mono, 2=stereo
	Bitrate     int     `json:"bitrate"`      // Target bitrate in kbps
	Delay       float64 `json:"delay_ms"`     // Encoder delay; <= 1.5ms selects 4 sub-bands
}

// caseInfo is written next to each generated stream.
type caseInfo struct {
	TestConfig
	Header string `json:"header"` // Parameters of the first encoded frame
}

var configs = []TestConfig{
	{16000, 1, 64, 13},
	{16000, 1, 48, 1},
	{32000, 2, 192, 13},
	{44100, 1, 128, 13},
	{44100, 2, 229, 13}, // A2DP high quality
	{44100, 2, 328, 13}, // A2DP maximum bitpool
	{48000, 2, 237, 13},
	{48000, 2, 160, 1},
}

var audioTypes = []string{"silence", "sine1k", "sweep", "noise", "impulse"}

func main() {
	if err := checkFFmpeg(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Please install FFmpeg: https://ffmpeg.org/download.html\n")
		os.Exit(1)
	}

	baseDir := filepath.Join("testdata", "generated")
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}

	for _, cfg := range configs {
		dirName := fmt.Sprintf("%d_%s_%s_%dk",
			cfg.SampleRate, channelName(cfg.NumChannels), subbandName(cfg.Delay), cfg.Bitrate)
		dir := filepath.Join(baseDir, dirName)
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating directory %s: %v\n", dir, err)
			continue
		}

		for _, audioType := range audioTypes {
			if err := generateTestCase(dir, audioType, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "Error generating %s/%s: %v\n", dirName, audioType, err)
			} else {
				fmt.Printf("Generated %s/%s\n", dirName, audioType)
			}
		}
	}

	fmt.Println("\nDone!")
}

func checkFFmpeg() error {
	out, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").Output()
	if err != nil {
		return fmt.Errorf("ffmpeg not found: %w", err)
	}
	if !strings.Contains(string(out), " sbc ") {
		return fmt.Errorf("ffmpeg has no SBC encoder")
	}
	return nil
}

func channelName(n int) string {
	if n == 1 {
		return "mono"
	}
	return "stereo"
}

func subbandName(delay float64) string {
	if delay <= 1.5 {
		return "4sb"
	}
	return "8sb"
}

func generateTestCase(dir, audioType string, cfg TestConfig) error {
	wavPath := filepath.Join(dir, audioType+".wav")
	sbcPath := filepath.Join(dir, audioType+".sbc")
	rawPath := filepath.Join(dir, audioType+".raw")
	jsonPath := filepath.Join(dir, audioType+".json")

	// Skip if all files exist
	if fileExists(sbcPath) && fileExists(rawPath) && fileExists(jsonPath) {
		return nil
	}

	// 1 second of audio
	if err := generateWAV(wavPath, audioType, cfg, cfg.SampleRate); err != nil {
		return fmt.Errorf("generating WAV: %w", err)
	}
	defer os.Remove(wavPath)

	if err := ffmpeg("-i", wavPath, "-c:a", "sbc",
		"-b:a", fmt.Sprintf("%dk", cfg.Bitrate),
		"-sbc_delay", fmt.Sprintf("%gms", cfg.Delay),
		"-f", "sbc", sbcPath); err != nil {
		return fmt.Errorf("encoding SBC: %w", err)
	}

	if err := ffmpeg("-f", "sbc", "-i", sbcPath, "-f", "s16le", "-acodec", "pcm_s16le", rawPath); err != nil {
		return fmt.Errorf("decoding to raw: %w", err)
	}

	header, err := readHeader(sbcPath)
	if err != nil {
		return err
	}
	return writeConfig(jsonPath, caseInfo{TestConfig: cfg, Header: header.String()})
}

func ffmpeg(args ...string) error {
	cmd := exec.Command("ffmpeg", append([]string{"-y", "-hide_banner", "-loglevel", "error"}, args...)...)
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func readHeader(path string) (sbc.Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return sbc.Header{}, err
	}
	defer f.Close()
	return sbc.DecodeHeader(sbc.NewReaderSource(f))
}

func generateWAV(path, audioType string, cfg TestConfig, samples int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := output.NewWAVWriter(f, cfg.SampleRate, cfg.NumChannels)
	frame := make([]int16, cfg.NumChannels)

	for i := 0; i < samples; i++ {
		for ch := 0; ch < cfg.NumChannels; ch++ {
			var sample float64
			t := float64(i) / float64(cfg.SampleRate)

			switch audioType {
			case "silence":
				sample = 0

			case "sine1k":
				sample = 0.8 * math.Sin(2*math.Pi*1000*t)

			case "sweep":
				// Logarithmic sweep from 20Hz to Nyquist/2
				maxFreq := float64(cfg.SampleRate) / 4
				progress := float64(i) / float64(samples)
				freq := 20 * math.Pow(maxFreq/20, progress)
				sample = 0.7 * math.Sin(2*math.Pi*freq*t)

			case "noise":
				// Deterministic LCG noise
				seed := uint32(i*cfg.NumChannels + ch + 12345)
				seed = seed*1103515245 + 12345
				sample = float64(int32(seed)) / float64(math.MaxInt32) * 0.5

			case "impulse":
				if i%(cfg.SampleRate/10) == 0 {
					sample = 0.9
				}
			}

			if cfg.NumChannels == 2 && ch == 1 {
				sample *= 0.95
			}
			frame[ch] = int16(max(-1, min(1, sample)) * 32767)
		}
		if err := w.WriteSamples(frame); err != nil {
			return err
		}
	}
	return w.Close()
}

func writeConfig(path string, info caseInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

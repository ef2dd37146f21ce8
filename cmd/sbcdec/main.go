// Command sbcdec decodes SBC or mSBC audio to 16-bit PCM.
//
// Usage:
//
//	sbcdec -in input.sbc -out output.wav
//	sbcdec -in capture.rtp -rtp -out output.raw
//	sbcdec -listen :5004 -out live.wav -metrics :9100
//	cat input.msbc | sbcdec -resync -out -
//
// Output ending in .wav is written as a WAV file; anything else is raw
// interleaved little-endian PCM. -out - writes raw PCM to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

func main() {
	var cfg config
	flag.StringVar(&cfg.in, "in", "-", "Input SBC stream or RTP capture; - reads stdin")
	flag.StringVar(&cfg.out, "out", "", "Output file (.wav for a WAV container, - for raw PCM on stdout)")
	flag.BoolVar(&cfg.rtp, "rtp", false, "Input is a capture of length-prefixed A2DP RTP packets")
	flag.StringVar(&cfg.listen, "listen", "", "Receive A2DP RTP over UDP on this address instead of reading -in")
	flag.BoolVar(&cfg.resync, "resync", false, "Skip garbage and corrupt frames instead of stopping")
	flag.BoolVar(&cfg.skipCRC, "skip-crc", false, "Do not verify frame checksums")
	flag.StringVar(&cfg.metrics, "metrics", "", "Serve Prometheus metrics on this address")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := run(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Decode failed")
	}
	printStats(cfg, st)
}

func printStats(cfg config, st stats) {
	if cfg.out == "-" {
		return
	}
	fmt.Printf("Decoded: %s\n", cfg.source())
	fmt.Printf("  Output: %s\n", cfg.out)
	fmt.Printf("  Format: %d Hz, %d channel(s)\n", st.SampleRate, st.Channels)
	fmt.Printf("  Frames: %d\n", st.Frames)
	fmt.Printf("  Samples: %d (%.2f seconds)\n", st.Samples, st.Duration())
	if st.Dropped > 0 || st.Skipped > 0 {
		fmt.Printf("  Dropped: %d frames, %d bytes skipped\n", st.Dropped, st.Skipped)
	}
	if cfg.rtp || cfg.listen != "" {
		fmt.Printf("  RTP: %d packets, %d lost\n", st.RTP.Packets, st.RTP.Lost)
	}
}

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/llehouerou/go-sbc"
	"github.com/llehouerou/go-sbc/a2dp"
	"github.com/llehouerou/go-sbc/internal/metrics"
	"github.com/llehouerou/go-sbc/internal/output"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type config struct {
	in      string
	out     string
	rtp     bool
	listen  string
	resync  bool
	skipCRC bool
	metrics string
}

func (c config) source() string {
	if c.listen != "" {
		return "udp://" + c.listen
	}
	if c.in == "-" {
		return "stdin"
	}
	return c.in
}

type stats struct {
	Frames     int
	Samples    int // All channels
	Skipped    int
	Dropped    int
	SampleRate int
	Channels   int
	RTP        a2dp.Stats

	seconds float64
}

// Duration returns the decoded audio length in seconds.
func (s stats) Duration() float64 {
	return s.seconds
}

// run decodes cfg.in (or the UDP listener) into cfg.out until the input
// ends or ctx is canceled.
func run(ctx context.Context, cfg config, log logrus.FieldLogger) (stats, error) {
	if cfg.out == "" {
		return stats{}, errors.New("no output file given")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if cfg.metrics != "" {
		if err := serveMetrics(ctx, g, cfg.metrics, log); err != nil {
			return stats{}, err
		}
	}

	in, stream, err := openInput(ctx, g, cfg, log)
	if err != nil {
		cancel()
		_ = g.Wait()
		return stats{}, err
	}
	defer in.Close()

	var st stats
	g.Go(func() error {
		defer cancel()
		var err error
		st, err = decode(in, stream, cfg, log)
		return err
	})
	err = g.Wait()
	return st, err
}

// openInput returns the frame byte stream and, for RTP input, the stream
// that depacketizes it.
func openInput(ctx context.Context, g *errgroup.Group, cfg config, log logrus.FieldLogger) (io.ReadCloser, *a2dp.Stream, error) {
	if cfg.listen != "" {
		conn, err := net.ListenPacket("udp", cfg.listen)
		if err != nil {
			return nil, nil, fmt.Errorf("listen: %w", err)
		}
		g.Go(func() error {
			<-ctx.Done()
			return conn.Close()
		})
		log.WithField("addr", conn.LocalAddr().String()).Info("Listening for RTP")
		s := a2dp.NewStream(a2dp.NewConnSource(conn), log)
		return readCloser{s, nopClose}, s, nil
	}

	var f *os.File
	if cfg.in == "-" {
		f = os.Stdin
	} else {
		var err error
		if f, err = os.Open(cfg.in); err != nil {
			return nil, nil, err
		}
	}
	if !cfg.rtp {
		return f, nil, nil
	}
	s := a2dp.NewStream(a2dp.NewCaptureReader(bufio.NewReader(f)), log)
	return readCloser{s, f.Close}, s, nil
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error { return r.close() }

func nopClose() error { return nil }

func serveMetrics(ctx context.Context, g *errgroup.Group, addr string, log logrus.FieldLogger) error {
	if err := metrics.Enable(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	g.Go(func() error {
		log.WithField("addr", ln.Addr().String()).Info("Serving metrics")
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return nil
}

// pcmWriter receives decoded frames.
type pcmWriter interface {
	WritePCM(samples []int16, sampleRate, channels int) error
	Close() error
}

func createOutput(path string) (pcmWriter, error) {
	if path == "-" {
		return &rawWriter{w: bufio.NewWriter(os.Stdout)}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		return &wavWriter{f: f, w: output.NewWAVWriter(f, 0, 0)}, nil
	}
	return &rawWriter{w: bufio.NewWriter(f), f: f}, nil
}

type rawWriter struct {
	w   *bufio.Writer
	f   *os.File
	buf []byte
}

func (r *rawWriter) WritePCM(samples []int16, _, _ int) error {
	r.buf = output.AppendInt16LE(r.buf[:0], samples)
	_, err := r.w.Write(r.buf)
	return err
}

func (r *rawWriter) Close() error {
	err := r.w.Flush()
	if r.f != nil {
		if cerr := r.f.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

type wavWriter struct {
	f *os.File
	w *output.WAVWriter
}

func (w *wavWriter) WritePCM(samples []int16, sampleRate, channels int) error {
	if err := w.w.SetFormat(sampleRate, channels); err != nil {
		return err
	}
	return w.w.WriteSamples(samples)
}

func (w *wavWriter) Close() error {
	err := w.w.Close()
	if cerr := w.f.Close(); err == nil {
		err = cerr
	}
	return err
}

func decode(in io.Reader, stream *a2dp.Stream, cfg config, log logrus.FieldLogger) (stats, error) {
	var st stats

	out, err := createOutput(cfg.out)
	if err != nil {
		return st, err
	}

	dec := sbc.NewDecoder(in, &sbc.Options{
		Resync:  cfg.resync,
		SkipCRC: cfg.skipCRC,
		Logger:  log,
	})
	pcm := make([]int16, sbc.MaxFrameSamples)
	var prev a2dp.Stats

	for {
		info, err := dec.Decode(pcm)
		st.Skipped += info.Skipped
		st.Dropped += info.Dropped
		if metrics.IsMetricsEnabled() {
			metrics.RecordSkippedBytes(info.Skipped)
			metrics.RecordDroppedFrames("checksum", info.Dropped)
		}
		if stream != nil {
			cur := stream.Stats()
			if metrics.IsMetricsEnabled() {
				recordRTP(prev, cur)
			}
			st.RTP, prev = cur, cur
		}

		if err == io.EOF || errors.Is(err, net.ErrClosed) {
			break
		}
		if err != nil {
			out.Close()
			return st, err
		}

		h := info.Header
		if err := out.WritePCM(pcm[:info.Samples], h.SampleRate(), info.Channels); err != nil {
			out.Close()
			return st, fmt.Errorf("write output: %w", err)
		}

		if h.SampleRate() != st.SampleRate || info.Channels != st.Channels {
			log.WithFields(logrus.Fields{
				"frame":  st.Frames,
				"header": h.String(),
			}).Info("Stream format")
		}
		st.Frames++
		st.Samples += info.Samples
		st.SampleRate = h.SampleRate()
		st.Channels = info.Channels
		st.seconds += float64(info.Samples/info.Channels) / float64(st.SampleRate)

		if metrics.IsMetricsEnabled() {
			fc, _ := dec.Config()
			metrics.RecordFrame(fc.String(), info.Samples)
		}
	}

	return st, out.Close()
}

func recordRTP(prev, cur a2dp.Stats) {
	metrics.RecordRTPPackets("received", cur.Packets-prev.Packets)
	metrics.RecordRTPPackets("lost", cur.Lost-prev.Lost)
	metrics.RecordRTPPackets("late", cur.Late-prev.Late)
	metrics.RecordRTPPackets("invalid", cur.Invalid-prev.Invalid)
	metrics.RecordDroppedFrames("fragment", int(cur.Fragments-prev.Fragments))
}

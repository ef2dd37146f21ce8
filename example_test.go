package sbc_test

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/llehouerou/go-sbc"
)

func Example() {
	data, err := os.ReadFile("testdata/mono4.sbc")
	if err != nil {
		fmt.Println(err)
		return
	}

	dec := sbc.NewDecoder(bytes.NewReader(data), nil)
	pcm := make([]int16, sbc.MaxFrameSamples)

	frames, samples := 0, 0
	for {
		info, err := dec.Decode(pcm)
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Println(err)
			return
		}
		frames++
		samples += info.Samples
	}

	h := dec.Header()
	fmt.Printf("Frames: %d\n", frames)
	fmt.Printf("Samples: %d\n", samples)
	fmt.Printf("Sample rate: %d Hz\n", h.SampleRate())
	fmt.Printf("Channels: %d\n", h.Channels())

	// Output:
	// Frames: 32
	// Samples: 512
	// Sample rate: 16000 Hz
	// Channels: 1
}

func ExampleHeader() {
	h := sbc.NewHeader(sbc.Freq44100, sbc.Blocks16, sbc.JointStereo, sbc.Loudness, sbc.Subbands8, 53)

	fmt.Println(h)
	fmt.Printf("Wire: % x\n", h.Bytes())
	fmt.Printf("Frame length: %d bytes\n", h.FrameLength())
	fmt.Printf("Bit rate: %d bit/s\n", h.BitRate())

	// Output:
	// SBC 44.1kHz joint-stereo blocks=16 subbands=8 loudness bitpool=53
	// Wire: 9c bd 35
	// Frame length: 119 bytes
	// Bit rate: 327993 bit/s
}

func ExampleFrameDecoder() {
	data, err := os.ReadFile("testdata/mono4.sbc")
	if err != nil {
		fmt.Println(err)
		return
	}

	src := sbc.NewSliceSource(data)
	h, err := sbc.DecodeHeader(src)
	if err != nil {
		fmt.Println(err)
		return
	}

	state := sbc.NewFilterState(sbc.Mono4)
	frame, err := sbc.NewFrameDecoder(h, state, src)
	if err != nil {
		fmt.Println(err)
		return
	}

	for block, err := range frame.All() {
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println(block.Samples(0))
	}

	// Output:
	// [0 -1 0 0]
	// [-1 0 -1 0]
	// [0 0 0 2]
	// [1 0 -2 -3]
}

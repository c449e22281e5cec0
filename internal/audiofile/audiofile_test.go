package audiofile

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-xmax/internal/testutil"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.wav", WAV},
		{"dir/B.WAV", WAV},
		{"c.aiff", AIFF},
		{"c.aif", AIFF},
		{"d.mp3", MP3},
		{"e.ogg", Ogg},
	}

	for _, tc := range tests {
		got, err := FormatFromPath(tc.path)
		if err != nil || got != tc.want {
			t.Errorf("FormatFromPath(%q) = %v, %v; want %v", tc.path, got, err, tc.want)
		}
	}

	if _, err := FormatFromPath("song.flac"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("flac: error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestWAVRoundTrip(t *testing.T) {
	for _, depth := range []int{16, 24} {
		t.Run(fmt.Sprintf("%d-bit", depth), func(t *testing.T) {
			in := &Buffer{
				SampleRate: 44100,
				Channels: [][]float64{
					testutil.DeterministicSine(440, 44100, 0.5, 1000),
					testutil.DeterministicNoise(5, 0.9, 1000),
				},
			}

			path := filepath.Join(t.TempDir(), "roundtrip.wav")
			if err := WriteFile(path, in, depth); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}

			out, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}

			if out.SampleRate != in.SampleRate || out.NumChannels() != 2 || out.Frames() != 1000 {
				t.Fatalf("decoded %d Hz, %d channels, %d frames", out.SampleRate, out.NumChannels(), out.Frames())
			}

			lsb := math.Ldexp(1, 1-depth)
			for ch := range in.Channels {
				testutil.RequireSliceNearlyEqual(t, out.Channels[ch], in.Channels[ch], lsb)
			}
		})
	}
}

func TestWAVDecodeFromMemory(t *testing.T) {
	in := &Buffer{SampleRate: 48000, Channels: [][]float64{{0, 0.25, -0.5, 2, -2}}}

	path := filepath.Join(t.TempDir(), "mono.wav")
	if err := WriteFile(path, in, 16); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	out, err := Decode(bytes.NewBuffer(data), WAV)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	want := []float64{0, 0.25, -0.5, 32767.0 / 32768, -1}
	testutil.RequireSliceNearlyEqual(t, out.Channels[0], want, 0)
}

func TestWriteWAVValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")

	if err := WriteFile(path, &Buffer{SampleRate: 48000, Channels: [][]float64{{0}}}, 8); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("8-bit: error = %v", err)
	}

	if err := WriteFile(path, &Buffer{SampleRate: 48000}, 16); err == nil {
		t.Error("no channels should fail")
	}

	ragged := &Buffer{SampleRate: 48000, Channels: [][]float64{{0, 0}, {0}}}
	if err := WriteFile(path, ragged, 16); err == nil {
		t.Error("ragged channels should fail")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	garbage := bytes.Repeat([]byte("not audio "), 20)

	for _, f := range []Format{WAV, AIFF, Ogg} {
		if _, err := Decode(bytes.NewReader(garbage), f); err == nil {
			t.Errorf("%v: garbage decoded without error", f)
		}
	}

	if _, err := Decode(bytes.NewReader(nil), MP3); err == nil {
		t.Error("mp3: empty stream decoded without error")
	}

	if _, err := Decode(bytes.NewReader(garbage), Format(9)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("unknown format: error = %v", err)
	}
}

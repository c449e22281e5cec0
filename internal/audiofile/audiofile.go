// Package audiofile reads WAV, AIFF, MP3 and Ogg Vorbis files into
// deinterleaved float64 channels and writes PCM WAV files.
package audiofile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

// ErrUnsupportedFormat is returned for unknown extensions, non-PCM data and
// unsupported bit depths.
var ErrUnsupportedFormat = errors.New("audiofile: unsupported format")

// Format identifies a container.
type Format int

const (
	WAV Format = iota
	AIFF
	MP3
	Ogg
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case WAV:
		return "wav"
	case AIFF:
		return "aiff"
	case MP3:
		return "mp3"
	case Ogg:
		return "ogg"
	default:
		return "unknown"
	}
}

// FormatFromPath selects the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return WAV, nil
	case ".aif", ".aiff":
		return AIFF, nil
	case ".mp3":
		return MP3, nil
	case ".ogg", ".oga":
		return Ogg, nil
	default:
		return 0, fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Buffer holds decoded audio, one slice per channel.
type Buffer struct {
	SampleRate int
	Channels   [][]float64
}

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int {
	return len(b.Channels)
}

// Frames returns the number of samples per channel.
func (b *Buffer) Frames() int {
	if len(b.Channels) == 0 {
		return 0
	}

	return len(b.Channels[0])
}

// ReadFile decodes the file at path.
func ReadFile(path string) (*Buffer, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audiofile: %w", err)
	}
	defer file.Close()

	return Decode(file, f)
}

// Decode reads the whole stream r in format f.
func Decode(r io.Reader, f Format) (*Buffer, error) {
	switch f {
	case WAV:
		return decodeWAV(readSeeker(r))
	case AIFF:
		return decodeAIFF(readSeeker(r))
	case MP3:
		return decodeMP3(r)
	case Ogg:
		return decodeOgg(r)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
}

// readSeeker returns r if it can seek, otherwise an in-memory copy. A read
// error surfaces as an empty stream that fails header validation.
func readSeeker(r io.Reader) io.ReadSeeker {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs
	}

	data, _ := io.ReadAll(r)

	return bytes.NewReader(data)
}

func decodeWAV(r io.ReadSeeker) (*Buffer, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errors.New("audiofile: not a valid WAV file")
	}

	if dec.WavAudioFormat != 1 {
		return nil, fmt.Errorf("%w: WAV audio format %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("audiofile: WAV: %w", err)
	}

	return fromIntBuffer(buf, int(dec.BitDepth))
}

func decodeAIFF(r io.ReadSeeker) (*Buffer, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errors.New("audiofile: not a valid AIFF file")
	}

	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 {
		return nil, fmt.Errorf("%w: AIFF layout", ErrUnsupportedFormat)
	}

	out := &goaudio.IntBuffer{Format: format}
	chunk := &goaudio.IntBuffer{Format: format, Data: make([]int, 4096*format.NumChannels)}

	for {
		n, err := dec.PCMBuffer(chunk)
		out.Data = append(out.Data, chunk.Data[:n]...)

		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("audiofile: AIFF: %w", err)
		}

		if n == 0 || err != nil {
			break
		}
	}

	return fromIntBuffer(out, int(dec.BitDepth))
}

func fromIntBuffer(buf *goaudio.IntBuffer, bitDepth int) (*Buffer, error) {
	if buf == nil || buf.Format == nil || buf.Format.NumChannels <= 0 {
		return nil, fmt.Errorf("%w: missing format", ErrUnsupportedFormat)
	}

	scale, err := fullScale(bitDepth)
	if err != nil {
		return nil, err
	}

	b := newBuffer(buf.Format.SampleRate, buf.Format.NumChannels, len(buf.Data)/buf.Format.NumChannels)
	for i := range b.Frames() * b.NumChannels() {
		b.Channels[i%b.NumChannels()][i/b.NumChannels()] = float64(buf.Data[i]) / scale
	}

	return b, nil
}

func decodeMP3(r io.Reader) (*Buffer, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("audiofile: MP3: %w", err)
	}

	// go-mp3 always produces interleaved 16-bit little-endian stereo.
	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("audiofile: MP3: %w", err)
	}

	const channels = 2

	b := newBuffer(dec.SampleRate(), channels, len(data)/(2*channels))
	for i := range b.Frames() * channels {
		v := int16(uint16(data[2*i]) | uint16(data[2*i+1])<<8)
		b.Channels[i%channels][i/channels] = float64(v) / 32768
	}

	return b, nil
}

func decodeOgg(r io.Reader) (*Buffer, error) {
	data, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("audiofile: Ogg: %w", err)
	}

	if format == nil || format.Channels <= 0 {
		return nil, fmt.Errorf("%w: Ogg layout", ErrUnsupportedFormat)
	}

	n := format.Channels

	b := newBuffer(format.SampleRate, n, len(data)/n)
	for i := range b.Frames() * n {
		b.Channels[i%n][i/n] = float64(data[i])
	}

	return b, nil
}

func newBuffer(sampleRate, channels, frames int) *Buffer {
	b := &Buffer{SampleRate: sampleRate, Channels: make([][]float64, channels)}
	for ch := range b.Channels {
		b.Channels[ch] = make([]float64, frames)
	}

	return b
}

func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16, 24, 32:
		return math.Ldexp(1, bitDepth-1), nil
	default:
		return 0, fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedFormat, bitDepth)
	}
}

// WriteWAV writes b as integer PCM with bitDepth bits (16, 24 or 32).
// Samples are clipped to [-1, 1).
func WriteWAV(w io.WriteSeeker, b *Buffer, bitDepth int) error {
	scale, err := fullScale(bitDepth)
	if err != nil {
		return err
	}

	n := b.NumChannels()
	if n == 0 || b.SampleRate <= 0 {
		return fmt.Errorf("audiofile: WAV needs channels and a sample rate: %d, %d", n, b.SampleRate)
	}

	frames := b.Frames()
	for ch, c := range b.Channels {
		if len(c) != frames {
			return fmt.Errorf("audiofile: channel %d has %d frames, want %d", ch, len(c), frames)
		}
	}

	data := make([]int, frames*n)
	for i := range data {
		v := math.Round(b.Channels[i%n][i/n] * scale)
		data[i] = int(max(-scale, min(scale-1, v)))
	}

	enc := wav.NewEncoder(w, b.SampleRate, bitDepth, n, 1)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: n, SampleRate: b.SampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("audiofile: WAV: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("audiofile: WAV: %w", err)
	}

	return nil
}

// WriteFile writes b to path as a PCM WAV file.
func WriteFile(path string, b *Buffer, bitDepth int) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audiofile: %w", err)
	}

	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("audiofile: %w", cerr)
		}
	}()

	return WriteWAV(file, b, bitDepth)
}

// Package wav writes rendered audio as mono 16-bit PCM RIFF/WAVE files.
package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

type riffHeader struct {
	ChunkID   [4]byte
	ChunkSize uint32
	Format    [4]byte
}

type fmtChunk struct {
	SubchunkID    [4]byte
	SubchunkSize  uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

type dataChunk struct {
	SubchunkID   [4]byte
	SubchunkSize uint32
}

// Encode writes samples as mono 16-bit PCM. Samples are expected in
// [-1, 1]; values outside are clamped during quantization.
func Encode(w io.Writer, samples []float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("wav: invalid sample rate %d", sampleRate)
	}

	const (
		channels      = 1
		bitsPerSample = 16
		bytesPerFrame = channels * bitsPerSample / 8
	)

	dataSize := len(samples) * bytesPerFrame

	header := riffHeader{
		ChunkID:   [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize: uint32(36 + dataSize),
		Format:    [4]byte{'W', 'A', 'V', 'E'},
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("wav: write header: %w", err)
	}

	format := fmtChunk{
		SubchunkID:    [4]byte{'f', 'm', 't', ' '},
		SubchunkSize:  16,
		AudioFormat:   1, // PCM
		NumChannels:   channels,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * bytesPerFrame),
		BlockAlign:    bytesPerFrame,
		BitsPerSample: bitsPerSample,
	}
	if err := binary.Write(w, binary.LittleEndian, format); err != nil {
		return fmt.Errorf("wav: write fmt chunk: %w", err)
	}

	data := dataChunk{
		SubchunkID:   [4]byte{'d', 'a', 't', 'a'},
		SubchunkSize: uint32(dataSize),
	}
	if err := binary.Write(w, binary.LittleEndian, data); err != nil {
		return fmt.Errorf("wav: write data chunk: %w", err)
	}

	pcm := make([]int16, len(samples))
	for i, s := range samples {
		pcm[i] = quantize(s)
	}
	if err := binary.Write(w, binary.LittleEndian, pcm); err != nil {
		return fmt.Errorf("wav: write samples: %w", err)
	}

	return nil
}

// WriteFile encodes samples to path, creating or truncating the file.
func WriteFile(path string, samples []float64, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wav: %w", err)
	}

	if err := Encode(f, samples, sampleRate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func quantize(s float64) int16 {
	s = math.Max(-1, math.Min(1, s))
	v := math.Round(s * 32767)
	return int16(v)
}

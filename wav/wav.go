// Package wav builds and inspects canonical 44-byte RIFF/WAVE headers for
// uncompressed PCM audio.
package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

const HeaderSize = 44

// FormatPCM is the audio format tag for uncompressed PCM.
const FormatPCM = 1

var ErrNotWAV = errors.New("not a RIFF/WAVE file")

type header struct {
	RiffID   [4]byte
	RiffSize uint32
	WaveID   [4]byte

	FmtID       [4]byte
	FmtSize     uint32
	AudioFormat uint16
	NumChannels uint16
	SampleRate  uint32
	ByteRate    uint32
	BlockAlign  uint16
	BitsPerSamp uint16

	DataID   [4]byte
	DataSize uint32
}

// Header returns the 44-byte header for a PCM payload of dataSize bytes.
func Header(sampleRate, channels, bitsPerSample int, dataSize uint32) []byte {
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	h := header{
		RiffID:      [4]byte{'R', 'I', 'F', 'F'},
		RiffSize:    36 + dataSize,
		WaveID:      [4]byte{'W', 'A', 'V', 'E'},
		FmtID:       [4]byte{'f', 'm', 't', ' '},
		FmtSize:     16,
		AudioFormat: FormatPCM,
		NumChannels: uint16(channels),
		SampleRate:  uint32(sampleRate),
		ByteRate:    uint32(byteRate),
		BlockAlign:  uint16(blockAlign),
		BitsPerSamp: uint16(bitsPerSample),
		DataID:      [4]byte{'d', 'a', 't', 'a'},
		DataSize:    dataSize,
	}

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, &h)
	return buf.Bytes()
}

// Info describes a parsed WAV header.
type Info struct {
	AudioFormat   int
	Channels      int
	SampleRate    int
	BitsPerSample int
	DataSize      uint32
}

// Duration reports the payload play time, zero when the header is degenerate.
func (i Info) Duration() time.Duration {
	byteRate := i.SampleRate * i.Channels * i.BitsPerSample / 8
	if byteRate <= 0 {
		return 0
	}
	return time.Duration(float64(i.DataSize) / float64(byteRate) * float64(time.Second))
}

// Inspect parses the canonical 44-byte header from r. Files with extra
// sub-chunks before "data" are rejected; the capture tool emits the
// canonical layout.
func Inspect(r io.Reader) (Info, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrNotWAV, err)
	}
	if string(h.RiffID[:]) != "RIFF" || string(h.WaveID[:]) != "WAVE" {
		return Info{}, ErrNotWAV
	}
	if string(h.FmtID[:]) != "fmt " || string(h.DataID[:]) != "data" {
		return Info{}, fmt.Errorf("%w: unexpected sub-chunk layout", ErrNotWAV)
	}
	return Info{
		AudioFormat:   int(h.AudioFormat),
		Channels:      int(h.NumChannels),
		SampleRate:    int(h.SampleRate),
		BitsPerSample: int(h.BitsPerSamp),
		DataSize:      h.DataSize,
	}, nil
}

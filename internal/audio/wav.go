// Package audio handles the PCM plumbing around reference-audio samples:
// WAV encode/decode, resampling and the level measurements the contribution
// pipeline relies on.
package audio

import (
	"encoding/binary"
	"fmt"
)

// Format identifies a container/encoding detected from raw bytes.
type Format string

const (
	FormatWAV     Format = "wav"
	FormatMP3     Format = "mp3"
	FormatOGG     Format = "ogg"
	FormatUnknown Format = "unknown"
)

// DetectFormat sniffs magic bytes to classify an audio payload.
func DetectFormat(data []byte) Format {
	switch {
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE":
		return FormatWAV
	case len(data) >= 3 && string(data[0:3]) == "ID3":
		return FormatMP3
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return FormatMP3
	case len(data) >= 4 && string(data[0:4]) == "OggS":
		return FormatOGG
	default:
		return FormatUnknown
	}
}

// Clip is decoded mono-or-stereo 16-bit PCM audio.
type Clip struct {
	Samples    []int16
	SampleRate int
	Channels   int
}

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float64 {
	if c.SampleRate == 0 || c.Channels == 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.SampleRate*c.Channels)
}

// DecodeWAV parses a PCM16 WAV payload. Compressed or non-16-bit WAV files
// are rejected.
func DecodeWAV(data []byte) (*Clip, error) {
	if DetectFormat(data) != FormatWAV {
		return nil, fmt.Errorf("not a RIFF/WAVE payload")
	}

	var (
		sampleRate int
		channels   int
		bits       int
		pcm        []byte
	)

	// Walk the RIFF chunks; fmt must precede data.
	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8
		if body+chunkSize > len(data) {
			return nil, fmt.Errorf("truncated %s chunk", chunkID)
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return nil, fmt.Errorf("fmt chunk too short")
			}
			audioFormat := binary.LittleEndian.Uint16(data[body : body+2])
			if audioFormat != 1 {
				return nil, fmt.Errorf("unsupported WAV encoding %d (want PCM)", audioFormat)
			}
			channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bits = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
		case "data":
			pcm = data[body : body+chunkSize]
		}

		// Chunks are word-aligned.
		offset = body + chunkSize
		if chunkSize%2 == 1 {
			offset++
		}
	}

	if sampleRate == 0 || channels == 0 {
		return nil, fmt.Errorf("missing fmt chunk")
	}
	if bits != 16 {
		return nil, fmt.Errorf("unsupported bit depth %d (want 16)", bits)
	}
	if pcm == nil {
		return nil, fmt.Errorf("missing data chunk")
	}
	if len(pcm)%2 != 0 {
		return nil, fmt.Errorf("PCM data length must be even (16-bit samples)")
	}

	samples := make([]int16, len(pcm)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(pcm[i*2 : i*2+2]))
	}

	return &Clip{Samples: samples, SampleRate: sampleRate, Channels: channels}, nil
}

// EncodeWAV serializes a clip as a PCM16 WAV file.
func EncodeWAV(clip *Clip) ([]byte, error) {
	if clip.SampleRate <= 0 || clip.Channels <= 0 {
		return nil, fmt.Errorf("invalid clip: rate=%d channels=%d", clip.SampleRate, clip.Channels)
	}

	dataSize := len(clip.Samples) * 2
	out := make([]byte, 0, 44+dataSize)
	buf := make([]byte, 4)

	u32 := func(v uint32) []byte { binary.LittleEndian.PutUint32(buf, v); return buf[:4] }
	u16 := func(v uint16) []byte { binary.LittleEndian.PutUint16(buf, v); return buf[:2] }

	out = append(out, "RIFF"...)
	out = append(out, u32(uint32(36+dataSize))...)
	out = append(out, "WAVE"...)

	byteRate := clip.SampleRate * clip.Channels * 2
	out = append(out, "fmt "...)
	out = append(out, u32(16)...)
	out = append(out, u16(1)...) // PCM
	out = append(out, u16(uint16(clip.Channels))...)
	out = append(out, u32(uint32(clip.SampleRate))...)
	out = append(out, u32(uint32(byteRate))...)
	out = append(out, u16(uint16(clip.Channels*2))...) // block align
	out = append(out, u16(16)...)                      // bits per sample

	out = append(out, "data"...)
	out = append(out, u32(uint32(dataSize))...)
	for _, s := range clip.Samples {
		out = append(out, u16(uint16(s))...)
	}

	return out, nil
}

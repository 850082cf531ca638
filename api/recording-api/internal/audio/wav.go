package internal_audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	AudioBytesPerSample = 2  // LINEAR16 → 2 bytes per sample
	AudioBitsPerSample  = 16 // LINEAR16 → 16 bits per sample
	AudioPCMFormat      = 1  // WAV PCM format tag

	wavHeaderSize = 44
)

// ErrUnrecognized marks payloads that are not decodable WAV audio.
var ErrUnrecognized = errors.New("unrecognized audio payload")

// Format describes the decoded stream parameters of a WAV payload.
type Format struct {
	SampleRate uint32
	Channels   uint16
	ByteRate   uint32
	DataBytes  uint32
}

// DurationSeconds is the playback length implied by the data chunk size.
func (f Format) DurationSeconds() float64 {
	if f.ByteRate == 0 {
		return 0
	}
	return float64(f.DataBytes) / float64(f.ByteRate)
}

// EncodeWAV wraps LINEAR16 PCM samples in a RIFF/WAVE container.
func EncodeWAV(pcmData []byte, sampleRate uint32, channels uint16) []byte {
	var buf bytes.Buffer
	bps := sampleRate * uint32(channels) * AudioBytesPerSample

	buf.Write([]byte("RIFF"))
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcmData)))
	buf.Write([]byte("WAVE"))

	buf.Write([]byte("fmt "))
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(AudioPCMFormat))
	binary.Write(&buf, binary.LittleEndian, channels)
	binary.Write(&buf, binary.LittleEndian, sampleRate)
	binary.Write(&buf, binary.LittleEndian, bps)
	binary.Write(&buf, binary.LittleEndian, uint16(AudioBytesPerSample*channels))
	binary.Write(&buf, binary.LittleEndian, uint16(AudioBitsPerSample))

	// data chunk
	buf.Write([]byte("data"))
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcmData)))
	buf.Write(pcmData)

	return buf.Bytes()
}

// DecodeWAV walks the RIFF chunk list and returns the stream format. It
// tolerates extra chunks (LIST, fact) between fmt and data, which browser
// recorders routinely emit.
func DecodeWAV(data []byte) (Format, error) {
	if len(data) < wavHeaderSize || !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return Format{}, ErrUnrecognized
	}

	var format Format
	sawFmt := false
	sawData := false

	pos := 12
	for pos+8 <= len(data) {
		chunkID := data[pos : pos+4]
		chunkLen := binary.LittleEndian.Uint32(data[pos+4 : pos+8])
		body := pos + 8
		end := body + int(chunkLen)
		if end > len(data) {
			// Some encoders patch sizes after the fact; a truncated final data
			// chunk is still usable up to the bytes we actually have.
			if bytes.Equal(chunkID, []byte("data")) {
				format.DataBytes = uint32(len(data) - body)
				sawData = true
				break
			}
			return Format{}, fmt.Errorf("%w: chunk %q overruns payload", ErrUnrecognized, chunkID)
		}

		switch {
		case bytes.Equal(chunkID, []byte("fmt ")):
			if chunkLen < 16 {
				return Format{}, fmt.Errorf("%w: short fmt chunk", ErrUnrecognized)
			}
			audioFormat := binary.LittleEndian.Uint16(data[body : body+2])
			if audioFormat != AudioPCMFormat {
				return Format{}, fmt.Errorf("%w: non-PCM format tag %d", ErrUnrecognized, audioFormat)
			}
			format.Channels = binary.LittleEndian.Uint16(data[body+2 : body+4])
			format.SampleRate = binary.LittleEndian.Uint32(data[body+4 : body+8])
			format.ByteRate = binary.LittleEndian.Uint32(data[body+8 : body+12])
			sawFmt = true
		case bytes.Equal(chunkID, []byte("data")):
			format.DataBytes = chunkLen
			sawData = true
		}

		// Chunks are word-aligned.
		pos = end + int(chunkLen%2)
	}

	if !sawFmt || !sawData {
		return Format{}, fmt.Errorf("%w: missing fmt or data chunk", ErrUnrecognized)
	}
	if format.ByteRate == 0 || format.Channels == 0 || format.SampleRate == 0 {
		return Format{}, fmt.Errorf("%w: zeroed fmt fields", ErrUnrecognized)
	}
	return format, nil
}

package internal_audio

import "fmt"

// Source is a captured recording that can be materialized as WAV bytes and
// report its playback duration. The session layer never branches on how the
// audio arrived; each transport gets one adapter.
type Source interface {
	WAV() ([]byte, error)
	DurationSeconds() (float64, error)
}

type wavSource struct {
	data   []byte
	format Format
}

// NewWAVSource validates an already-encoded WAV payload (the browser
// recorder's upload) and exposes it as a Source.
func NewWAVSource(data []byte) (Source, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrUnrecognized)
	}
	format, err := DecodeWAV(data)
	if err != nil {
		return nil, err
	}
	return &wavSource{data: data, format: format}, nil
}

func (s *wavSource) WAV() ([]byte, error) {
	return s.data, nil
}

func (s *wavSource) DurationSeconds() (float64, error) {
	return s.format.DurationSeconds(), nil
}

type pcmSource struct {
	samples    []byte
	sampleRate uint32
	channels   uint16
}

// NewPCMSource adapts raw LINEAR16 samples from capture pipelines that hand
// over (sampleRate, samples) pairs instead of a container.
func NewPCMSource(samples []byte, sampleRate uint32, channels uint16) (Source, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: empty sample buffer", ErrUnrecognized)
	}
	if sampleRate == 0 || channels == 0 {
		return nil, fmt.Errorf("%w: sampleRate=%d channels=%d", ErrUnrecognized, sampleRate, channels)
	}
	return &pcmSource{samples: samples, sampleRate: sampleRate, channels: channels}, nil
}

func (s *pcmSource) WAV() ([]byte, error) {
	return EncodeWAV(s.samples, s.sampleRate, s.channels), nil
}

func (s *pcmSource) DurationSeconds() (float64, error) {
	byteRate := float64(s.sampleRate) * float64(s.channels) * AudioBytesPerSample
	return float64(len(s.samples)) / byteRate, nil
}

package audio

import (
	"fmt"
	"math"
)

// Resample performs simple linear interpolation resampling. Quality is fine
// for reference-audio preparation; synthesis output is never resampled here.
func Resample(samples []int16, inputRate, outputRate int) []int16 {
	if inputRate == outputRate || len(samples) == 0 {
		return samples
	}

	ratio := float64(outputRate) / float64(inputRate)
	outputLength := int(float64(len(samples)) * ratio)
	output := make([]int16, outputLength)

	for i := 0; i < outputLength; i++ {
		srcPos := float64(i) / ratio

		idx0 := int(srcPos)
		idx1 := idx0 + 1
		if idx0 >= len(samples) {
			idx0 = len(samples) - 1
		}
		if idx1 >= len(samples) {
			idx1 = len(samples) - 1
		}

		fraction := srcPos - float64(idx0)
		output[i] = int16(float64(samples[idx0])*(1.0-fraction) + float64(samples[idx1])*fraction)
	}

	return output
}

// DownmixMono averages interleaved channels into a single channel.
func DownmixMono(samples []int16, channels int) []int16 {
	if channels <= 1 {
		return samples
	}

	frames := len(samples) / channels
	mono := make([]int16, frames)
	for i := 0; i < frames; i++ {
		sum := 0
		for ch := 0; ch < channels; ch++ {
			sum += int(samples[i*channels+ch])
		}
		mono[i] = int16(sum / channels)
	}
	return mono
}

// TranscodeToWAV converts a reference-audio payload into mono PCM16 WAV at
// the target sample rate, the encoding the synthesis backends accept.
// Non-WAV inputs (mp3, ogg) are rejected; decoding compressed formats is the
// contributor UI's job before upload.
func TranscodeToWAV(data []byte, targetRate int) ([]byte, error) {
	format := DetectFormat(data)
	if format != FormatWAV {
		return nil, fmt.Errorf("cannot transcode %s payload, reference audio must be PCM WAV", format)
	}

	clip, err := DecodeWAV(data)
	if err != nil {
		return nil, fmt.Errorf("decode reference audio: %w", err)
	}

	mono := DownmixMono(clip.Samples, clip.Channels)
	if clip.SampleRate != targetRate {
		mono = Resample(mono, clip.SampleRate, targetRate)
	}

	return EncodeWAV(&Clip{Samples: mono, SampleRate: targetRate, Channels: 1})
}

// NormalizeAudio scales samples down so the peak does not exceed maxAmplitude.
func NormalizeAudio(samples []int16, maxAmplitude int16) []int16 {
	if len(samples) == 0 {
		return samples
	}

	maxVal := int16(0)
	for _, sample := range samples {
		abs := sample
		if abs < 0 {
			abs = -abs
		}
		if abs > maxVal {
			maxVal = abs
		}
	}

	if maxVal <= maxAmplitude {
		return samples
	}

	ratio := float64(maxAmplitude) / float64(maxVal)
	normalized := make([]int16, len(samples))
	for i, sample := range samples {
		normalized[i] = int16(float64(sample) * ratio)
	}

	return normalized
}

// CalculateRMS calculates the root mean square of audio samples. Useful for
// level and silence detection.
func CalculateRMS(samples []int16) float64 {
	if len(samples) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, sample := range samples {
		sum += float64(sample) * float64(sample)
	}

	return math.Sqrt(sum / float64(len(samples)))
}

// ZeroCrossingRate returns the fraction of adjacent sample pairs that change
// sign. A rough pitch/noisiness proxy used by the acoustic analyzer.
func ZeroCrossingRate(samples []int16) float64 {
	if len(samples) < 2 {
		return 0.0
	}

	crossings := 0
	for i := 1; i < len(samples); i++ {
		if (samples[i-1] >= 0) != (samples[i] >= 0) {
			crossings++
		}
	}
	return float64(crossings) / float64(len(samples)-1)
}

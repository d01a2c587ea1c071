// Package ffmpeg renders waveform peak data from the audio track of local
// media files. The peaks back the waveform view of the player session.
package ffmpeg

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// FFmpeg wraps ffmpeg and ffprobe functionality
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	timeout     time.Duration
}

// New creates a new FFmpeg instance
func New(ffmpegPath, ffprobePath string, timeout time.Duration) *FFmpeg {
	return &FFmpeg{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		timeout:     timeout,
	}
}

// ValidateBinaries checks if ffmpeg and ffprobe are available
func (f *FFmpeg) ValidateBinaries() error {
	if _, err := exec.LookPath(f.ffmpegPath); err != nil {
		return ErrFFmpegNotFound
	}
	if _, err := exec.LookPath(f.ffprobePath); err != nil {
		return ErrFFprobeNotFound
	}
	return nil
}

// GenerateWaveform decodes the audio track of a local media file and reduces
// it to `resolution` normalized peaks.
func (f *FFmpeg) GenerateWaveform(ctx context.Context, inputFile string, resolution int) (*WaveformData, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	metadata, err := f.GetMetadata(ctx, inputFile)
	if err != nil {
		return nil, err
	}
	if !metadata.HasAudio() {
		return nil, NewProcessingError("waveform_generation", inputFile, ErrNoAudioStream, "")
	}

	peaks, err := f.extractWaveformPeaks(ctx, inputFile, resolution)
	if err != nil {
		return nil, err
	}

	return &WaveformData{
		Peaks:      peaks,
		Duration:   metadata.Duration,
		Resolution: len(peaks),
		SampleRate: metadata.SampleRate,
	}, nil
}

// extractWaveformPeaks decodes the audio to raw mono PCM and reduces it
func (f *FFmpeg) extractWaveformPeaks(ctx context.Context, inputFile string, resolution int) ([]float32, error) {
	tempDir := filepath.Dir(inputFile)
	rawFile, err := os.CreateTemp(tempDir, "waveform_*.raw")
	if err != nil {
		return nil, NewProcessingError("temp_file_creation", inputFile, err, "")
	}
	rawPath := rawFile.Name()
	rawFile.Close()
	defer os.Remove(rawPath)

	args := []string{
		"-i", inputFile,
		"-vn",          // Drop the video stream
		"-f", "f32le",  // 32-bit float little-endian
		"-ac", "1",     // Convert to mono
		"-ar", "44100", // Resample to 44.1kHz
		"-y", // Overwrite output
		rawPath,
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, NewProcessingError("pcm_conversion", inputFile, err, stderr.String())
	}

	return reducePCMToPeaks(rawPath, resolution)
}

// reducePCMToPeaks reads raw f32le PCM data and generates normalized peaks
func reducePCMToPeaks(rawPath string, resolution int) ([]float32, error) {
	file, err := os.Open(rawPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	totalSamples := stat.Size() / 4 // 4 bytes per float32 sample
	samplesPerPeak := totalSamples / int64(resolution)
	if samplesPerPeak < 1 {
		samplesPerPeak = 1
	}

	buffer := make([]byte, 4*samplesPerPeak)
	peaks := make([]float32, 0, resolution)
	var globalMax float32

	for i := 0; i < resolution; i++ {
		n, err := io.ReadFull(file, buffer)
		if err == io.EOF {
			break
		}
		if err != nil && err != io.ErrUnexpectedEOF {
			return nil, err
		}

		var peak float32
		for j := 0; j+4 <= n; j += 4 {
			sample := abs(bytesToFloat32(buffer[j : j+4]))
			if sample > peak {
				peak = sample
			}
		}

		peaks = append(peaks, peak)
		if peak > globalMax {
			globalMax = peak
		}

		if err == io.ErrUnexpectedEOF {
			break
		}
	}

	// Normalize to [0,1]. All-silence input stays at zero.
	if globalMax > 0 {
		for i := range peaks {
			peaks[i] /= globalMax
		}
	}

	return peaks, nil
}

// bytesToFloat32 converts 4 little-endian bytes to a float32
func bytesToFloat32(b []byte) float32 {
	bits := binary.LittleEndian.Uint32(b)
	f := math.Float32frombits(bits)
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		return 0
	}
	return f
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

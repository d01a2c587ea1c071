package ffmpeg

// MediaMetadata represents metadata extracted from a media file
type MediaMetadata struct {
	Duration   float64 `json:"duration"`    // Duration in seconds
	SampleRate int     `json:"sample_rate"` // Audio sample rate in Hz
	Channels   int     `json:"channels"`    // Number of audio channels
	Format     string  `json:"format"`      // Container format (mp4, webm, etc.)
	AudioCodec string  `json:"audio_codec"` // Audio codec
	VideoCodec string  `json:"video_codec"` // Video codec, empty for audio-only files
	Size       int64   `json:"size"`        // File size in bytes
}

// HasAudio reports whether the file carries an audio stream to render
func (m *MediaMetadata) HasAudio() bool {
	return m.AudioCodec != ""
}

// WaveformData represents audio waveform peak data
type WaveformData struct {
	Peaks      []float32 `json:"peaks"`      // Normalized peak values (0.0 - 1.0)
	Duration   float64   `json:"duration"`   // Duration in seconds
	Resolution int       `json:"resolution"` // Number of peaks
	SampleRate int       `json:"sample_rate"`
}

package whisperx

import (
	"testing"
	"time"
)

func TestLoaderBudget(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     time.Duration
	}{
		{
			name:     "short audio hits the two second floor",
			duration: 200 * time.Millisecond, // 4x = 800ms, below floor
			want:     MinLoaderTotal / LoaderSteps,
		},
		{
			name:     "ten seconds of audio paces a forty second loader",
			duration: 10 * time.Second,
			want:     400 * time.Millisecond,
		},
		{
			name:     "probe failure uses the default duration",
			duration: 0,
			want:     DefaultMediaDuration * LoaderDurationFactor / LoaderSteps,
		},
		{
			name:     "negative duration treated as probe failure",
			duration: -time.Second,
			want:     DefaultMediaDuration * LoaderDurationFactor / LoaderSteps,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LoaderBudget(tt.duration); got != tt.want {
				t.Errorf("LoaderBudget(%v) = %v, want %v", tt.duration, got, tt.want)
			}
		})
	}
}

func TestIsAudioFile(t *testing.T) {
	audio := []string{"a.mp3", "b.WAV", "/tmp/c.flac", "d.ogg", "e.opus"}
	for _, path := range audio {
		if !IsAudioFile(path) {
			t.Errorf("expected %s to be audio", path)
		}
	}

	notAudio := []string{"a.mp4", "b.txt", "c", "d.srt"}
	for _, path := range notAudio {
		if IsAudioFile(path) {
			t.Errorf("expected %s to not be audio", path)
		}
	}
}

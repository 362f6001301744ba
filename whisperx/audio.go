package whisperx

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultMediaDuration stands in for the real audio length when the
	// probe fails, keeping the loader pacing reasonable
	DefaultMediaDuration = 5 * time.Second

	// MinLoaderTotal is the floor for the whole percentage animation
	MinLoaderTotal = 2 * time.Second

	// LoaderDurationFactor scales audio length into animation length; the
	// loader is a heuristic, not a measurement of server progress
	LoaderDurationFactor = 4

	// LoaderSteps is the number of loader increments (0 up to 99)
	LoaderSteps = 100
)

// ProbeDuration reads the media duration of an audio file using ffprobe.
// The result feeds the loader pacing only; a failure here is recoverable.
func ProbeDuration(path string) (time.Duration, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("failed to access file: %w", err)
	}

	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to probe duration: %w", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q: %w", strings.TrimSpace(string(out)), err)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("non-positive duration %f", seconds)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}

// LoaderBudget derives the per-tick interval of the percentage loader from
// the probed media duration. Total animation time is
// max(MinLoaderTotal, LoaderDurationFactor x duration), split over
// LoaderSteps ticks. Pass duration <= 0 when the probe failed to get the
// default pacing.
func LoaderBudget(duration time.Duration) time.Duration {
	if duration <= 0 {
		duration = DefaultMediaDuration
	}
	total := duration * LoaderDurationFactor
	if total < MinLoaderTotal {
		total = MinLoaderTotal
	}
	return total / LoaderSteps
}

// IsAudioFile checks if a file is an audio file based on extension
func IsAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	audioExts := map[string]bool{
		".mp3": true, ".m4a": true, ".wav": true, ".flac": true,
		".ogg": true, ".wma": true, ".aac": true, ".opus": true,
		".aiff": true, ".webm": true,
	}
	return audioExts[ext]
}

// AudioExtensions lists the extensions offered by the file picker.
func AudioExtensions() []string {
	return []string{".mp3", ".m4a", ".wav", ".flac", ".ogg", ".wma", ".aac", ".opus", ".aiff", ".webm"}
}

// CheckFFprobe checks if ffprobe is installed
func CheckFFprobe() error {
	cmd := exec.Command("ffprobe", "-version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffprobe não encontrado: %w\n\n%s", err, GetFFmpegInstallHelp())
	}
	return nil
}

// GetFFmpegInstallHelp returns platform-specific installation instructions
func GetFFmpegInstallHelp() string {
	switch runtime.GOOS {
	case "darwin":
		return `Instale o FFmpeg no macOS:
  brew install ffmpeg

Ou baixe em: https://ffmpeg.org/download.html`
	case "linux":
		return `Instale o FFmpeg no Linux:
  Ubuntu/Debian: sudo apt install ffmpeg
  Fedora:        sudo dnf install ffmpeg
  Arch:          sudo pacman -S ffmpeg

Ou baixe em: https://ffmpeg.org/download.html`
	case "windows":
		return `Instale o FFmpeg no Windows:
  winget install ffmpeg

Ou com Chocolatey:
  choco install ffmpeg

Ou baixe em: https://ffmpeg.org/download.html
Depois adicione ao PATH.`
	default:
		return `Instale o FFmpeg em: https://ffmpeg.org/download.html`
	}
}

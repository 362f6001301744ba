package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/lKiMl0213/TranscriptorWhisperX/whisperx"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
)

// Build info - set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Styles
var (
	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#22D3EE")).
			MarginBottom(1)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F87171"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8A8A8"))

	headerLogo = `
    ╭─────────────────────────────────────────╮
    │  🎙️  TranscriptorWhisperX               │
    ╰─────────────────────────────────────────╯`
)

func main() {
	versionFlag := flag.Bool("version", false, "Print version information")
	shortVersionFlag := flag.Bool("v", false, "Print version information (short)")
	serverFlag := flag.String("server", "", "WhisperX server base URL (overrides WHISPERX_SERVER_URL)")
	debugFlag := flag.Bool("debug", false, "Log HTTP requests")
	flag.Parse()

	if *versionFlag || *shortVersionFlag {
		fmt.Printf("transcriptor %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		fmt.Printf("  go:     %s\n", runtime.Version())
		fmt.Printf("  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		os.Exit(0)
	}

	// Load .env file if it exists (won't error if missing)
	_ = godotenv.Load()

	baseURL := os.Getenv("WHISPERX_SERVER_URL")
	if *serverFlag != "" {
		baseURL = *serverFlag
	}

	fmt.Println(subtitleStyle.Render(headerLogo))

	// The duration probe needs ffprobe; without it the loader falls back
	// to its default pacing, so this is a warning, not a hard failure.
	if err := whisperx.CheckFFprobe(); err != nil {
		fmt.Println(warnStyle.Render("Aviso: " + err.Error()))
		fmt.Println(infoStyle.Render("A animação de progresso usará a duração padrão."))
	}

	client := whisperx.NewClient(
		whisperx.WithBaseURL(baseURL),
		whisperx.WithDebug(*debugFlag),
	)

	// Main loop
	for {
		if !runSessionWorkflow(client) {
			break
		}
	}

	fmt.Println(subtitleStyle.Render("\n🎙️ Até a próxima!"))
}

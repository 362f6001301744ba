package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lKiMl0213/TranscriptorWhisperX/tui"
	"github.com/lKiMl0213/TranscriptorWhisperX/whisperx"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// runSessionWorkflow walks the user through one transcription: pick an
// audio file, choose the upload options, then hand off to the chat session
// UI. Returns false when the app should exit.
func runSessionWorkflow(client *whisperx.Client) bool {
	// Step 1: Select audio file
	var audioPath string
	startDir, _ := os.Getwd()

	filePicker := huh.NewFilePicker().
		Title("Selecione um arquivo de áudio").
		Description("Navegue e escolha o áudio a transcrever").
		Picking(true).
		CurrentDirectory(startDir).
		ShowHidden(false).
		ShowPermissions(false).
		ShowSize(true).
		Height(15).
		AllowedTypes(whisperx.AudioExtensions()).
		Value(&audioPath)

	err := huh.NewForm(huh.NewGroup(filePicker)).
		WithTheme(huh.ThemeCatppuccin()).
		Run()

	if err != nil {
		if err == huh.ErrUserAborted {
			return false
		}
		fmt.Println(errorStyle.Render("Erro: " + err.Error()))
		return false
	}

	// Step 2: Upload options (the original UI's radio groups and checkboxes)
	request := whisperx.TranscribeRequest{
		FilePath:  audioPath,
		Language:  whisperx.LanguagePT,
		Precision: whisperx.PrecisionGood,
	}

	languageSelect := huh.NewSelect[string]().
		Title("Idioma de saída").
		Options(
			huh.NewOption("Português", whisperx.LanguagePT),
			huh.NewOption("Inglês", whisperx.LanguageEN),
			huh.NewOption("Japonês", whisperx.LanguageJA),
		).
		Value(&request.Language)

	precisionSelect := huh.NewSelect[string]().
		Title("Precisão").
		Options(
			huh.NewOption("Rápido (modelo menor)", whisperx.PrecisionFast),
			huh.NewOption("Bom (equilibrado)", whisperx.PrecisionGood),
			huh.NewOption("Perfeito (mais lento)", whisperx.PrecisionPerfect),
		).
		Value(&request.Precision)

	timestampConfirm := huh.NewConfirm().
		Title("Incluir timestamps?").
		Description("Habilita a exportação em SRT").
		Affirmative("Sim").
		Negative("Não").
		Value(&request.Timestamp)

	diarizeConfirm := huh.NewConfirm().
		Title("Diferenciar narradores?").
		Affirmative("Sim").
		Negative("Não").
		Value(&request.DiarizeSpeakers)

	err = huh.NewForm(
		huh.NewGroup(languageSelect, precisionSelect, timestampConfirm, diarizeConfirm),
	).
		WithTheme(huh.ThemeCatppuccin()).
		Run()

	if err != nil {
		if err == huh.ErrUserAborted {
			return askToContinue()
		}
		fmt.Println(errorStyle.Render("Erro: " + err.Error()))
		return askToContinue()
	}

	// Step 3: Probe the audio duration for the loader pacing. Failure is
	// recovered with the default pacing and never shown as an error.
	var duration time.Duration
	_ = spinner.New().
		Title("Lendo informações do áudio...").
		Action(func() {
			duration, _ = whisperx.ProbeDuration(audioPath)
		}).
		Run()

	fmt.Println(infoStyle.Render("🎧 " + filepath.Base(audioPath)))

	// Step 4: Run the chat session
	if err := tui.RunSession(client, request, whisperx.LoaderBudget(duration)); err != nil {
		fmt.Println(errorStyle.Render("Erro: " + err.Error()))
	}

	return askToContinue()
}

func askToContinue() bool {
	var choice string
	selectNext := huh.NewSelect[string]().
		Title("O que deseja fazer?").
		Options(
			huh.NewOption("Transcrever outro áudio", "another"),
			huh.NewOption("Sair", "exit"),
		).
		Value(&choice)

	err := huh.NewForm(huh.NewGroup(selectNext)).
		WithTheme(huh.ThemeCatppuccin()).
		Run()

	if err != nil {
		return false
	}

	return choice == "another"
}

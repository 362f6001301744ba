package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lKiMl0213/TranscriptorWhisperX/job"
	"github.com/lKiMl0213/TranscriptorWhisperX/whisperx"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	// statusPhaseDuration is how long each fixed status message runs.
	// These phases are not cancellable; they always complete.
	statusPhaseDuration = time.Second

	// loaderSwapDelay separates the 100% display from the completion message
	loaderSwapDelay = 800 * time.Millisecond

	// wordInterval is the cadence of the word-by-word sentence animation
	wordInterval = 25 * time.Millisecond

	// maxRunningPercent caps the loader while the job is still outstanding
	maxRunningPercent = 99

	stopRequestTimeout   = 10 * time.Second
	exportRequestTimeout = 2 * time.Minute
)

// loaderPhase tracks which part of the simulated progress display is active
type loaderPhase int

const (
	loaderIdle loaderPhase = iota
	loaderSending
	loaderAnalyzing
	loaderCounting
	loaderFinished
)

// entryKind classifies a chat log line
type entryKind int

const (
	entryUser entryKind = iota
	entryBot
	entryNotice
	entryError
	entrySuccess
)

type chatEntry struct {
	kind entryKind
	text string
}

// Messages

// statusPhaseMsg marks one fixed status phase as complete
type statusPhaseMsg struct {
	gen  job.Generation
	done loaderPhase
}

// loaderTickMsg advances the percentage loader by one step
type loaderTickMsg struct {
	gen job.Generation
}

// loaderSwapMsg replaces the 100% display with the completion message
type loaderSwapMsg struct {
	gen job.Generation
}

// transcribeResultMsg is sent when the upload request settles
type transcribeResultMsg struct {
	gen  job.Generation
	resp *whisperx.TranscribeResponse
	err  error
}

// stopAckMsg is sent when the best-effort stop call settles
type stopAckMsg struct {
	err error
}

// wordTickMsg reveals the next word of the animated sentence
type wordTickMsg struct {
	gen job.Generation
}

// exportDoneMsg is sent when an export attempt settles
type exportDoneMsg struct {
	format job.ExportFormat
	path   string
	err    error
}

// SessionModel is the Bubble Tea model for one chat-style transcription
// session. It owns the job lifecycle: the send/stop affordance is a pure
// function of the tracker's processing flag, the loader is a simulated
// animation terminated by the shared stop signal, and results are rendered
// as sequential chat bubbles.
type SessionModel struct {
	client  *whisperx.Client
	tracker *job.Tracker
	request whisperx.TranscribeRequest

	// tickInterval is the loader cadence derived from the audio duration
	tickInterval time.Duration

	// Current upload attempt
	gen  job.Generation
	stop *job.StopSignal

	// Chat log; the active loader renders at loaderPos within it
	entries   []chatEntry
	loaderPos int

	// Loader state
	phase         loaderPhase
	sendingOK     bool
	analyzingOK   bool
	percent       int
	terminalFired bool
	swapped       bool
	resolved      bool

	// Response parsed but waiting for the loader to resolve
	pending *whisperx.TranscribeResponse

	// Sentence animation state
	sentences []string
	sentIdx   int
	words     []string
	wordIdx   int
	animating bool

	// UI components
	spinner     spinner.Model
	progressBar progress.Model

	width  int
	height int

	quitting bool
}

// NewSessionModel creates a session that uploads the requested file as soon
// as the program starts. tickInterval comes from whisperx.LoaderBudget.
func NewSessionModel(client *whisperx.Client, request whisperx.TranscribeRequest, tickInterval time.Duration) SessionModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorSecondary)

	pb := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
	)

	if tickInterval <= 0 {
		tickInterval = whisperx.LoaderBudget(0)
	}

	m := SessionModel{
		client:       client,
		tracker:      job.NewTracker(),
		request:      request,
		tickInterval: tickInterval,
		spinner:      sp,
		progressBar:  pb,
		width:        80,
		height:       24,
	}

	m.gen = m.tracker.Begin()
	m.stop = job.NewStopSignal()
	m.phase = loaderSending
	m.entries = []chatEntry{{entryUser, "📎 " + filepath.Base(request.FilePath)}}
	m.loaderPos = len(m.entries)

	return m
}

// Init starts the spinner, the first status phase and the upload itself.
// The request is fired immediately; the status phases and loader only
// simulate progress while it is outstanding.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.statusTimer(m.gen, loaderSending),
		m.transcribeCmd(m.gen),
	)
}

// Update handles messages
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := m.width - 16
		if w > 40 {
			w = 40
		}
		if w > 10 {
			m.progressBar.Width = w
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case statusPhaseMsg:
		return m.handleStatusPhase(msg)

	case loaderTickMsg:
		return m.handleLoaderTick(msg)

	case loaderSwapMsg:
		if msg.gen == m.gen {
			m.swapped = true
		}
		return m, nil

	case transcribeResultMsg:
		return m.handleResult(msg)

	case stopAckMsg:
		if msg.err != nil {
			m.appendEntry(entryNotice, fmt.Sprintf("Aviso: falha ao solicitar parada ao servidor: %v", msg.err))
		}
		return m, nil

	case wordTickMsg:
		return m.handleWordTick(msg)

	case exportDoneMsg:
		if msg.err != nil {
			m.appendEntry(entryError, fmt.Sprintf("Erro ao exportar: %v", msg.err))
		} else {
			m.appendEntry(entrySuccess, "💾 Arquivo exportado: "+msg.path)
		}
		return m, nil
	}

	return m, nil
}

// handleKey dispatches keyboard input
func (m SessionModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "q", "esc":
		if !m.tracker.Processing() {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case "enter":
		return m.primaryAction()

	case "t":
		if m.tracker.CanExport(job.FormatTXT) {
			return m, m.exportCmd(job.FormatTXT)
		}
		return m, nil

	case "s":
		if m.tracker.CanExport(job.FormatSRT) {
			return m, m.exportCmd(job.FormatSRT)
		}
		return m, nil
	}

	return m, nil
}

// primaryAction is the single send/stop affordance. Idle starts a new
// upload of the selected file; processing requests cancellation: the stop
// signal ends the local animation on its next tick, the server is notified
// best-effort, and the interruption notice is appended regardless of how
// that call turns out.
func (m SessionModel) primaryAction() (tea.Model, tea.Cmd) {
	if m.tracker.Processing() {
		m.stop.Stop()
		m.appendEntry(entryNotice, "⏹️ Processamento interrompido pelo usuário.")
		return m, m.stopServerCmd()
	}
	return m.beginGeneration()
}

// beginGeneration resets every per-attempt piece of state and fires a new
// upload under a fresh generation. Responses stamped with an older
// generation are discarded when they eventually arrive.
func (m SessionModel) beginGeneration() (tea.Model, tea.Cmd) {
	m.freezeLoader()

	m.gen = m.tracker.Begin()
	m.stop = job.NewStopSignal()
	m.phase = loaderSending
	m.sendingOK = false
	m.analyzingOK = false
	m.percent = 0
	m.terminalFired = false
	m.swapped = false
	m.resolved = false
	m.pending = nil
	m.sentences = nil
	m.sentIdx = 0
	m.words = nil
	m.wordIdx = 0
	m.animating = false

	m.appendEntry(entryUser, "📎 "+filepath.Base(m.request.FilePath))
	m.loaderPos = len(m.entries)

	return m, tea.Batch(
		m.statusTimer(m.gen, loaderSending),
		m.transcribeCmd(m.gen),
	)
}

// freezeLoader turns the previous attempt's loader display into plain chat
// history so a restart does not erase it.
func (m *SessionModel) freezeLoader() {
	if m.phase == loaderIdle {
		return
	}
	var frozen []chatEntry
	if m.sendingOK {
		frozen = append(frozen, chatEntry{entryNotice, "📤 Enviando arquivo... OK"})
	}
	if m.analyzingOK {
		frozen = append(frozen, chatEntry{entryNotice, "🔎 Analisando áudio... OK"})
	}
	if m.swapped {
		frozen = append(frozen, chatEntry{entryNotice, "✅ Transcrição concluída."})
	}
	if len(frozen) == 0 {
		return
	}
	tail := make([]chatEntry, len(m.entries[m.loaderPos:]))
	copy(tail, m.entries[m.loaderPos:])
	m.entries = append(append(m.entries[:m.loaderPos], frozen...), tail...)
}

// handleStatusPhase completes one fixed status message and starts the next
// stage. The stop signal is deliberately not consulted here: both phases
// always run to completion.
func (m SessionModel) handleStatusPhase(msg statusPhaseMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}

	switch msg.done {
	case loaderSending:
		m.sendingOK = true
		m.phase = loaderAnalyzing
		return m, m.statusTimer(m.gen, loaderAnalyzing)

	case loaderAnalyzing:
		m.analyzingOK = true
		m.phase = loaderCounting
		return m, m.loaderTimer(m.gen)
	}

	return m, nil
}

// handleLoaderTick advances the simulated percentage. The first tick that
// observes the stop signal performs the full terminal sequence: 100% now,
// completion message after a fixed delay, and immediate resolution so a
// parsed response may render. A stop raised before the first tick takes the
// same path; there is no separate already-done shortcut.
func (m SessionModel) handleLoaderTick(msg loaderTickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || m.phase != loaderCounting {
		return m, nil
	}

	if m.stop.Stopped() {
		m.percent = 100
		m.terminalFired = true
		m.phase = loaderFinished
		m.resolved = true

		swap := tea.Tick(loaderSwapDelay, func(time.Time) tea.Msg {
			return loaderSwapMsg{gen: msg.gen}
		})

		if m.pending != nil {
			next, cmd := m.settleAndRender()
			return next, tea.Batch(swap, cmd)
		}
		return m, swap
	}

	if m.percent < maxRunningPercent {
		m.percent++
	}
	return m, m.loaderTimer(m.gen)
}

// handleResult processes the settled upload request. Stale generations are
// dropped with a notice. Failures reset the job and surface immediately.
// Successes are held until the loader resolves, so the 100%-to-completion
// sequence always precedes the rendered text.
func (m SessionModel) handleResult(msg transcribeResultMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		m.appendEntry(entryNotice, "Resposta de uma transcrição anterior descartada.")
		return m, nil
	}

	if msg.err != nil {
		m.stop.Stop()
		m.tracker.Fail(msg.gen)
		m.appendEntry(entryError, fmt.Sprintf("Erro ao enviar áudio: %v", msg.err))
		return m, nil
	}

	m.pending = msg.resp
	m.stop.Stop()

	if m.resolved {
		next, cmd := m.settleAndRender()
		return next, cmd
	}
	return m, nil
}

// settleAndRender installs the job record and starts rendering the text
func (m SessionModel) settleAndRender() (SessionModel, tea.Cmd) {
	resp := m.pending
	m.pending = nil

	m.tracker.Settle(m.gen, job.Job{
		ID:              resp.JobID,
		TimestampExport: resp.TimestampEnabled,
	})

	if resp.Aborted {
		m.appendEntry(entryNotice, "Transcrição parcial: o servidor interrompeu o processamento.")
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		m.appendEntry(entryNotice, "⚠️ Nenhum texto recebido.")
		return m, nil
	}

	if resp.TimestampEnabled {
		// Timestamped output keeps its line structure; render verbatim
		m.appendEntry(entryBot, resp.Text)
		return m, nil
	}

	m.sentences = whisperx.SplitSentences(text)
	if len(m.sentences) == 0 {
		m.appendEntry(entryNotice, "⚠️ Nenhum texto recebido.")
		return m, nil
	}

	m.animating = true
	m.sentIdx = 0
	m.words = whisperx.Words(m.sentences[0])
	m.wordIdx = 0
	return m, m.wordTimer(m.gen)
}

// handleWordTick reveals the next word; a finished sentence becomes a chat
// entry and the next one starts only then, keeping playback sequential.
func (m SessionModel) handleWordTick(msg wordTickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || !m.animating {
		return m, nil
	}

	m.wordIdx++
	if m.wordIdx < len(m.words) {
		return m, m.wordTimer(m.gen)
	}

	m.appendEntry(entryBot, m.sentences[m.sentIdx])
	m.sentIdx++
	if m.sentIdx >= len(m.sentences) {
		m.animating = false
		return m, nil
	}

	m.words = whisperx.Words(m.sentences[m.sentIdx])
	m.wordIdx = 0
	return m, m.wordTimer(m.gen)
}

// Commands

func (m SessionModel) statusTimer(gen job.Generation, phase loaderPhase) tea.Cmd {
	return tea.Tick(statusPhaseDuration, func(time.Time) tea.Msg {
		return statusPhaseMsg{gen: gen, done: phase}
	})
}

func (m SessionModel) loaderTimer(gen job.Generation) tea.Cmd {
	return tea.Tick(m.tickInterval, func(time.Time) tea.Msg {
		return loaderTickMsg{gen: gen}
	})
}

func (m SessionModel) wordTimer(gen job.Generation) tea.Cmd {
	return tea.Tick(wordInterval, func(time.Time) tea.Msg {
		return wordTickMsg{gen: gen}
	})
}

func (m SessionModel) transcribeCmd(gen job.Generation) tea.Cmd {
	client := m.client
	request := m.request
	return func() tea.Msg {
		resp, err := client.Transcribe(context.Background(), &request)
		return transcribeResultMsg{gen: gen, resp: resp, err: err}
	}
}

func (m SessionModel) stopServerCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), stopRequestTimeout)
		defer cancel()
		return stopAckMsg{err: client.Stop(ctx)}
	}
}

func (m SessionModel) exportCmd(format job.ExportFormat) tea.Cmd {
	client := m.client
	current, ok := m.tracker.Current()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportRequestTimeout)
		defer cancel()

		blob, err := client.Export(ctx, current.ID, string(format))
		if err != nil {
			return exportDoneMsg{format: format, err: err}
		}

		name := "transcricao." + string(format)
		if err := os.WriteFile(name, blob, 0o644); err != nil {
			return exportDoneMsg{format: format, err: err}
		}
		return exportDoneMsg{format: format, path: name}
	}
}

func (m *SessionModel) appendEntry(kind entryKind, text string) {
	m.entries = append(m.entries, chatEntry{kind: kind, text: text})
}

// View renders the UI
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(GetHeader())
	b.WriteString("\n")

	for i, entry := range m.entries {
		if i == m.loaderPos {
			b.WriteString(m.renderLoader())
			b.WriteString("\n")
		}
		b.WriteString(m.renderEntry(entry))
		b.WriteString("\n")
	}
	if m.loaderPos >= len(m.entries) {
		b.WriteString(m.renderLoader())
		b.WriteString("\n")
	}

	if m.animating {
		partial := strings.Join(m.words[:m.wordIdx], " ")
		b.WriteString(BotBubbleStyle.Render(partial + "▌"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m SessionModel) renderEntry(entry chatEntry) string {
	switch entry.kind {
	case entryUser:
		bubble := UserBubbleStyle.Render(entry.text)
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, bubble)
	case entryBot:
		return BotBubbleStyle.MaxWidth(m.width).Render(entry.text)
	case entryError:
		return ErrorStyle.Render("❌ " + entry.text)
	case entrySuccess:
		return SuccessStyle.Render(entry.text)
	default:
		return NoticeStyle.Render(entry.text)
	}
}

// renderLoader draws the simulated progress block for the active attempt
func (m SessionModel) renderLoader() string {
	if m.phase == loaderIdle {
		return ""
	}

	var lines []string

	if m.sendingOK {
		lines = append(lines, BodyStyle.Render("📤 Enviando arquivo... ")+SuccessStyle.Render("OK"))
	} else {
		lines = append(lines, m.spinner.View()+BodyStyle.Render("📤 Enviando arquivo..."))
	}

	if m.phase >= loaderAnalyzing {
		if m.analyzingOK {
			lines = append(lines, BodyStyle.Render("🔎 Analisando áudio... ")+SuccessStyle.Render("OK"))
		} else {
			lines = append(lines, m.spinner.View()+BodyStyle.Render("🔎 Analisando áudio..."))
		}
	}

	if m.phase >= loaderCounting {
		if m.swapped {
			lines = append(lines, SuccessStyle.Render("✅ Transcrição concluída."))
		} else {
			bar := m.progressBar.ViewAs(float64(m.percent) / 100)
			lines = append(lines, bar+MutedStyle.Render(fmt.Sprintf(" %d%%", m.percent)))
		}
	}

	return LoaderBoxStyle.Render(strings.Join(lines, "\n"))
}

// renderHelp shows the key bindings; the primary affordance depends only on
// whether a job is processing.
func (m SessionModel) renderHelp() string {
	type binding struct {
		key  string
		desc string
	}

	var keys []binding
	if m.tracker.Processing() {
		keys = append(keys, binding{"enter", "⏹ Parar"})
	} else {
		keys = append(keys, binding{"enter", "📤 Enviar novamente"})
		if m.tracker.CanExport(job.FormatTXT) {
			keys = append(keys, binding{"t", "Exportar TXT"})
		}
		if m.tracker.CanExport(job.FormatSRT) {
			keys = append(keys, binding{"s", "Exportar SRT"})
		}
		keys = append(keys, binding{"q", "Sair"})
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, HelpKeyStyle.Render(k.key)+" "+HelpDescStyle.Render(k.desc))
	}
	return strings.Join(parts, HelpDescStyle.Render("  |  "))
}

// IsProcessing reports whether the current upload is still outstanding.
func (m SessionModel) IsProcessing() bool { return m.tracker.Processing() }

// RunSession runs the chat session UI until the user quits
func RunSession(client *whisperx.Client, request whisperx.TranscribeRequest, tickInterval time.Duration) error {
	model := NewSessionModel(client, request, tickInterval)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

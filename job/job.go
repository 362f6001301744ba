// Package job tracks the single transcription job a session may have in
// flight, plus the cooperative stop signal used to end the local progress
// animation early.
package job

import "sync"

// Generation identifies one upload attempt. A new Begin supersedes every
// earlier generation; results stamped with a stale generation are discarded.
type Generation uint64

// Job holds the metadata of the last completed transcription request.
type Job struct {
	// ID is the server-issued job identifier, empty when no job completed.
	ID string

	// TimestampExport reports whether the server produced timestamp data,
	// which enables the SRT export format. Never true while ID is empty.
	TimestampExport bool
}

// ExportFormat is a server-side export format selector.
type ExportFormat string

const (
	FormatTXT ExportFormat = "txt"
	FormatSRT ExportFormat = "srt"
)

// Tracker owns the processing flag and the current Job record. It is safe
// for use from tea.Cmd goroutines.
type Tracker struct {
	mu         sync.Mutex
	gen        Generation
	processing bool
	job        Job
}

// NewTracker returns an idle tracker with no known job.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin starts a new upload attempt: the previous job record is invalidated,
// the processing flag is raised, and a fresh generation is issued.
func (t *Tracker) Begin() Generation {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
	t.processing = true
	t.job = Job{}
	return t.gen
}

// Settle records a successful response for the given generation. It reports
// false, changing nothing, when the generation has been superseded by a newer
// Begin. An empty job id clears the timestamp flag so the Job invariant holds
// even against a malformed response.
func (t *Tracker) Settle(gen Generation, job Job) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen {
		return false
	}
	if job.ID == "" {
		job.TimestampExport = false
	}
	t.processing = false
	t.job = job
	return true
}

// Fail records a failed attempt for the given generation, resetting the job
// record. Stale generations are ignored, as in Settle.
func (t *Tracker) Fail(gen Generation) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen {
		return false
	}
	t.processing = false
	t.job = Job{}
	return true
}

// Processing reports whether an upload is currently outstanding.
func (t *Tracker) Processing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.processing
}

// Current returns the last completed job and whether one is known.
func (t *Tracker) Current() (Job, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.job, t.job.ID != ""
}

// CanExport reports whether the given format may be requested right now.
// Export requires a known job id; SRT additionally requires timestamp data.
func (t *Tracker) CanExport(format ExportFormat) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.job.ID == "" {
		return false
	}
	if format == FormatSRT {
		return t.job.TimestampExport
	}
	return true
}

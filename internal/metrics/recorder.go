package metrics

import "time"

// OutcomeLabel enumerates the final status of a build mode.
type OutcomeLabel string

const (
	OutcomeSuccess  OutcomeLabel = "success"
	OutcomeFailed   OutcomeLabel = "failed"
	OutcomeCanceled OutcomeLabel = "canceled"
)

// Recorder defines observability hooks for site builds. Mode is one of
// "pages", "index" or "rss".
type Recorder interface {
	ObserveBuildDuration(mode string, d time.Duration)
	IncDocumentsParsed(mode string)
	IncFilesWritten(mode string)
	IncBuildOutcome(mode string, outcome OutcomeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(string, time.Duration) {}
func (NoopRecorder) IncDocumentsParsed(string)                  {}
func (NoopRecorder) IncFilesWritten(string)                     {}
func (NoopRecorder) IncBuildOutcome(string, OutcomeLabel)       {}

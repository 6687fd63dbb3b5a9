package site

import (
	"fmt"
	"time"
)

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// BuildReport captures high-level metrics about one site build.
type BuildReport struct {
	Package         string
	Topics          int
	Articles        int
	Start           time.Time
	End             time.Time
	Errors          []error // fatal errors causing build abortion (at most one today)
	Warnings        []error // non-fatal issues (skipped inputs, index gaps)
	StageDurations  map[string]time.Duration
	StageErrorKinds map[StageName]StageErrorKind
	RenderedPages   int
	Outcome         BuildOutcome
}

func newBuildReport(pkg string) *BuildReport {
	return &BuildReport{
		Package:         pkg,
		Start:           time.Now(),
		StageDurations:  make(map[string]time.Duration),
		StageErrorKinds: make(map[StageName]StageErrorKind),
	}
}

func (r *BuildReport) finish() { r.End = time.Now() }

// deriveOutcome sets Outcome from the recorded errors and warnings.
func (r *BuildReport) deriveOutcome() {
	for _, e := range r.Errors {
		if se, ok := e.(*StageError); ok && se.Kind == StageErrorCanceled {
			r.Outcome = OutcomeCanceled
			return
		}
	}
	if len(r.Errors) > 0 {
		r.Outcome = OutcomeFailed
		return
	}
	if len(r.Warnings) > 0 {
		r.Outcome = OutcomeWarning
		return
	}
	r.Outcome = OutcomeSuccess
}

// Summary returns a human-readable single-line summary.
func (r *BuildReport) Summary() string {
	dur := r.End.Sub(r.Start)
	return fmt.Sprintf("package=%s topics=%d articles=%d pages=%d duration=%s errors=%d warnings=%d outcome=%s",
		r.Package, r.Topics, r.Articles, r.RenderedPages, dur.Truncate(time.Millisecond),
		len(r.Errors), len(r.Warnings), r.Outcome)
}

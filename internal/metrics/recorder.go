// Package metrics provides build observability through a small Recorder
// interface. Components receive a Recorder by injection and default to
// NoopRecorder, so metrics cost nothing unless a real implementation is
// wired in (the preview server does this).
package metrics

import "time"

// Recorder receives build-level measurements.
type Recorder interface {
	// ObserveBuildDuration records the wall time of one complete build.
	ObserveBuildDuration(d time.Duration)
	// ObserveStageDuration records the wall time of one build stage.
	ObserveStageDuration(stage string, d time.Duration)
	// IncBuildOutcome counts a finished build by outcome label.
	IncBuildOutcome(outcome string)
	// AddPagesRendered counts pages written during a build.
	AddPagesRendered(n int)
}

// NoopRecorder is the default Recorder; all methods inline to nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration)          {}
func (NoopRecorder) ObserveStageDuration(string, time.Duration)  {}
func (NoopRecorder) IncBuildOutcome(string)                      {}
func (NoopRecorder) AddPagesRendered(int)                        {}

package site

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DataStrategist/pkgdown/internal/docs"
	"github.com/DataStrategist/pkgdown/internal/manifest"
	"github.com/DataStrategist/pkgdown/internal/render"
	"github.com/DataStrategist/pkgdown/internal/sections"
)

// Stage is a discrete unit of work in the site build.
type Stage func(ctx context.Context, bs *BuildState) error

// Skip reasons for optional inputs; surfaced as warning stage errors.
var (
	errNoTopics    = errors.New("no topic files found, skipping reference")
	errNoVignettes = errors.New("no vignettes directory, skipping articles")
	errNoNews      = errors.New("no changelog file, skipping news")
)

// StageErrorKind classifies a stage failure.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying the stage it arose in and the
// underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}
func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// BuildState carries mutable state across stages. Stages write only into
// their own result fields; the package context itself stays read-only.
type BuildState struct {
	Pkg      *docs.PackageContext
	Renderer *render.Renderer
	Report   *BuildReport
	Manifest *manifest.Manifest

	// ReferenceIndex and ArticleIndex are produced by their stages and kept
	// for tests and future consumers (search indexing).
	ReferenceIndex []sections.Resolved
	ArticleIndex   []sections.Resolved
}

// runStages executes stages in order, recording timing and stopping on the
// first fatal or canceled error. Warning-kind stage errors are recorded on
// the report and the build continues.
func runStages(ctx context.Context, b *Builder, bs *BuildState, stages []StageDef) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.Name, ctx.Err())
			bs.Report.StageErrorKinds[st.Name] = se.Kind
			bs.Report.Errors = append(bs.Report.Errors, se)
			return se
		default:
		}
		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)
		bs.Report.StageDurations[string(st.Name)] = dur
		b.recorder.ObserveStageDuration(string(st.Name), dur)
		if err == nil {
			continue
		}
		var se *StageError
		if !errors.As(err, &se) {
			// Unclassified errors abort the build.
			se = newFatalStageError(st.Name, err)
		}
		bs.Report.StageErrorKinds[st.Name] = se.Kind
		switch se.Kind {
		case StageErrorWarning:
			bs.Report.Warnings = append(bs.Report.Warnings, se)
		default:
			bs.Report.Errors = append(bs.Report.Errors, se)
			return se
		}
	}
	return nil
}

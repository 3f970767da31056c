package pipeline

import (
	"errors"
	"fmt"
)

// Stage identifies where in the acquisition sequence a run failed.
type Stage string

const (
	StageScratch Stage = "scratch"
	StageFetch   Stage = "fetch"
	StageDecode  Stage = "decode"
	StageDetect  Stage = "detect"
	StageResolve Stage = "resolve"
	StageSample  Stage = "sample"
	StageAverage Stage = "average"
)

// ErrNoFaceDetected means the detection service answered but found no face.
var ErrNoFaceDetected = errors.New("no face detected in image")

// StageError wraps a failure with the pipeline stage that produced it.
// Runs fail fast: the first stage error is the run's only outcome.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}

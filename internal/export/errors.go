package export

import "fmt"

// Stage names the pipeline step that failed.
type Stage string

const (
	StageBuild    Stage = "build"
	StageOpen     Stage = "open"
	StageLoad     Stage = "load"
	StageSettle   Stage = "settle"
	StageMeasure  Stage = "measure"
	StageCapture  Stage = "capture"
	StagePaginate Stage = "paginate"
)

// PreconditionError is returned when the record cannot be exported yet. Nothing was attempted.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

// PipelineError reports a failed export stage.
// FallbackHTML is the standalone document with a print trigger, empty when the document could not be built.
type PipelineError struct {
	Stage        Stage
	Cause        error
	FallbackHTML string
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("export failed at %s: %v", e.Stage, e.Cause)
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}

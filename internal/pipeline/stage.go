package pipeline

import "fmt"

// Stage is the position of one job in the generation pipeline
type Stage string

const (
	StagePending          Stage = "PENDING"
	StageTemplateResolved Stage = "TEMPLATE_RESOLVED"
	StagePrompted         Stage = "PROMPTED"
	StageGenerated        Stage = "GENERATED"
	StagePersisted        Stage = "PERSISTED"
	StageRendered         Stage = "RENDERED"
	StageFailed           Stage = "FAILED"
)

// StageError records the stage a job was in when it failed
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

package pipeline

import (
	"context"

	"github.com/khrees2412/cvforge/pkg/logging"
	"github.com/khrees2412/cvforge/pkg/models"
)

// Observer receives progress events for one batch. Calls happen on the
// goroutine running the batch.
type Observer interface {
	BatchStarted(total int)
	StageChanged(index int, job models.JobPosting, stage Stage)
	JobFailed(index int, job models.JobPosting, stage Stage, err error)
	JobSucceeded(index int, result models.CVResult)
	BatchFinished(succeeded, total int)
}

// NopObserver ignores every event
type NopObserver struct{}

func (NopObserver) BatchStarted(int) {}
func (NopObserver) StageChanged(int, models.JobPosting, Stage) {}
func (NopObserver) JobFailed(int, models.JobPosting, Stage, error) {}
func (NopObserver) JobSucceeded(int, models.CVResult) {}
func (NopObserver) BatchFinished(int, int) {}

// MultiObserver fans events out to several observers in order
type MultiObserver []Observer

func (m MultiObserver) BatchStarted(total int) {
	for _, o := range m {
		o.BatchStarted(total)
	}
}

func (m MultiObserver) StageChanged(index int, job models.JobPosting, stage Stage) {
	for _, o := range m {
		o.StageChanged(index, job, stage)
	}
}

func (m MultiObserver) JobFailed(index int, job models.JobPosting, stage Stage, err error) {
	for _, o := range m {
		o.JobFailed(index, job, stage, err)
	}
}

func (m MultiObserver) JobSucceeded(index int, result models.CVResult) {
	for _, o := range m {
		o.JobSucceeded(index, result)
	}
}

func (m MultiObserver) BatchFinished(succeeded, total int) {
	for _, o := range m {
		o.BatchFinished(succeeded, total)
	}
}

// LogObserver writes batch progress to a structured logger
type LogObserver struct {
	log *logging.Logger
}

func NewLogObserver(log *logging.Logger) *LogObserver {
	if log == nil {
		log = logging.NewNop()
	}
	return &LogObserver{log: log}
}

func (o *LogObserver) BatchStarted(total int) {
	o.log.Info("generating CVs", "jobs", total)
}

func (o *LogObserver) StageChanged(index int, job models.JobPosting, stage Stage) {
	o.log.Debug("job stage changed", "index", index, "title", job.Title, "company", job.Company, "stage", string(stage))
}

func (o *LogObserver) JobFailed(index int, job models.JobPosting, stage Stage, err error) {
	if stage == StageRendered {
		o.log.Warn("pdf rendering failed, keeping text cv", "title", job.Title, "company", job.Company, "error", err)
		return
	}
	o.log.Error("skipping job due to error", "title", job.Title, "company", job.Company, "stage", string(stage), "error", err)
}

func (o *LogObserver) JobSucceeded(index int, result models.CVResult) {
	o.log.Info("cv saved", "title", result.Title, "company", result.Company, "language", result.Language,
		"txt", result.CVTxt, "pdf", result.CVFilename, "rendered", result.Rendered)
}

func (o *LogObserver) BatchFinished(succeeded, total int) {
	o.log.Info("batch completed", "succeeded", succeeded, "jobs", total)
}

// Recorder persists successful results
type Recorder interface {
	Record(ctx context.Context, result models.CVResult) error
}

// RecordingObserver stores every successful result, logging failures
type RecordingObserver struct {
	NopObserver
	rec Recorder
	log *logging.Logger
}

func NewRecordingObserver(rec Recorder, log *logging.Logger) *RecordingObserver {
	if log == nil {
		log = logging.NewNop()
	}
	return &RecordingObserver{rec: rec, log: log}
}

func (o *RecordingObserver) JobSucceeded(index int, result models.CVResult) {
	if err := o.rec.Record(context.Background(), result); err != nil {
		o.log.Warn("failed to record generation", "title", result.Title, "company", result.Company, "error", err)
	}
}

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-todo-keeper/internal/service"
	"github.com/MKhiriev/go-todo-keeper/models"
)

// SyncJobWorker runs the client sync job for as long as the application is
// up. The first pass starts right away so a restored session is brought up
// to date without waiting a whole interval.
type SyncJobWorker struct {
	job      service.ClientSyncJob
	interval time.Duration
}

func NewSyncJobWorker(job service.ClientSyncJob, interval time.Duration) *SyncJobWorker {
	return &SyncJobWorker{job: job, interval: interval}
}

func (w *SyncJobWorker) Run(ctx context.Context) {
	w.job.Start(ctx, w.interval)
	w.job.Trigger(models.TriggerTimer)
}

func (w *SyncJobWorker) Stop() {
	w.job.Stop()
}

package workers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-todo-keeper/models"
)

type fakeSyncJob struct {
	started []time.Duration
	reasons []models.TriggerReason
	stopped int
}

func (j *fakeSyncJob) Trigger(reason models.TriggerReason) { j.reasons = append(j.reasons, reason) }
func (j *fakeSyncJob) Start(_ context.Context, interval time.Duration) {
	j.started = append(j.started, interval)
}
func (j *fakeSyncJob) Stop() { j.stopped++ }

func TestSyncJobWorker(t *testing.T) {
	job := &fakeSyncJob{}
	w := NewSyncJobWorker(job, time.Minute)

	w.Run(context.Background())
	assert.Equal(t, []time.Duration{time.Minute}, job.started)
	assert.Equal(t, []models.TriggerReason{models.TriggerTimer}, job.reasons, "the first pass does not wait for the ticker")

	w.Stop()
	assert.Equal(t, 1, job.stopped)
}

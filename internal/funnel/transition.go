package funnel

import (
	"time"

	"job-funnel-service/internal/entity"
)

// Stamp merges one timestamp slot: an explicit value wins, an already set value is kept,
// otherwise the slot gets now.
func Stamp(current, explicit *time.Time, now time.Time) *time.Time {
	if explicit != nil {
		return explicit
	}
	if current != nil {
		return current
	}
	return &now
}

// ApplyCreate stamps a freshly built job. Explicit values supplied by the caller are already
// in job.StageTimestamps, so anything set there counts as explicit.
//
// A job counts as applied the moment it is recorded, so applied_at is stamped whatever the
// initial stage is. No other stage gets that treatment.
func (c *Catalog) ApplyCreate(job *entity.Job, stage entity.Stage, now time.Time) {
	job.StageID = stage.ID
	job.AppliedAt = Stamp(job.AppliedAt, nil, now)
	if f, ok := c.TimestampFieldFor(stage.Name); ok {
		job.Set(f, Stamp(job.Get(f), nil, now))
	}
	job.CreatedAt = now
	job.UpdatedAt = now
}

// ApplyStageChange moves job to stage and stamps that stage's slot only. explicit holds the
// timestamp values the caller sent with the same update.
func (c *Catalog) ApplyStageChange(job *entity.Job, stage entity.Stage, explicit entity.StageTimestamps, now time.Time) {
	job.StageID = stage.ID
	if f, ok := c.TimestampFieldFor(stage.Name); ok {
		job.Set(f, Stamp(job.Get(f), explicit.Get(f), now))
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"job-funnel-service/internal/entity"
	"job-funnel-service/internal/funnel"
	"job-funnel-service/internal/logging"
)

// Порт репозитория (реализация: postgresql.JobRepository)
type JobRepository interface {
	Insert(ctx context.Context, job *entity.Job) (*entity.Job, error)
	GetByID(ctx context.Context, id int64) (*entity.Job, error)
	LockByID(ctx context.Context, id int64) (*entity.Job, error)
	ListByOwner(ctx context.Context, userID int64, stageID *int64) ([]entity.Job, error)
	Update(ctx context.Context, job *entity.Job) error
}

// Transactor runs fn in one store transaction (реализация: postgresql.Transactor).
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type JobService struct {
	repo    JobRepository
	tx      Transactor
	catalog *funnel.Catalog
	log     logging.Logger
	now     func() time.Time
}

// NewJobService wires the job use cases. A nil now means UTC wall clock.
func NewJobService(repo JobRepository, tx Transactor, catalog *funnel.Catalog, log logging.Logger, now func() time.Time) *JobService {
	if now == nil {
		now = utcNow
	}
	return &JobService{repo: repo, tx: tx, catalog: catalog, log: log, now: now}
}

func utcNow() time.Time { return time.Now().UTC() }

type CreateJobRequest struct {
	StageID  *int64
	Company  string
	Position string
	Source   *string
	Salary   *string
	Stack    *string
	Notes    *string
	Priority *string

	// Timestamps holds caller-supplied stage times; they win over automatic stamping.
	Timestamps entity.StageTimestamps
}

// UpdateJobRequest is a partial update. Absent fields are left alone; a null optional text
// field clears it. Timestamps are honoured only for the slot of the stage being entered.
type UpdateJobRequest struct {
	StageID  *int64
	Company  entity.Optional[string]
	Position entity.Optional[string]
	Source   entity.Optional[string]
	Salary   entity.Optional[string]
	Stack    entity.Optional[string]
	Notes    entity.Optional[string]
	Priority entity.Optional[string]

	Timestamps entity.StageTimestamps
}

func (s *JobService) ListJobs(ctx context.Context, userID int64, stageID *int64) ([]entity.Job, error) {
	return s.repo.ListByOwner(ctx, userID, stageID)
}

// GetJob returns the job if userID owns it. Existence is checked before ownership.
func (s *JobService) GetJob(ctx context.Context, userID, jobID int64) (*entity.Job, error) {
	job, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.UserID != userID {
		return nil, entity.ErrForbidden
	}
	return job, nil
}

func (s *JobService) CreateJob(ctx context.Context, userID int64, req CreateJobRequest) (*entity.Job, error) {
	company, err := requiredText("company", req.Company, maxCompanyLen)
	if err != nil {
		return nil, err
	}
	position, err := requiredText("position", req.Position, maxPositionLen)
	if err != nil {
		return nil, err
	}
	for _, f := range []struct {
		name  string
		v     *string
		limit int
	}{
		{"source", req.Source, maxSourceLen},
		{"salary", req.Salary, maxSalaryLen},
		{"stack", req.Stack, maxStackLen},
		{"priority", req.Priority, maxPriorityLen},
	} {
		if f.v != nil {
			if err := checkLen(f.name, *f.v, f.limit); err != nil {
				return nil, err
			}
		}
	}

	stage := s.catalog.Default()
	if req.StageID != nil {
		if stage, err = s.stageByID(*req.StageID); err != nil {
			return nil, err
		}
	}

	job := &entity.Job{
		UserID:          userID,
		Company:         company,
		Position:        position,
		Source:          req.Source,
		Salary:          req.Salary,
		Stack:           req.Stack,
		Notes:           req.Notes,
		Priority:        req.Priority,
		StageTimestamps: req.Timestamps,
	}
	s.catalog.ApplyCreate(job, stage, s.now())

	job, err = s.repo.Insert(ctx, job)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "job created", "job_id", job.ID, "user_id", userID, "stage", stage.Name)
	return job, nil
}

// UpdateJob applies req under a row lock. Nothing is written unless every check passes.
func (s *JobService) UpdateJob(ctx context.Context, userID, jobID int64, req UpdateJobRequest) (*entity.Job, error) {
	var updated *entity.Job

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		job, err := s.repo.LockByID(ctx, jobID)
		if err != nil {
			return err
		}
		// владелец проверяется раньше любой валидации
		if job.UserID != userID {
			return entity.ErrForbidden
		}

		var (
			stage    entity.Stage
			hasStage bool
		)
		if req.StageID != nil {
			if stage, err = s.stageByID(*req.StageID); err != nil {
				return err
			}
			hasStage = true
		}
		if err := applyRequired("company", req.Company, maxCompanyLen, &job.Company); err != nil {
			return err
		}
		if err := applyRequired("position", req.Position, maxPositionLen, &job.Position); err != nil {
			return err
		}
		if err := errors.Join(
			applyOptional("source", req.Source, maxSourceLen, &job.Source),
			applyOptional("salary", req.Salary, maxSalaryLen, &job.Salary),
			applyOptional("stack", req.Stack, maxStackLen, &job.Stack),
			applyOptional("notes", req.Notes, 0, &job.Notes),
			applyOptional("priority", req.Priority, maxPriorityLen, &job.Priority),
		); err != nil {
			return err
		}

		now := s.now()
		if hasStage {
			s.catalog.ApplyStageChange(job, stage, req.Timestamps, now)
		}
		job.UpdatedAt = now

		if err := s.repo.Update(ctx, job); err != nil {
			return err
		}
		updated = job
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "job updated", "job_id", jobID, "user_id", userID, "stage_id", updated.StageID)
	return updated, nil
}

func (s *JobService) stageByID(id int64) (entity.Stage, error) {
	stage, err := s.catalog.ByID(id)
	if errors.Is(err, funnel.ErrUnknownStage) {
		return entity.Stage{}, fmt.Errorf("%w: stage_id %d", entity.ErrInvalidReference, id)
	}
	return stage, err
}

// Column widths of the jobs table; notes is unbounded.
const (
	maxCompanyLen  = 128
	maxPositionLen = 128
	maxSourceLen   = 64
	maxSalaryLen   = 64
	maxStackLen    = 128
	maxPriorityLen = 16
)

func checkLen(field, v string, limit int) error {
	if limit > 0 && utf8.RuneCountInString(v) > limit {
		return fmt.Errorf("%w: %s must be at most %d characters", entity.ErrValidation, field, limit)
	}
	return nil
}

func requiredText(field, v string, limit int) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", fmt.Errorf("%w: %s is required", entity.ErrValidation, field)
	}
	if err := checkLen(field, v, limit); err != nil {
		return "", err
	}
	return v, nil
}

func applyRequired(field string, o entity.Optional[string], limit int, dst *string) error {
	if !o.Set {
		return nil
	}
	if o.Value == nil {
		return fmt.Errorf("%w: %s cannot be null", entity.ErrValidation, field)
	}
	v, err := requiredText(field, *o.Value, limit)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func applyOptional(field string, o entity.Optional[string], limit int, dst **string) error {
	if !o.Set {
		return nil
	}
	if o.Value != nil {
		if err := checkLen(field, *o.Value, limit); err != nil {
			return err
		}
	}
	*dst = o.Value
	return nil
}

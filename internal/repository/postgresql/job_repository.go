package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"job-funnel-service/internal/entity"
)

const jobColumns = `id, user_id, stage_id, company, position, source, salary, stack, notes, priority,
	applied_at, hr_response_at, screening_at, tech_interview_at, homework_at, final_at, offer_at, rejected_at,
	created_at, updated_at`

type JobRepository struct {
	db DBTX
}

func NewJobRepository(db DBTX) *JobRepository {
	return &JobRepository{db: db}
}

func scanJob(row pgx.Row) (*entity.Job, error) {
	var j entity.Job
	if err := row.Scan(
		&j.ID,
		&j.UserID,
		&j.StageID,
		&j.Company,
		&j.Position,
		&j.Source,   // NULL => nil
		&j.Salary,   // NULL => nil
		&j.Stack,    // NULL => nil
		&j.Notes,    // NULL => nil
		&j.Priority, // NULL => nil
		&j.AppliedAt,
		&j.HRResponseAt,
		&j.ScreeningAt,
		&j.TechInterviewAt,
		&j.HomeworkAt,
		&j.FinalAt,
		&j.OfferAt,
		&j.RejectedAt,
		&j.CreatedAt,
		&j.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &j, nil
}

// Insert stores job and fills its id.
func (r *JobRepository) Insert(ctx context.Context, job *entity.Job) (*entity.Job, error) {
	const q = `
INSERT INTO jobs (user_id, stage_id, company, position, source, salary, stack, notes, priority,
	applied_at, hr_response_at, screening_at, tech_interview_at, homework_at, final_at, offer_at, rejected_at,
	created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
RETURNING id;
`
	if err := conn(ctx, r.db).QueryRow(ctx, q,
		job.UserID, job.StageID, job.Company, job.Position,
		job.Source, job.Salary, job.Stack, job.Notes, job.Priority,
		job.AppliedAt, job.HRResponseAt, job.ScreeningAt, job.TechInterviewAt,
		job.HomeworkAt, job.FinalAt, job.OfferAt, job.RejectedAt,
		job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID); err != nil {
		return nil, fmt.Errorf("insert job: %w", mapErr(err))
	}
	return job, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id int64) (*entity.Job, error) {
	q := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1;`

	j, err := scanJob(conn(ctx, r.db).QueryRow(ctx, q, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return j, nil
}

// LockByID reads the job and holds a row lock until the surrounding transaction ends.
func (r *JobRepository) LockByID(ctx context.Context, id int64) (*entity.Job, error) {
	q := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 FOR UPDATE;`

	j, err := scanJob(conn(ctx, r.db).QueryRow(ctx, q, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return j, nil
}

// ListByOwner returns the user's jobs, most recently updated first. A non-nil stageID
// narrows the list to jobs currently at that stage.
func (r *JobRepository) ListByOwner(ctx context.Context, userID int64, stageID *int64) ([]entity.Job, error) {
	q := `SELECT ` + jobColumns + ` FROM jobs WHERE user_id = $1`
	args := []any{userID}
	if stageID != nil {
		q += ` AND stage_id = $2`
		args = append(args, *stageID)
	}
	q += ` ORDER BY updated_at DESC, id DESC;`

	rows, err := conn(ctx, r.db).Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	jobs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Job, error) {
		j, err := scanJob(row)
		if err != nil {
			return entity.Job{}, err
		}
		return *j, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan jobs: %w", err)
	}
	return jobs, nil
}

// Update writes every mutable column. user_id and created_at never change.
func (r *JobRepository) Update(ctx context.Context, job *entity.Job) error {
	const q = `
UPDATE jobs SET
	stage_id=$2, company=$3, position=$4, source=$5, salary=$6, stack=$7, notes=$8, priority=$9,
	applied_at=$10, hr_response_at=$11, screening_at=$12, tech_interview_at=$13,
	homework_at=$14, final_at=$15, offer_at=$16, rejected_at=$17,
	updated_at=$18
WHERE id=$1;
`
	tag, err := conn(ctx, r.db).Exec(ctx, q,
		job.ID, job.StageID, job.Company, job.Position,
		job.Source, job.Salary, job.Stack, job.Notes, job.Priority,
		job.AppliedAt, job.HRResponseAt, job.ScreeningAt, job.TechInterviewAt,
		job.HomeworkAt, job.FinalAt, job.OfferAt, job.RejectedAt,
		job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", mapErr(err))
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package entity

import (
	"time"
)

// TimestampField names a per-stage timestamp slot (also the column name).
type TimestampField string

const (
	FieldAppliedAt       TimestampField = "applied_at"
	FieldHRResponseAt    TimestampField = "hr_response_at"
	FieldScreeningAt     TimestampField = "screening_at"
	FieldTechInterviewAt TimestampField = "tech_interview_at"
	FieldHomeworkAt      TimestampField = "homework_at"
	FieldFinalAt         TimestampField = "final_at"
	FieldOfferAt         TimestampField = "offer_at"
	FieldRejectedAt      TimestampField = "rejected_at"
)

// TimestampFields lists every slot in pipeline order.
var TimestampFields = []TimestampField{
	FieldAppliedAt,
	FieldHRResponseAt,
	FieldScreeningAt,
	FieldTechInterviewAt,
	FieldHomeworkAt,
	FieldFinalAt,
	FieldOfferAt,
	FieldRejectedAt,
}

// StageTimestamps records the first time a job reached each stage.
type StageTimestamps struct {
	AppliedAt       *time.Time `json:"applied_at"`
	HRResponseAt    *time.Time `json:"hr_response_at"`
	ScreeningAt     *time.Time `json:"screening_at"`
	TechInterviewAt *time.Time `json:"tech_interview_at"`
	HomeworkAt      *time.Time `json:"homework_at"`
	FinalAt         *time.Time `json:"final_at"`
	OfferAt         *time.Time `json:"offer_at"`
	RejectedAt      *time.Time `json:"rejected_at"`
}

func (t *StageTimestamps) slot(f TimestampField) **time.Time {
	switch f {
	case FieldAppliedAt:
		return &t.AppliedAt
	case FieldHRResponseAt:
		return &t.HRResponseAt
	case FieldScreeningAt:
		return &t.ScreeningAt
	case FieldTechInterviewAt:
		return &t.TechInterviewAt
	case FieldHomeworkAt:
		return &t.HomeworkAt
	case FieldFinalAt:
		return &t.FinalAt
	case FieldOfferAt:
		return &t.OfferAt
	case FieldRejectedAt:
		return &t.RejectedAt
	default:
		return nil
	}
}

// Get returns the slot value, nil when unset or the field is unknown.
func (t *StageTimestamps) Get(f TimestampField) *time.Time {
	if p := t.slot(f); p != nil {
		return *p
	}
	return nil
}

// Set writes the slot and reports whether the field is known.
func (t *StageTimestamps) Set(f TimestampField, v *time.Time) bool {
	p := t.slot(f)
	if p == nil {
		return false
	}
	*p = v
	return true
}

type Job struct {
	ID       int64   `json:"id"`
	UserID   int64   `json:"user_id"`
	StageID  int64   `json:"stage_id"`
	Company  string  `json:"company"`
	Position string  `json:"position"`
	Source   *string `json:"source"`
	Salary   *string `json:"salary"`
	Stack    *string `json:"stack"`
	Notes    *string `json:"notes"`
	Priority *string `json:"priority"`

	StageTimestamps

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

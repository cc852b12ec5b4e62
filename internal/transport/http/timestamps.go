package httptransport

import (
	"encoding/json"
	"fmt"
	"time"

	"job-funnel-service/internal/entity"
)

// naiveLayout is an ISO 8601 date-time without offset; such values are read as UTC.
const naiveLayout = "2006-01-02T15:04:05.999999999"

// timestamp accepts RFC 3339 and offset-less date-times.
type timestamp struct {
	time.Time
}

func (t *timestamp) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if v, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		t.Time = v
		return nil
	}
	v, err := time.ParseInLocation(naiveLayout, raw, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q", raw)
	}
	t.Time = v
	return nil
}

// stageTimestampsDTO mirrors entity.StageTimestamps on the request side.
type stageTimestampsDTO struct {
	AppliedAt       *timestamp `json:"applied_at" swaggertype:"string" format:"date-time"`
	HRResponseAt    *timestamp `json:"hr_response_at" swaggertype:"string" format:"date-time"`
	ScreeningAt     *timestamp `json:"screening_at" swaggertype:"string" format:"date-time"`
	TechInterviewAt *timestamp `json:"tech_interview_at" swaggertype:"string" format:"date-time"`
	HomeworkAt      *timestamp `json:"homework_at" swaggertype:"string" format:"date-time"`
	FinalAt         *timestamp `json:"final_at" swaggertype:"string" format:"date-time"`
	OfferAt         *timestamp `json:"offer_at" swaggertype:"string" format:"date-time"`
	RejectedAt      *timestamp `json:"rejected_at" swaggertype:"string" format:"date-time"`
}

func (d stageTimestampsDTO) toEntity() entity.StageTimestamps {
	return entity.StageTimestamps{
		AppliedAt:       d.AppliedAt.ptr(),
		HRResponseAt:    d.HRResponseAt.ptr(),
		ScreeningAt:     d.ScreeningAt.ptr(),
		TechInterviewAt: d.TechInterviewAt.ptr(),
		HomeworkAt:      d.HomeworkAt.ptr(),
		FinalAt:         d.FinalAt.ptr(),
		OfferAt:         d.OfferAt.ptr(),
		RejectedAt:      d.RejectedAt.ptr(),
	}
}

func (t *timestamp) ptr() *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}

package entity

type StageCount struct {
	StageID   int64  `json:"stage_id"`
	StageName string `json:"stage_name"`
	Count     int    `json:"count"`
}

// ConversionMetric is the share of jobs that reached To among those that reached From.
// Rate is nil when nothing reached From.
type ConversionMetric struct {
	FromStageID   int64    `json:"from_stage_id"`
	FromStageName string   `json:"from_stage_name"`
	ToStageID     int64    `json:"to_stage_id"`
	ToStageName   string   `json:"to_stage_name"`
	Rate          *float64 `json:"conversion_rate"`
}

type Metrics struct {
	StageCounts       []StageCount       `json:"stage_counts"`
	StageProgress     []StageCount       `json:"stage_progress"`
	Conversions       []ConversionMetric `json:"conversions"`
	AvgHRResponseDays *float64           `json:"avg_hr_response_days"`
}

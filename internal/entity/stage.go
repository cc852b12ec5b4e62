package entity

type Stage struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	OrderIndex int    `json:"order_index"`
	IsTerminal bool   `json:"is_terminal"`
}

// Seeded stage names.
const (
	StageApplied       = "Applied"
	StageHRResponse    = "HR Response"
	StageScreening     = "Screening"
	StageTechInterview = "Tech Interview"
	StageHomework      = "Homework"
	StageFinal         = "Final"
	StageOffer         = "Offer"
	StageRejected      = "Rejected"
)

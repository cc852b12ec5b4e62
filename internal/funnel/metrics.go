package funnel

import (
	"job-funnel-service/internal/entity"
)

const secondsPerDay = 86400.0

// ComputeMetrics builds the funnel report for one user's jobs in a single pass.
func (c *Catalog) ComputeMetrics(jobs []entity.Job) entity.Metrics {
	current := make(map[int64]int, len(c.stages))
	reached := make(map[entity.TimestampField]int, len(entity.TimestampFields))

	var (
		latencyDays float64
		latencyN    int
	)

	for i := range jobs {
		j := &jobs[i]
		current[j.StageID]++
		for _, f := range entity.TimestampFields {
			if j.Get(f) != nil {
				reached[f]++
			}
		}
		if j.AppliedAt != nil && j.HRResponseAt != nil {
			latencyDays += j.HRResponseAt.Sub(*j.AppliedAt).Seconds() / secondsPerDay
			latencyN++
		}
	}

	progress := func(s entity.Stage) int {
		f, ok := c.TimestampFieldFor(s.Name)
		if !ok {
			return 0
		}
		return reached[f]
	}

	m := entity.Metrics{
		StageCounts:   make([]entity.StageCount, 0, len(c.stages)),
		StageProgress: make([]entity.StageCount, 0, len(c.stages)),
	}
	for _, s := range c.stages {
		m.StageCounts = append(m.StageCounts, entity.StageCount{StageID: s.ID, StageName: s.Name, Count: current[s.ID]})
		m.StageProgress = append(m.StageProgress, entity.StageCount{StageID: s.ID, StageName: s.Name, Count: progress(s)})
	}

	chain := c.ConversionChain()
	m.Conversions = make([]entity.ConversionMetric, 0, len(chain))
	for i := 0; i+1 < len(chain); i++ {
		from, to := chain[i], chain[i+1]
		m.Conversions = append(m.Conversions, entity.ConversionMetric{
			FromStageID:   from.ID,
			FromStageName: from.Name,
			ToStageID:     to.ID,
			ToStageName:   to.Name,
			Rate:          ConversionRate(progress(from), progress(to)),
		})
	}

	if latencyN > 0 {
		avg := latencyDays / float64(latencyN)
		m.AvgHRResponseDays = &avg
	}
	return m
}

// ConversionRate is to/from, or nil when from is zero (undefined, not 0%).
func ConversionRate(from, to int) *float64 {
	if from <= 0 {
		return nil
	}
	r := float64(to) / float64(from)
	return &r
}

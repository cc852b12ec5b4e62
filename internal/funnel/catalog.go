// Package funnel holds the pipeline rules: the stage catalog, the timestamp stamping policy
// applied on stage transitions, and the metrics computed over a user's jobs.
package funnel

import (
	"errors"
	"fmt"
	"sort"

	"job-funnel-service/internal/entity"
)

var (
	ErrUnknownStage = errors.New("unknown stage")
	ErrEmptyCatalog = errors.New("stage catalog is empty")
)

var stageFields = map[string]entity.TimestampField{
	entity.StageApplied:       entity.FieldAppliedAt,
	entity.StageHRResponse:    entity.FieldHRResponseAt,
	entity.StageScreening:     entity.FieldScreeningAt,
	entity.StageTechInterview: entity.FieldTechInterviewAt,
	entity.StageHomework:      entity.FieldHomeworkAt,
	entity.StageFinal:         entity.FieldFinalAt,
	entity.StageOffer:         entity.FieldOfferAt,
	entity.StageRejected:      entity.FieldRejectedAt,
}

// Catalog is the ordered, read-only list of pipeline stages. It is built once at startup
// and safe for concurrent use.
type Catalog struct {
	stages []entity.Stage
	byID   map[int64]int
}

func NewCatalog(stages []entity.Stage) (*Catalog, error) {
	if len(stages) == 0 {
		return nil, ErrEmptyCatalog
	}

	sorted := make([]entity.Stage, len(stages))
	copy(sorted, stages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OrderIndex < sorted[j].OrderIndex
	})

	c := &Catalog{stages: sorted, byID: make(map[int64]int, len(sorted))}
	names := make(map[string]struct{}, len(sorted))
	for i, s := range sorted {
		if i > 0 && sorted[i-1].OrderIndex == s.OrderIndex {
			return nil, fmt.Errorf("stages %q and %q share order_index %d", sorted[i-1].Name, s.Name, s.OrderIndex)
		}
		if _, dup := names[s.Name]; dup {
			return nil, fmt.Errorf("duplicate stage name %q", s.Name)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate stage id %d", s.ID)
		}
		names[s.Name] = struct{}{}
		c.byID[s.ID] = i
	}
	return c, nil
}

// All returns the stages ordered by order_index. The slice is a copy.
func (c *Catalog) All() []entity.Stage {
	out := make([]entity.Stage, len(c.stages))
	copy(out, c.stages)
	return out
}

// Default is the stage a new job lands in when none is given.
func (c *Catalog) Default() entity.Stage {
	return c.stages[0]
}

func (c *Catalog) ByID(id int64) (entity.Stage, error) {
	i, ok := c.byID[id]
	if !ok {
		return entity.Stage{}, fmt.Errorf("%w: id=%d", ErrUnknownStage, id)
	}
	return c.stages[i], nil
}

// TimestampFieldFor maps a stage name to its timestamp slot. Stages added later without a
// slot report ok=false.
func (c *Catalog) TimestampFieldFor(stageName string) (entity.TimestampField, bool) {
	f, ok := stageFields[stageName]
	return f, ok
}

// ConversionChain is the linear sub-sequence used for conversion rates: every non-terminal
// stage plus the first terminal stage (Offer). Later terminal stages (Rejected) are left out.
func (c *Catalog) ConversionChain() []entity.Stage {
	chain := make([]entity.Stage, 0, len(c.stages))
	closed := false
	for _, s := range c.stages {
		if s.IsTerminal {
			if closed {
				continue
			}
			closed = true
		}
		chain = append(chain, s)
	}
	return chain
}

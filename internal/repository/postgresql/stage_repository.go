package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"job-funnel-service/internal/entity"
)

type StageRepository struct {
	db DBTX
}

func NewStageRepository(db DBTX) *StageRepository {
	return &StageRepository{db: db}
}

func (r *StageRepository) List(ctx context.Context) ([]entity.Stage, error) {
	const q = `
SELECT id, name, order_index, is_terminal
FROM stages
ORDER BY order_index ASC;
`
	rows, err := conn(ctx, r.db).Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}

	stages, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Stage, error) {
		var s entity.Stage
		err := row.Scan(&s.ID, &s.Name, &s.OrderIndex, &s.IsTerminal)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan stages: %w", err)
	}
	return stages, nil
}

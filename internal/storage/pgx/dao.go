package pgx

import (
	"database/sql"
	"time"

	"trackersync/internal/domain"
)

type passDAO struct {
	ID          int64
	Kind        string
	PullNumber  sql.NullInt32
	StartedAt   time.Time
	FinishedAt  time.Time
	Scanned     int
	Delivered   int
	Failures    int
	Interrupted bool
}

func passDAOToDomain(p passDAO) domain.PassRecord {
	var pull *int
	if p.PullNumber.Valid {
		n := int(p.PullNumber.Int32)
		pull = &n
	}

	return domain.PassRecord{
		ID:          p.ID,
		Kind:        domain.PassKind(p.Kind),
		PullNumber:  pull,
		StartedAt:   p.StartedAt,
		FinishedAt:  p.FinishedAt,
		Scanned:     p.Scanned,
		Delivered:   p.Delivered,
		Failures:    p.Failures,
		Interrupted: p.Interrupted,
	}
}

func nullableInt(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}

// nullableStoryID stores pass-level failures (no story) as NULL.
func nullableStoryID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

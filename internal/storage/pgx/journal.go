package pgx

import (
	"context"

	"trackersync/internal/domain"
)

// RecordPass writes a pass with its transitions and failures in one transaction.
func (s *Storage) RecordPass(ctx context.Context, result domain.PassResult) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.WithTx(ctx, func(ctx context.Context) error {
		const queryPass = `
			INSERT INTO delivery_passes (
			    kind, pull_number, started_at, finished_at, scanned, interrupted
			) VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id;
		`

		var passID int64
		err := s.getExecutor(ctx).QueryRow(ctx, queryPass,
			string(result.Kind),
			nullableInt(result.PullNumber),
			result.StartedAt,
			result.FinishedAt,
			result.Scanned,
			result.Interrupted,
		).Scan(&passID)
		if err != nil {
			return err
		}

		const queryTransition = `
			INSERT INTO delivery_transitions (pass_id, story_id, story_name, owner, pull_number, state)
			VALUES ($1, $2, $3, $4, $5, $6);
		`
		for _, info := range result.Delivered {
			_, err := s.getExecutor(ctx).Exec(ctx, queryTransition,
				passID, info.ID, info.Name, info.Owner, nullableInt(info.PullNumber), string(info.State))
			if err != nil {
				return err
			}
		}

		const queryFailure = `
			INSERT INTO delivery_failures (pass_id, story_id, stage, message)
			VALUES ($1, $2, $3, $4);
		`
		for _, f := range result.Failures {
			msg := ""
			if f.Err != nil {
				msg = f.Err.Error()
			}
			_, err := s.getExecutor(ctx).Exec(ctx, queryFailure,
				passID, nullableStoryID(f.StoryID), string(f.Stage), msg)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *Storage) RecentPasses(ctx context.Context, limit int) ([]domain.PassRecord, error) {
	const query = `
		SELECT
		    p.id,
		    p.kind,
		    p.pull_number,
		    p.started_at,
		    p.finished_at,
		    p.scanned,
		    (SELECT count(*) FROM delivery_transitions t WHERE t.pass_id = p.id) AS delivered,
		    (SELECT count(*) FROM delivery_failures f WHERE f.pass_id = p.id) AS failures,
		    p.interrupted
		  FROM delivery_passes p
		 ORDER BY p.started_at DESC, p.id DESC
		 LIMIT $1;
	`

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.getExecutor(ctx).Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.PassRecord, 0)
	for rows.Next() {
		var dao passDAO
		if err := rows.Scan(
			&dao.ID,
			&dao.Kind,
			&dao.PullNumber,
			&dao.StartedAt,
			&dao.FinishedAt,
			&dao.Scanned,
			&dao.Delivered,
			&dao.Failures,
			&dao.Interrupted,
		); err != nil {
			return nil, err
		}
		out = append(out, passDAOToDomain(dao))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// historyRepo implements HistoryRepo on the session_records table.
type historyRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *historyRepo) AppendSession(ctx context.Context, rec SessionRecord) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(historyTable).
		Columns("id", "sequence", "category", "difficulty", "score", "total", "best_streak", "finished_at").
		Values(rec.ID, seqNum, rec.Category, rec.Difficulty, rec.Score, rec.Total, rec.BestStreak, rec.FinishedAt.Unix()).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save session record: %w", err)
	}
	return nil
}

func (r *historyRepo) RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("id", "sequence", "category", "difficulty", "score", "total", "best_streak", "finished_at").
		From(entsql.Table(historyTable)).
		OrderBy(entsql.Desc("sequence"))
	if p := timeRange("finished_at", opts); p != nil {
		sel.Where(p)
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			rec      SessionRecord
			finished int64
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &rec.Category, &rec.Difficulty,
			&rec.Score, &rec.Total, &rec.BestStreak, &finished); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.FinishedAt = time.Unix(finished, 0)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	return out, nil
}

func (r *historyRepo) Prune(ctx context.Context, keep int) error {
	// Find the sequence threshold: the newest row that falls outside keep.
	query, args := entsql.Dialect(dialect.SQLite).
		Select("sequence").
		From(entsql.Table(historyTable)).
		OrderBy(entsql.Desc("sequence")).
		Offset(keep).
		Limit(1).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return fmt.Errorf("query sessions for prune: %w", err)
	}
	var threshold int64
	found := rows.Next()
	if found {
		if err := rows.Scan(&threshold); err != nil {
			rows.Close()
			return fmt.Errorf("scan prune threshold: %w", err)
		}
	}
	rows.Close()
	if !found {
		return nil // fewer than keep sessions exist
	}

	query, args = entsql.Dialect(dialect.SQLite).
		Delete(historyTable).
		Where(entsql.LTE("sequence", threshold)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("prune sessions: %w", err)
	}
	return nil
}

// timeRange builds the From/To predicate of opts on a unix-seconds column.
func timeRange(col string, opts QueryOpts) *entsql.Predicate {
	var ps []*entsql.Predicate
	if !opts.From.IsZero() {
		ps = append(ps, entsql.GTE(col, opts.From.Unix()))
	}
	if !opts.To.IsZero() {
		ps = append(ps, entsql.LTE(col, opts.To.Unix()))
	}
	switch len(ps) {
	case 0:
		return nil
	case 1:
		return ps[0]
	default:
		return entsql.And(ps...)
	}
}

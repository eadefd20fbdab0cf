package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/bank"
	"github.com/abhisek/quizbox/internal/stats"
	"github.com/abhisek/quizbox/internal/store"
)

// deps is what every command needs: the bank, the stats manager and, unless
// running ephemeral, the SQLite store behind them.
type deps struct {
	bank    *bank.StaticBank
	store   *store.Store // nil when ephemeral
	records *stats.Manager
	loadErr error // non-fatal; corrupt values were replaced by defaults
}

func (d *deps) history() store.HistoryRepo {
	if d.store == nil {
		return nil
	}
	return d.store.HistoryRepo()
}

func (d *deps) events() store.EventRepo {
	if d.store == nil {
		return nil
	}
	return d.store.EventRepo()
}

// Close flushes pending stats writes, then closes the store.
func (d *deps) Close() error {
	if err := d.records.Close(); err != nil {
		return err
	}
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// openDeps opens the store selected by the flags and loads the stats
// manager from it.
func openDeps(ctx context.Context, cmd *cobra.Command) (*deps, error) {
	b, err := resolveBank(cmd)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}

	d := &deps{bank: b}
	var (
		kv   stats.KV
		hist stats.History
	)
	if ephemeral, _ := cmd.Flags().GetBool("ephemeral"); ephemeral {
		kv = store.NewMemory()
	} else {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		d.store = st
		kv = st.KVRepo()
		hist = st.HistoryRepo()
	}

	d.records = stats.NewManager(kv, b, hist)
	if err := d.records.Load(ctx); err != nil {
		var perr *stats.PersistError
		if !errors.As(err, &perr) {
			d.Close()
			return nil, fmt.Errorf("load stats: %w", err)
		}
		d.loadErr = err
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: some saved stats could not be read, using defaults:", err)
	}
	return d, nil
}

// openStore opens the SQLite store for commands that only read it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

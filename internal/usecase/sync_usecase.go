package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/iho/splitsync/internal/domain"
)

// RunState identifies the pipeline stage a run is in. A finished run ends in
// StateDone or StateFailed; a failed run's summary keeps the counts of the
// work completed before the failure.
type RunState string

const (
	StateFetching  RunState = "fetching"
	StateDeriving  RunState = "deriving"
	StateResolving RunState = "resolving"
	StateFiltering RunState = "filtering"
	StateImporting RunState = "importing"
	StateDone      RunState = "done"
	StateFailed    RunState = "failed"
)

// RunSummary aggregates per-item results across one sync run. It is owned and
// mutated only by SyncUseCase and is final once Run returns.
type RunSummary struct {
	RunID string
	State RunState

	Fetched        int
	NotParticipant int
	ZeroNet        int
	Failed         int
	Candidates     int
	Duplicates     int
	Ambiguous      int
	Selected       int
	Imported       int

	StartedAt  time.Time
	FinishedAt time.Time
}

// SyncInput is the immutable per-run configuration.
type SyncInput struct {
	StartDate   time.Time
	AccountName string
	DryRun      bool
	SkipFilter  bool
}

// SyncUseCase drives the fetch, derive, resolve, filter, import pipeline. The
// stages run strictly in sequence: the resolver needs the complete sink
// snapshot and the complete candidate set before it can classify anything.
type SyncUseCase struct {
	source   ExpenseSource
	sink     BudgetSink
	selector CandidateSelector
	logger   zerolog.Logger
}

// NewSyncUseCase creates a new sync use case. A nil selector disables the
// interactive filtering stage.
func NewSyncUseCase(source ExpenseSource, sink BudgetSink, selector CandidateSelector, logger zerolog.Logger) *SyncUseCase {
	return &SyncUseCase{
		source:   source,
		sink:     sink,
		selector: selector,
		logger:   logger,
	}
}

// Run executes one sync run. Fetch and batch-submission failures are fatal
// and return an error alongside the partial summary; per-expense and per-item
// failures are counted and the run continues. Re-running with the same start
// date is idempotent: everything imported by an earlier run resolves as a
// duplicate.
func (uc *SyncUseCase) Run(ctx context.Context, in SyncInput) (*RunSummary, error) {
	summary := &RunSummary{
		RunID:     ulid.Make().String(),
		State:     StateFetching,
		StartedAt: time.Now().UTC(),
	}
	log := uc.logger.With().Str("run_id", summary.RunID).Logger()

	finish := func() {
		summary.FinishedAt = time.Now().UTC()
	}
	fail := func(err error) (*RunSummary, error) {
		summary.State = StateFailed
		finish()
		return summary, err
	}

	// FETCHING
	user, err := uc.source.CurrentUser(ctx)
	if err != nil {
		return fail(fmt.Errorf("resolving source user: %w", err))
	}
	log.Info().Int64("user_id", user.ID).Str("user", user.DisplayName()).Msg("resolved source user")

	account, err := uc.sink.FindAccount(ctx, in.AccountName)
	if err != nil {
		return fail(fmt.Errorf("resolving sink account %q: %w", in.AccountName, err))
	}

	expenses, err := uc.source.ExpensesSince(ctx, in.StartDate)
	if err != nil {
		return fail(fmt.Errorf("fetching expenses: %w", err))
	}
	summary.Fetched = len(expenses)

	records, err := uc.sink.AccountTransactions(ctx, account.ID)
	if err != nil {
		return fail(fmt.Errorf("fetching sink transactions: %w", err))
	}
	log.Info().
		Int("expenses", len(expenses)).
		Int("sink_records", len(records)).
		Time("since", in.StartDate).
		Msg("fetch complete")

	// DERIVING
	summary.State = StateDeriving
	candidates := make([]domain.CandidateTransaction, 0, len(expenses))
	for i := range expenses {
		e := expenses[i]
		if err := e.Validate(); err != nil {
			summary.Failed++
			log.Warn().Int64("expense_id", e.ID).Err(err).Msg("skipping malformed expense")
			continue
		}

		c, status := domain.DeriveTransaction(e, user.ID)
		switch status {
		case domain.NotParticipant:
			summary.NotParticipant++
		case domain.ZeroNet:
			summary.ZeroNet++
		default:
			candidates = append(candidates, c)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Date.Before(candidates[j].Date)
	})
	summary.Candidates = len(candidates)

	// RESOLVING
	summary.State = StateResolving
	res := ResolveDuplicates(candidates, records)
	summary.Duplicates = len(res.Duplicates)
	summary.Ambiguous = len(res.Ambiguous)
	for _, id := range res.Collisions {
		log.Warn().Str("import_id", id).Err(domain.ErrImportIDCollision).
			Msg("excluding candidate with colliding import id")
	}
	importable := res.Importable

	// FILTERING
	if !in.SkipFilter && uc.selector != nil && len(importable) > 0 {
		summary.State = StateFiltering
		pred, err := uc.selector.Select(importable)
		if err != nil {
			if errors.Is(err, domain.ErrSelectionCancelled) {
				log.Info().Msg("selection cancelled, nothing imported")
				summary.State = StateDone
				finish()
				return summary, nil
			}
			return fail(fmt.Errorf("selecting candidates: %w", err))
		}

		kept := make([]domain.CandidateTransaction, 0, len(importable))
		for i, c := range importable {
			if pred(i + 1) {
				kept = append(kept, c)
			}
		}
		importable = kept
	}
	summary.Selected = len(importable)

	// IMPORTING
	switch {
	case in.DryRun:
		log.Info().Int("selected", summary.Selected).Msg("dry run, skipping import")
	case len(importable) == 0:
		log.Info().Msg("nothing to import")
	default:
		summary.State = StateImporting
		outcomes, err := uc.sink.CreateTransactions(ctx, account.ID, importable)
		if err != nil {
			summary.Failed += len(importable)
			return fail(fmt.Errorf("submitting transactions: %w", err))
		}
		for _, o := range outcomes {
			switch o.Status {
			case domain.OutcomeAccepted:
				summary.Imported++
			case domain.OutcomeDuplicate:
				summary.Duplicates++
				log.Info().Str("import_id", o.ImportID).Msg("sink reported duplicate")
			default:
				summary.Failed++
				log.Warn().Str("import_id", o.ImportID).Str("reason", o.Reason).
					Msg("sink rejected transaction")
			}
		}
	}

	summary.State = StateDone
	finish()
	log.Info().
		Int("imported", summary.Imported).
		Int("duplicates", summary.Duplicates).
		Int("failed", summary.Failed).
		Msg("run complete")
	return summary, nil
}

package magnets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/shellac-studio/shellac/internal/assets"
	"github.com/shellac-studio/shellac/pkg/pagination"
	"github.com/shellac-studio/shellac/pkg/query"
	"github.com/shellac-studio/shellac/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a session event repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "magnets"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[SessionEvent], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "Client")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count session events: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanSessionEvent)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*SessionEvent, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	se, err := repository.QueryOne(ctx, r.db, q, args, scanSessionEvent)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrAlreadyAnchored)
	}
	return &se, nil
}

func (r *repo) Anchor(ctx context.Context, cmd CreateCommand) (*SessionEvent, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	insert := `
		INSERT INTO session_events(id, title, date, client, source_artifact_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, date, client, source_artifact_id, created_at`

	se, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (SessionEvent, error) {
		created, err := repository.QueryOne(
			ctx, tx, insert,
			[]any{uuid.New(), cmd.Title, cmd.Date.Time, cmd.Client, cmd.AssetID},
			scanSessionEvent,
		)
		if err != nil {
			return SessionEvent{}, err
		}

		// Compare-and-set guards against a concurrent anchor on the same
		// asset: zero rows rolls back the insert.
		err = repository.ExecExpectOne(
			ctx, tx,
			"UPDATE assets SET status = $1, assigned_session_id = $2, updated_at = NOW() WHERE id = $3 AND status = $4",
			assets.StatusVerified, created.ID, cmd.AssetID, assets.StatusAnalyzed,
		)
		if err != nil {
			return SessionEvent{}, err
		}

		return created, nil
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.resolveAnchorConflict(ctx, cmd.AssetID)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrAlreadyAnchored)
	}

	r.logger.Info("asset anchored",
		"session_event_id", se.ID,
		"asset_id", cmd.AssetID,
		"title", se.Title,
	)
	return &se, nil
}

// resolveAnchorConflict distinguishes a missing asset from one in the
// wrong lifecycle state after the anchor update matched zero rows.
func (r *repo) resolveAnchorConflict(ctx context.Context, assetID uuid.UUID) error {
	var status assets.Status
	err := r.db.
		QueryRowContext(ctx, "SELECT status FROM assets WHERE id = $1", assetID).
		Scan(&status)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrAssetNotFound
	}
	if err != nil {
		return fmt.Errorf("resolve anchor conflict: %w", err)
	}

	if status == assets.StatusVerified || status == assets.StatusArchived {
		return ErrAlreadyAnchored
	}
	return fmt.Errorf("%w: %s", ErrInvalidState, status)
}

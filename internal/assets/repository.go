package assets

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/shellac-studio/shellac/internal/classifier"
	"github.com/shellac-studio/shellac/pkg/pagination"
	"github.com/shellac-studio/shellac/pkg/query"
	"github.com/shellac-studio/shellac/pkg/repository"
	"github.com/shellac-studio/shellac/pkg/storage"
)

const maxBatchWorkers = 4

type repo struct {
	db         *sql.DB
	storage    storage.System
	svc        classifier.Service
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an asset repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	svc classifier.Service,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		svc:        svc,
		logger:     logger.With("system", "assets"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Asset], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Filename")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count assets: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAsset)
	if err != nil {
		return nil, fmt.Errorf("query assets: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Asset, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAsset)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &a, nil
}

func (r *repo) Ingest(ctx context.Context, cmd IngestCommand) (*Asset, error) {
	if len(cmd.Data) == 0 {
		return nil, ErrEmptyFile
	}
	if !AcceptedContentType(cmd.ContentType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, cmd.ContentType)
	}

	// Classification runs first: it has no side effects, so a model failure
	// leaves nothing to clean up.
	result, err := r.svc.Classify(ctx, cmd.Data, cmd.ContentType)
	if err != nil {
		return nil, fmt.Errorf("classify artifact: %w", err)
	}

	assetType, recognized := MapClassification(result.Classification)
	if !recognized {
		r.logger.Warn("unrecognized classification label",
			"label", result.Classification,
			"filename", cmd.Filename,
		)
	}

	classificationJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal classification: %w", err)
	}

	id := uuid.New()
	key := buildStorageKey(id, sanitizeFilename(cmd.Filename))

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload artifact blob: %w", err)
	}

	q := `
		INSERT INTO assets(id, url, storage_key, filename, content_type, size_bytes, page_count, type, status, classification)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, url, storage_key, filename, content_type, size_bytes, page_count,
				  type, status, classification, assigned_session_id, created_at, updated_at`

	insertArgs := []any{
		id,
		downloadURL(key),
		key,
		cmd.Filename,
		cmd.ContentType,
		int64(len(cmd.Data)),
		cmd.PageCount,
		assetType,
		StatusAnalyzed,
		classificationJSON,
	}

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Asset, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanAsset)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("asset ingested",
		"id", a.ID,
		"filename", a.Filename,
		"type", a.Type,
		"confidence", result.ConfidenceScore,
	)
	return &a, nil
}

func (r *repo) IngestBatch(ctx context.Context, cmds []IngestCommand) []BatchResult {
	results := make([]BatchResult, len(cmds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(maxBatchWorkers, len(cmds)))

	for i, cmd := range cmds {
		g.Go(func() error {
			results[i].Filename = cmd.Filename

			a, err := r.Ingest(gctx, cmd)
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}

			results[i].Asset = a
			return nil
		})
	}

	g.Wait()
	return results
}

func (r *repo) Archive(ctx context.Context, id uuid.UUID) (*Asset, error) {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE assets SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3",
			StatusArchived, id, StatusVerified,
		)
		return struct{}{}, err
	})

	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("archive asset: %w", err)
		}
		// Zero rows means the asset is missing or not yet VERIFIED.
		if _, findErr := r.Find(ctx, id); findErr != nil {
			return nil, findErr
		}
		return nil, ErrInvalidState
	}

	a, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	r.logger.Info("asset archived", "id", id)
	return a, nil
}

// AcceptedContentType reports whether the MIME type is in the accepted
// upload set: any image type or PDF.
func AcceptedContentType(contentType string) bool {
	if strings.HasPrefix(contentType, "image/") {
		return true
	}
	return contentType == "application/pdf"
}

func buildStorageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("artifacts/%s/%s", id, filename)
}

func downloadURL(key string) string {
	return "/api/storage/download/" + key
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "artifact"
	}
	return url.PathEscape(name)
}

package assets

import (
	"context"

	"github.com/google/uuid"

	"github.com/shellac-studio/shellac/pkg/pagination"
)

// System defines the public contract for artifact domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Asset], error)

	Find(ctx context.Context, id uuid.UUID) (*Asset, error)

	// Ingest classifies the uploaded bytes, stores them, and persists a new
	// Asset with status ANALYZED. All-or-nothing: a failed classification
	// or persistence leaves no partial record.
	Ingest(ctx context.Context, cmd IngestCommand) (*Asset, error)

	// IngestBatch runs Ingest for each command with bounded concurrency,
	// reporting per-file outcomes.
	IngestBatch(ctx context.Context, cmds []IngestCommand) []BatchResult

	// Archive transitions a VERIFIED asset to ARCHIVED.
	Archive(ctx context.Context, id uuid.UUID) (*Asset, error)
}

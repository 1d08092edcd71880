package magnets

import (
	"context"

	"github.com/google/uuid"

	"github.com/shellac-studio/shellac/pkg/pagination"
)

// System defines the public contract for session event operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[SessionEvent], error)

	Find(ctx context.Context, id uuid.UUID) (*SessionEvent, error)

	// Anchor creates a session event and locks its source asset to it in a
	// single transaction. The asset must be ANALYZED; it transitions to
	// VERIFIED with its assigned session set, or nothing is written.
	Anchor(ctx context.Context, cmd CreateCommand) (*SessionEvent, error)
}

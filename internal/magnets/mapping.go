package magnets

import (
	"net/url"

	"github.com/shellac-studio/shellac/pkg/query"
	"github.com/shellac-studio/shellac/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "session_events", "se").
	Project("id", "ID").
	Project("title", "Title").
	Project("date", "Date").
	Project("client", "Client").
	Project("source_artifact_id", "SourceArtifactID").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "Date",
	Descending: true,
}

// Filters contains optional filtering criteria for session event queries.
// Client uses case-insensitive contains matching; SourceArtifactID uses
// exact matching.
type Filters struct {
	Client           *string `json:"client,omitempty"`
	SourceArtifactID *string `json:"source_artifact_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Client", f.Client).
		WhereEquals("SourceArtifactID", f.SourceArtifactID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("client"); c != "" {
		f.Client = &c
	}

	if s := values.Get("source_artifact_id"); s != "" {
		f.SourceArtifactID = &s
	}

	return f
}

func scanSessionEvent(s repository.Scanner) (SessionEvent, error) {
	var se SessionEvent

	err := s.Scan(
		&se.ID,
		&se.Title,
		&se.Date.Time,
		&se.Client,
		&se.SourceArtifactID,
		&se.CreatedAt,
	)

	return se, err
}

package assets

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/shellac-studio/shellac/internal/classifier"
	"github.com/shellac-studio/shellac/pkg/query"
	"github.com/shellac-studio/shellac/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "assets", "a").
	Project("id", "ID").
	Project("url", "URL").
	Project("storage_key", "StorageKey").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("type", "Type").
	Project("status", "Status").
	Project("classification", "Classification").
	Project("assigned_session_id", "AssignedSessionID").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for asset queries.
// Nil fields are ignored. Type, Status, and ContentType use exact matching;
// Filename uses case-insensitive contains matching.
type Filters struct {
	Type        *string `json:"type,omitempty"`
	Status      *string `json:"status,omitempty"`
	ContentType *string `json:"content_type,omitempty"`
	Filename    *string `json:"filename,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Type", f.Type).
		WhereEquals("Status", f.Status).
		WhereEquals("ContentType", f.ContentType).
		WhereContains("Filename", f.Filename)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if t := values.Get("type"); t != "" {
		f.Type = &t
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if ct := values.Get("content_type"); ct != "" {
		f.ContentType = &ct
	}

	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	return f
}

func scanAsset(s repository.Scanner) (Asset, error) {
	var a Asset
	var classificationRaw []byte

	err := s.Scan(
		&a.ID,
		&a.URL,
		&a.StorageKey,
		&a.Filename,
		&a.ContentType,
		&a.SizeBytes,
		&a.PageCount,
		&a.Type,
		&a.Status,
		&classificationRaw,
		&a.AssignedSessionID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		return a, err
	}

	if len(classificationRaw) > 0 {
		var result classifier.Result
		if err := json.Unmarshal(classificationRaw, &result); err != nil {
			return a, fmt.Errorf("unmarshal classification: %w", err)
		}
		result.Normalize()
		a.Classification = &result
	}

	return a, nil
}

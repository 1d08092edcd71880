// Package assets implements the artifact domain for Shellac. It provides
// types, data access, and the ingest workflow that classifies uploaded
// artifacts and persists them for archivist review.
package assets

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shellac-studio/shellac/internal/classifier"
)

// AssetType is the closed set of artifact categories.
type AssetType string

const (
	TypeCommercial AssetType = "COMMERCIAL"
	TypeDocument   AssetType = "DOCUMENT"
	TypeVisual     AssetType = "VISUAL"
	TypeAudio      AssetType = "AUDIO"
	TypeUnknown    AssetType = "UNKNOWN"
)

// Status is the artifact lifecycle stage.
type Status string

const (
	StatusUnprocessed Status = "UNPROCESSED"
	StatusAnalyzed    Status = "ANALYZED"
	StatusVerified    Status = "VERIFIED"
	StatusArchived    Status = "ARCHIVED"
)

// MapClassification maps a raw model label onto the closed AssetType set.
// The mapping is total: unrecognized labels yield TypeUnknown and
// recognized=false so the caller can log the miss.
func MapClassification(label string) (t AssetType, recognized bool) {
	switch AssetType(strings.ToUpper(strings.TrimSpace(label))) {
	case TypeCommercial:
		return TypeCommercial, true
	case TypeDocument:
		return TypeDocument, true
	case TypeVisual:
		return TypeVisual, true
	case TypeAudio:
		return TypeAudio, true
	default:
		return TypeUnknown, false
	}
}

// Asset represents an uploaded artifact with its classification payload and
// lifecycle status. AssignedSessionID is non-nil exactly when the asset has
// been anchored (status VERIFIED or later).
type Asset struct {
	ID                uuid.UUID          `json:"id"`
	URL               string             `json:"url"`
	StorageKey        string             `json:"storage_key"`
	Filename          string             `json:"filename"`
	ContentType       string             `json:"content_type"`
	SizeBytes         int64              `json:"size_bytes"`
	PageCount         *int               `json:"page_count"`
	Type              AssetType          `json:"type"`
	Status            Status             `json:"status"`
	Classification    *classifier.Result `json:"classification"`
	AssignedSessionID *uuid.UUID         `json:"assigned_session_id"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// IngestCommand carries the data needed to classify and register an
// artifact. Data holds the raw file bytes. PageCount is optional; callers
// may extract it via pdfcpu for PDF uploads.
type IngestCommand struct {
	Data        []byte
	Filename    string
	ContentType string
	PageCount   *int
}

// BatchResult reports the outcome of a single file within a batch ingest.
// On success, Asset is populated and Error is empty; on failure, Error
// describes the problem and Asset is nil.
type BatchResult struct {
	Asset    *Asset `json:"asset,omitempty"`
	Filename string `json:"filename"`
	Error    string `json:"error,omitempty"`
}

// Package magnets implements session events, the archival anchor points
// that verified artifacts attach to. Creating a magnet anchors exactly one
// analyzed asset to a studio session record.
package magnets

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// DefaultClient is recorded when a magnet is created without a client name.
const DefaultClient = "Unknown Client"

// Date is a calendar date serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

// ParseDate parses a YYYY-MM-DD string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// SessionEvent is a recording session record that anchors one source
// artifact. SourceArtifactID is unique across all session events.
type SessionEvent struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Date             Date      `json:"date"`
	Client           string    `json:"client"`
	SourceArtifactID uuid.UUID `json:"source_artifact_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// CreateCommand carries the fields needed to anchor an asset into a new
// session event.
type CreateCommand struct {
	AssetID uuid.UUID `json:"asset_id"`
	Title   string    `json:"title"`
	Date    Date      `json:"date"`
	Client  string    `json:"client"`
}

// Validate checks required fields and applies the client default.
func (c *CreateCommand) Validate() error {
	if c.AssetID == uuid.Nil {
		return ErrMissingAsset
	}
	if strings.TrimSpace(c.Title) == "" {
		return ErrMissingTitle
	}
	if c.Date.IsZero() {
		return ErrMissingDate
	}
	if strings.TrimSpace(c.Client) == "" {
		c.Client = DefaultClient
	}
	return nil
}

// Package classifier implements the artifact classification service for
// Shellac. It sends raw artifact bytes to a hosted generative model and
// returns a structured classification with type-specific extracted fields.
package classifier

// CommercialData holds fields extracted from commercial releases: vinyl,
// tape boxes, album art.
type CommercialData struct {
	Artist        string `json:"artist,omitempty"`
	Title         string `json:"title,omitempty"`
	CatalogNumber string `json:"catalogNumber,omitempty"`
}

// DocumentData holds fields extracted from studio paperwork: track sheets,
// letters, invoices.
type DocumentData struct {
	Date      string   `json:"date,omitempty"`
	Client    string   `json:"client,omitempty"`
	Personnel []string `json:"personnel,omitempty"`
}

// VisualData holds fields extracted from photographs of people, equipment,
// and sessions.
type VisualData struct {
	Tags                  []string `json:"tags,omitempty"`
	Description           string   `json:"description,omitempty"`
	PotentialSessionGuess string   `json:"potentialSessionGuess,omitempty"`
}

// Result is the structured classification payload returned by the model.
// Every field is advisory: consumers must tolerate absence of any of them.
// The type-specific data objects are populated once here at classification
// time; readers branch on Classification without re-inferring it.
type Result struct {
	Classification   string          `json:"classification"`
	CommercialData   *CommercialData `json:"commercialData,omitempty"`
	DocumentData     *DocumentData   `json:"documentData,omitempty"`
	VisualData       *VisualData     `json:"visualData,omitempty"`
	ConfidenceScore  float64         `json:"confidenceScore"`
	VisualCues       []string        `json:"visualCues"`
	IdentifiedPeople []string        `json:"identifiedPeople"`
	Tags             []string        `json:"tags"`
}

// Normalize replaces nil descriptive arrays with empty slices so the
// persisted payload always carries them.
func (r *Result) Normalize() {
	if r.VisualCues == nil {
		r.VisualCues = []string{}
	}
	if r.IdentifiedPeople == nil {
		r.IdentifiedPeople = []string{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
}

// SessionGuess returns the model's free-text session hint, if any, used to
// pre-fill the anchoring form.
func (r *Result) SessionGuess() string {
	if r.VisualData == nil {
		return ""
	}
	return r.VisualData.PotentialSessionGuess
}

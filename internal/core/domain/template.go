package domain

import "time"

// TemplateSummary is the list-view representation of a backend template.
type TemplateSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	DocType      string    `json:"doc_type,omitempty"`
	Jurisdiction string    `json:"jurisdiction,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Template is the full template detail returned by the get endpoint.
type Template struct {
	TemplateSummary

	// Body is the template skeleton in markdown.
	Body string `json:"body"`

	// Variables is the template's variable schema.
	Variables []Question `json:"variables,omitempty"`
}

// TemplatePage is one page of template summaries with pagination
// metadata, mirroring the backend list endpoint.
type TemplatePage struct {
	Items    []TemplateSummary `json:"items"`
	Total    int               `json:"total"`
	Skip     int               `json:"skip"`
	Limit    int               `json:"limit"`
	Returned int               `json:"returned"`
}

// TemplateMatch is a match candidate for a free-text query. Read-only,
// returned by the match endpoints.
type TemplateMatch struct {
	TemplateID   string  `json:"template_id"`
	Title        string  `json:"title"`
	Confidence   float64 `json:"confidence"`
	Reason       string  `json:"reason,omitempty"`
	DocType      string  `json:"doc_type,omitempty"`
	Jurisdiction string  `json:"jurisdiction,omitempty"`

	// Source records where the candidate came from, e.g. the template
	// library or a web search.
	Source string `json:"source,omitempty"`
}

// MatchResult is the synchronous match response: a top candidate plus
// alternatives.
type MatchResult struct {
	Top          *TemplateMatch  `json:"top,omitempty"`
	Alternatives []TemplateMatch `json:"alternatives,omitempty"`
	Found        bool            `json:"found"`
}

// Candidates returns the top match and alternatives as one list, top
// first.
func (r MatchResult) Candidates() []TemplateMatch {
	if r.Top == nil {
		return r.Alternatives
	}
	out := make([]TemplateMatch, 0, len(r.Alternatives)+1)
	out = append(out, *r.Top)
	out = append(out, r.Alternatives...)
	return out
}

package domain

// Draft is a rendered document produced by filling a template's
// variables with user-supplied answers. Read-only once received.
type Draft struct {
	// Markdown is the generated document body.
	Markdown string `json:"markdown"`

	// InstanceID identifies this generation on the backend.
	InstanceID string `json:"instance_id"`

	TemplateID    string `json:"template_id"`
	TemplateTitle string `json:"template_title,omitempty"`

	// MissingVariables lists variables the backend could not fill.
	MissingVariables []string `json:"missing_variables,omitempty"`

	// HasMissing is set when MissingVariables is non-empty.
	HasMissing bool `json:"has_missing"`
}

// QuestionSet is the backend response to a questions request: the
// question list for a template plus any answers inferred from the
// user's free-text query.
type QuestionSet struct {
	TemplateID    string     `json:"template_id"`
	TemplateTitle string     `json:"template_title,omitempty"`
	Questions     []Question `json:"questions"`

	// Prefilled holds answers the backend inferred from the query.
	// Prefilled values are flagged for user review.
	Prefilled AnswerMap `json:"prefilled,omitempty"`
}

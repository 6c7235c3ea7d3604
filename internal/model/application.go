package model

// Application is a rental application document. The field set is
// applicant-defined; only a handful of keys are read by the server, so the
// record is kept as a free-form JSON object rather than a fixed struct.
type Application map[string]interface{}

// Str returns the string value under key, or "" when the key is absent or not
// a string.
func (a Application) Str(key string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return ""
}

// SubmittedAt returns the submission timestamp, falling back to the legacy
// submissionDate key used by early application files.
func (a Application) SubmittedAt() string {
	if v := a.Str("submittedAt"); v != "" {
		return v
	}
	return a.Str("submissionDate")
}

// ApplicationSummary is the reduced list view of an application.
type ApplicationSummary struct {
	Filename      string `json:"filename"`
	SubmittedAt   string `json:"submittedAt"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	CellPhone     string `json:"cellPhone"`
	HomePhone     string `json:"homePhone"`
	DesiredMoveIn string `json:"desiredMoveIn"`
}

// Summarize projects the application document to its list view.
func (a Application) Summarize(filename string) ApplicationSummary {
	return ApplicationSummary{
		Filename:      filename,
		SubmittedAt:   a.SubmittedAt(),
		FirstName:     a.Str("firstName"),
		LastName:      a.Str("lastName"),
		Email:         a.Str("email"),
		CellPhone:     a.Str("cellPhone"),
		HomePhone:     a.Str("homePhone"),
		DesiredMoveIn: a.Str("desiredMoveIn"),
	}
}

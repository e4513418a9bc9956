package entity

// SessionState is the working tuple for one authenticated user. Values are
// never mutated in place; every change goes through a With* helper that
// returns a copy, so state transitions stay testable without a server.
type SessionState struct {
	Subject       Subject `json:"subject"`
	Level         Level   `json:"level"`
	Question      string  `json:"question"`
	ExtractedText string  `json:"extracted_text"`
	Answer        string  `json:"answer"`
	Summary       string  `json:"summary"`
	IsLoading     bool    `json:"is_loading"`
	Error         string  `json:"error"`
	UploadCount   int     `json:"upload_count"`
}

// NewSessionState returns the zero working state for a fresh session.
func NewSessionState() SessionState {
	return SessionState{}
}

// WithQuestion records the submitted form fields and marks the relay as
// in flight, clearing any previous outcome.
func (s SessionState) WithQuestion(subject Subject, level Level, question, extractedText string) SessionState {
	s.Subject = subject
	s.Level = level
	s.Question = question
	s.ExtractedText = extractedText
	s.Answer = ""
	s.Summary = ""
	s.Error = ""
	s.IsLoading = true
	return s
}

// WithAnswer resolves an in-flight relay with its result.
func (s SessionState) WithAnswer(answer, summary string) SessionState {
	s.Answer = answer
	s.Summary = summary
	s.Error = ""
	s.IsLoading = false
	return s
}

// WithError resolves an in-flight relay with a user-facing failure message.
func (s SessionState) WithError(message string) SessionState {
	s.Error = message
	s.IsLoading = false
	return s
}

// WithUploadReserved takes one unit of the upload quota ahead of an
// extraction attempt.
func (s SessionState) WithUploadReserved() SessionState {
	s.UploadCount++
	return s
}

// WithUploadReleased returns a reserved unit after a failed extraction.
func (s SessionState) WithUploadReleased() SessionState {
	if s.UploadCount > 0 {
		s.UploadCount--
	}
	return s
}

// WithExtractedText stores a successful extraction.
func (s SessionState) WithExtractedText(text string) SessionState {
	s.ExtractedText = text
	s.Error = ""
	return s
}

// WithRecalled copies an archived record wholesale into the working state.
// The record itself is untouched.
func (s SessionState) WithRecalled(r *QuestionRecord) SessionState {
	s.Subject = r.Subject
	s.Level = r.Level
	s.Question = r.Question
	s.Answer = r.Answer
	s.Summary = r.Summary
	s.Error = ""
	s.IsLoading = false
	return s
}

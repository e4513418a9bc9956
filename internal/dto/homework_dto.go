package dto

import "homework-ai-be/internal/entity"

type GenerateAnswerRequest struct {
	// Subject and Level are validated against the entity enums in the
	// controller; oneof can't express the multi-word subject names.
	Subject       string `json:"subject" validate:"required"`
	Level         string `json:"level" validate:"required,oneof=Beginner Intermediate Advanced"`
	Question      string `json:"question" validate:"required"`
	ExtractedText string `json:"extractedText"`
}

type GenerateAnswerResponse struct {
	Answer  string `json:"answer"`
	Summary string `json:"summary"`
}

type UploadResponse struct {
	Message       string `json:"message"`
	Filename      string `json:"filename"`
	ExtractedText string `json:"extracted_text"`
	UploadCount   int    `json:"upload_count"`
}

type SessionResponse struct {
	State entity.SessionState `json:"state"`
}

type QuestionListResponse struct {
	Questions []entity.QuestionRecord `json:"questions"`
}

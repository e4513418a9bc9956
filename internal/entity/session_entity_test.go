package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStateUpdaters(t *testing.T) {
	t.Run("WithQuestion marks loading and clears previous outcome", func(t *testing.T) {
		s := SessionState{Answer: "old", Summary: "old", Error: "old"}
		next := s.WithQuestion(SubjectMath, LevelIntermediate, "What is 2+2?", "")

		assert.True(t, next.IsLoading)
		assert.Empty(t, next.Answer)
		assert.Empty(t, next.Error)
		assert.Equal(t, SubjectMath, next.Subject)
		// Receiver untouched
		assert.Equal(t, "old", s.Answer)
	})

	t.Run("WithAnswer resolves loading", func(t *testing.T) {
		s := NewSessionState().WithQuestion(SubjectMath, LevelIntermediate, "q", "")
		next := s.WithAnswer("4", "Basic addition")

		assert.False(t, next.IsLoading)
		assert.Equal(t, "4", next.Answer)
		assert.Equal(t, "Basic addition", next.Summary)
	})

	t.Run("WithError resolves loading with message", func(t *testing.T) {
		s := NewSessionState().WithQuestion(SubjectScience, LevelBeginner, "q", "")
		next := s.WithError("boom")

		assert.False(t, next.IsLoading)
		assert.Equal(t, "boom", next.Error)
	})

	t.Run("upload quota is reserved and released explicitly", func(t *testing.T) {
		s := NewSessionState()
		reserved := s.WithUploadReserved()

		assert.Equal(t, 1, reserved.UploadCount)
		assert.Equal(t, 0, s.UploadCount)

		assert.Equal(t, 0, reserved.WithUploadReleased().UploadCount)
		// Releasing an empty quota never goes negative.
		assert.Equal(t, 0, s.WithUploadReleased().UploadCount)
	})

	t.Run("WithExtractedText stores text without touching quota", func(t *testing.T) {
		s := NewSessionState().WithUploadReserved()
		next := s.WithExtractedText("text")

		assert.Equal(t, "text", next.ExtractedText)
		assert.Equal(t, 1, next.UploadCount)
	})

	t.Run("WithRecalled copies record fields without touching the record", func(t *testing.T) {
		record := QuestionRecord{
			Id:       "1",
			Subject:  SubjectLanguage,
			Level:    LevelAdvanced,
			Question: "q",
			Answer:   "a",
			Summary:  "s",
		}
		s := NewSessionState().WithUploadReserved().WithExtractedText("keep me")
		next := s.WithRecalled(&record)

		assert.Equal(t, record.Answer, next.Answer)
		assert.Equal(t, record.Summary, next.Summary)
		assert.Equal(t, record.Subject, next.Subject)
		// Upload quota survives a recall
		assert.Equal(t, 1, next.UploadCount)
		// Record unchanged
		assert.Equal(t, "a", record.Answer)
	})
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, Subject("Computer Science").IsValid())
	assert.True(t, Subject("Math").IsValid())
	assert.False(t, Subject("Astrology").IsValid())

	assert.True(t, Level("Beginner").IsValid())
	assert.False(t, Level("Expert").IsValid())
}

package entity

// Subject is the study area a question belongs to.
type Subject string

const (
	SubjectComputerScience Subject = "Computer Science"
	SubjectHistory         Subject = "History"
	SubjectLanguage        Subject = "Language"
	SubjectMath            Subject = "Math"
	SubjectScience         Subject = "Science"
)

// Level is the difficulty the answer should be pitched at.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

func (s Subject) IsValid() bool {
	switch s {
	case SubjectComputerScience, SubjectHistory, SubjectLanguage, SubjectMath, SubjectScience:
		return true
	}
	return false
}

func (l Level) IsValid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// QuestionRecord is one completed question/answer exchange. Records are
// immutable once archived; only the archive creates them.
type QuestionRecord struct {
	Id       string  `json:"id"`
	Subject  Subject `json:"subject"`
	Level    Level   `json:"level"`
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Summary  string  `json:"summary"`
}

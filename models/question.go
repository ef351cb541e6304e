package models

import (
	"time"

	"gorm.io/datatypes"
)

type QuizDifficulty string

const (
	DifficultyBeginner     QuizDifficulty = "beginner"
	DifficultyIntermediate QuizDifficulty = "intermediate"
	DifficultyAdvanced     QuizDifficulty = "advanced"
)

func (d QuizDifficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionThisOrThat     QuestionType = "this_or_that"
	QuestionEmojiDecode    QuestionType = "emoji_decode"
	QuestionPersonality    QuestionType = "personality"
	QuestionPrediction     QuestionType = "prediction"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionMultipleChoice, QuestionThisOrThat, QuestionEmojiDecode,
		QuestionPersonality, QuestionPrediction:
		return true
	}
	return false
}

type QuizQuestion struct {
	ID            string                      `json:"id" gorm:"primaryKey"`
	Question      string                      `json:"question" gorm:"not null"`
	Options       datatypes.JSONSlice[string] `json:"options"`
	CorrectAnswer AnswerKey                   `json:"correct_answer" gorm:"type:integer"`
	Difficulty    QuizDifficulty              `json:"difficulty" gorm:"index;not null"`
	QuestionType  QuestionType                `json:"question_type" gorm:"not null;default:multiple_choice"`
	FunFact       string                      `json:"fun_fact"`
	Category      string                      `json:"category" gorm:"index;not null"`
	Subcategory   string                      `json:"subcategory"`

	// Interactive format specific fields.
	EmojiClue            *string                     `json:"emoji_clue,omitempty"`
	VisualOptions        datatypes.JSONSlice[string] `json:"visual_options,omitempty"`
	PersonalityTrait     *string                     `json:"personality_trait,omitempty"`
	PredictionYear       *string                     `json:"prediction_year,omitempty"`
	YouthEngagementScore *int                        `json:"youth_engagement_score,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"techkwiz/cache"
	"techkwiz/models"
)

// sequentialQuizLength is the fixed question count of the player-facing quiz
// flow. Smaller pools are cycled, larger pools truncated.
const sequentialQuizLength = 5

type QuestionService struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewQuestionService(db *gorm.DB, c *cache.Cache) *QuestionService {
	return &QuestionService{db: db, cache: c}
}

type QuestionCreateRequest struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer *int     `json:"correct_answer" binding:"required"`
	Difficulty    string   `json:"difficulty" binding:"required"`
	QuestionType  string   `json:"question_type"`
	FunFact       string   `json:"fun_fact"`
	Category      string   `json:"category" binding:"required"`
	Subcategory   string   `json:"subcategory"`

	EmojiClue            *string  `json:"emoji_clue"`
	VisualOptions        []string `json:"visual_options"`
	PersonalityTrait     *string  `json:"personality_trait"`
	PredictionYear       *string  `json:"prediction_year"`
	YouthEngagementScore *int     `json:"youth_engagement_score" binding:"omitempty,gte=1,lte=10"`
}

type QuestionUpdateRequest struct {
	Question      *string   `json:"question"`
	Options       *[]string `json:"options" binding:"omitempty,min=2"`
	CorrectAnswer *int      `json:"correct_answer"`
	Difficulty    *string   `json:"difficulty"`
	FunFact       *string   `json:"fun_fact"`
	Category      *string   `json:"category"`
	Subcategory   *string   `json:"subcategory"`
}

type QuestionFilter struct {
	Category   string
	Difficulty string
}

func (s *QuestionService) List(filter QuestionFilter) ([]models.QuizQuestion, error) {
	query := s.db.Order("created_at")
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}

	var questions []models.QuizQuestion
	if err := query.Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *QuestionService) Get(id string) (*models.QuizQuestion, error) {
	var question models.QuizQuestion
	if err := s.db.Where("id = ?", id).First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: question %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &question, nil
}

func (s *QuestionService) Create(ctx context.Context, req *QuestionCreateRequest) (*models.QuizQuestion, error) {
	answer, err := answerKeyFor(*req.CorrectAnswer, len(req.Options))
	if err != nil {
		return nil, err
	}

	difficulty := models.QuizDifficulty(req.Difficulty)
	if !difficulty.Valid() {
		return nil, fmt.Errorf("%w: unknown difficulty %q", ErrBadRequest, req.Difficulty)
	}

	questionType := models.QuestionType(req.QuestionType)
	if req.QuestionType == "" {
		questionType = models.QuestionMultipleChoice
	} else if !questionType.Valid() {
		return nil, fmt.Errorf("%w: unknown question type %q", ErrBadRequest, req.QuestionType)
	}

	question := models.QuizQuestion{
		ID:            uuid.NewString(),
		Question:      req.Question,
		Options:       datatypes.NewJSONSlice(req.Options),
		CorrectAnswer: answer,
		Difficulty:    difficulty,
		QuestionType:  questionType,
		FunFact:       req.FunFact,
		Category:      req.Category,
		Subcategory:   req.Subcategory,

		EmojiClue:            req.EmojiClue,
		VisualOptions:        datatypes.NewJSONSlice(req.VisualOptions),
		PersonalityTrait:     req.PersonalityTrait,
		PredictionYear:       req.PredictionYear,
		YouthEngagementScore: req.YouthEngagementScore,
	}
	if err := s.db.Create(&question).Error; err != nil {
		return nil, err
	}
	s.cache.InvalidateQuizData(ctx)
	return &question, nil
}

func (s *QuestionService) Update(ctx context.Context, id string, req *QuestionUpdateRequest) (*models.QuizQuestion, error) {
	question, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Question != nil {
		question.Question = *req.Question
	}
	if req.Options != nil {
		question.Options = datatypes.NewJSONSlice(*req.Options)
	}
	if req.CorrectAnswer != nil {
		answer, err := answerKeyFor(*req.CorrectAnswer, len(question.Options))
		if err != nil {
			return nil, err
		}
		question.CorrectAnswer = answer
	} else if question.CorrectAnswer.Graded && question.CorrectAnswer.Index >= len(question.Options) {
		return nil, fmt.Errorf("%w: correct_answer out of range for new options", ErrBadRequest)
	}
	if req.Difficulty != nil {
		difficulty := models.QuizDifficulty(*req.Difficulty)
		if !difficulty.Valid() {
			return nil, fmt.Errorf("%w: unknown difficulty %q", ErrBadRequest, *req.Difficulty)
		}
		question.Difficulty = difficulty
	}
	if req.FunFact != nil {
		question.FunFact = *req.FunFact
	}
	if req.Category != nil {
		question.Category = *req.Category
	}
	if req.Subcategory != nil {
		question.Subcategory = *req.Subcategory
	}

	if err := s.db.Save(question).Error; err != nil {
		return nil, err
	}
	s.cache.InvalidateQuizData(ctx)
	return question, nil
}

func (s *QuestionService) Delete(ctx context.Context, id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.QuizQuestion{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: question %s", ErrNotFound, id)
	}
	s.cache.InvalidateQuizData(ctx)
	return nil
}

// GetRandomQuestions returns the player-facing question set: a fresh random
// order on every call, always exactly five items. Pools smaller than five
// are cycled; larger pools are truncated.
func (s *QuestionService) GetRandomQuestions(ctx context.Context, category, difficulty string) ([]models.QuizQuestion, error) {
	key := cache.QuestionsKey(category, difficulty)

	var pool []models.QuizQuestion
	if !s.cache.GetJSON(ctx, key, &pool) {
		query := s.db.Where("category = ?", category)
		if difficulty != "" {
			query = query.Where("difficulty = ?", difficulty)
		}
		if err := query.Find(&pool).Error; err != nil {
			return nil, err
		}
		s.cache.SetJSON(ctx, key, pool, cache.QuestionsTTL)
	}

	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: no questions found for this category", ErrNotFound)
	}

	shuffled := make([]models.QuizQuestion, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	// Cycle through the shuffled pool until the fixed length is reached.
	for len(shuffled) < sequentialQuizLength {
		shuffled = append(shuffled, shuffled[:min(len(shuffled), sequentialQuizLength-len(shuffled))]...)
	}
	return shuffled[:sequentialQuizLength], nil
}

func answerKeyFor(index, optionCount int) (models.AnswerKey, error) {
	if index < 0 {
		return models.UngradedAnswer(), nil
	}
	if index >= optionCount {
		return models.AnswerKey{}, fmt.Errorf("%w: correct_answer %d out of range for %d options", ErrBadRequest, index, optionCount)
	}
	return models.GradedAnswer(index), nil
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"techkwiz/services"
)

// QuizHandler is the public, unauthenticated read surface used by players.
type QuizHandler struct {
	categoryService *services.CategoryService
	questionService *services.QuestionService
	rewardedService *services.RewardedConfigService
	contentService  *services.ContentService
}

func NewQuizHandler(
	categoryService *services.CategoryService,
	questionService *services.QuestionService,
	rewardedService *services.RewardedConfigService,
	contentService *services.ContentService,
) *QuizHandler {
	return &QuizHandler{
		categoryService: categoryService,
		questionService: questionService,
		rewardedService: rewardedService,
		contentService:  contentService,
	}
}

func (h *QuizHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *QuizHandler) GetCategory(c *gin.Context) {
	category, err := h.categoryService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// GetQuestions returns the fixed-length random question set for a category.
// The count query param is accepted for compatibility but the response is
// always exactly five questions.
func (h *QuizHandler) GetQuestions(c *gin.Context) {
	questions, err := h.questionService.GetRandomQuestions(
		c.Request.Context(), c.Param("category_id"), c.Query("difficulty"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// GetSequentialQuestions is the alternate path with the same five-question
// contract, no difficulty filter.
func (h *QuizHandler) GetSequentialQuestions(c *gin.Context) {
	questions, err := h.questionService.GetRandomQuestions(
		c.Request.Context(), c.Param("category_id"), "")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

func (h *QuizHandler) GetQuestion(c *gin.Context) {
	question, err := h.questionService.Get(c.Param("question_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

func (h *QuizHandler) GetTimerConfig(c *gin.Context) {
	timerConfig, err := h.categoryService.TimerConfig(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, timerConfig)
}

func (h *QuizHandler) GetHomepageRewardedConfig(c *gin.Context) {
	config, err := h.rewardedService.Resolve(services.HomepageScope)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, config)
}

func (h *QuizHandler) GetCategoryRewardedConfig(c *gin.Context) {
	config, err := h.rewardedService.Resolve(c.Param("category_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, config)
}

func (h *QuizHandler) GetScriptsForPlacement(c *gin.Context) {
	scripts, err := h.contentService.ActiveScripts(c.Param("placement"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, scripts)
}

func (h *QuizHandler) GetAdSlotsForPlacement(c *gin.Context) {
	slots, err := h.contentService.ActiveAdSlots(c.Param("placement"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (h *QuizHandler) GetBetweenQuestionsAds(c *gin.Context) {
	slots, err := h.contentService.ActiveAdSlots("between-questions")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, slots)
}

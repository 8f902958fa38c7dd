package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vietlingo/vietlingo-backend/internal/handlers"
	"github.com/vietlingo/vietlingo-backend/internal/middleware"
)

type Handlers struct {
	Healthcheck   *handlers.HealthcheckHandler
	Auth          *handlers.AuthHandler
	Topic         *handlers.TopicHandler
	Question      *handlers.QuestionHandler
	Answer        *handlers.AnswerHandler
	Task          *handlers.TaskHandler
	WeeklySet     *handlers.WeeklySetHandler
	DailyLearning *handlers.DailyLearningHandler
}

func NewRouter(h Handlers, corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsOrigins) == 1 && corsOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = corsOrigins
	}
	router.Use(cors.New(corsConfig))
	router.Use(middleware.RequestContext())

	router.GET("/healthcheck", h.Healthcheck.Healthcheck)

	api := router.Group("/api")
	{
		api.POST("/auth/login", h.Auth.Login)
		api.GET("/auth/token", h.Auth.GetToken)
		api.GET("/user-answers", h.Answer.History)

		api.GET("/topics", h.Topic.List)
		api.POST("/topics", h.Topic.Create)
		api.GET("/topics/:id", h.Topic.Get)
		api.PUT("/topics/:id", h.Topic.Update)
		api.DELETE("/topics/:id", h.Topic.Delete)

		api.GET("/questions/random", h.Question.Random)
		api.GET("/questions", h.Question.List)
		api.POST("/questions", h.Question.Create)
		api.GET("/questions/:id", h.Question.Get)
		api.PUT("/questions/:id", h.Question.Update)
		api.DELETE("/questions/:id", h.Question.Delete)
		api.POST("/questions/import", h.Question.Import)

		api.POST("/check-answer", h.Answer.CheckAnswer)

		api.GET("/tasks/weekly", h.Task.ListWeekly)
		api.POST("/tasks/weekly", h.Task.CreateWeekly)
		api.GET("/tasks/dashboard", h.Task.Dashboard)
		api.POST("/tasks/progress", h.Task.UpdateProgress)
		api.POST("/tasks/daily-activity", h.Task.DailyActivity)
		api.GET("/leaderboard", h.Task.Leaderboard)

		api.GET("/weekly-questions/sets", h.WeeklySet.ListSets)
		api.POST("/weekly-questions/sets", h.WeeklySet.CreateSet)
		api.GET("/weekly-questions/progress", h.WeeklySet.Progress)
		api.POST("/weekly-questions/progress", h.WeeklySet.SubmitAnswer)
		api.GET("/weekly-questions", h.WeeklySet.Questions)

		api.GET("/daily-learning/dashboard", h.DailyLearning.Dashboard)
		api.GET("/daily-learning/sessions", h.DailyLearning.Sessions)
		api.POST("/daily-learning/sessions", h.DailyLearning.StartSession)
		api.POST("/daily-learning/answer", h.DailyLearning.SubmitAnswer)
		api.GET("/daily-learning/settings", h.DailyLearning.GetSettings)
		api.PUT("/daily-learning/settings", h.DailyLearning.UpdateSettings)
		api.POST("/daily-learning/reset", h.DailyLearning.ResetSession)
		api.GET("/daily-learning/history", h.DailyLearning.History)
	}

	return router
}

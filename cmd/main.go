package main

import (
	"os"
	"strings"
	"time"

	"github.com/vietlingo/vietlingo-backend/internal/db"
	"github.com/vietlingo/vietlingo-backend/internal/handlers"
	"github.com/vietlingo/vietlingo-backend/internal/jobs"
	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/repos"
	"github.com/vietlingo/vietlingo-backend/internal/server"
	"github.com/vietlingo/vietlingo-backend/internal/services"
	"github.com/vietlingo/vietlingo-backend/internal/utils"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	port := utils.GetEnv("PORT", "8080", log)
	jwtSecret := utils.GetEnv("JWT_SECRET_KEY", "dev-secret-change-me", log)
	tokenTTLHours := utils.GetEnvAsInt("ACCESS_TOKEN_TTL_HOURS", 72, log)
	corsOrigins := strings.Split(utils.GetEnv("CORS_ORIGINS", "*", log), ",")
	weeklySetCron := utils.GetEnv("WEEKLY_SET_CRON", "0 5 0 * * 1", log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("failed to connect to postgres", "error", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}
	gormDB := pg.DB()

	userRepo := repos.NewUserRepo(gormDB, log)
	userTokenRepo := repos.NewUserTokenRepo(gormDB, log)
	topicRepo := repos.NewTopicRepo(gormDB, log)
	questionRepo := repos.NewQuestionRepo(gormDB, log)
	userAnswerRepo := repos.NewUserAnswerRepo(gormDB, log)
	weeklyTaskRepo := repos.NewWeeklyTaskRepo(gormDB, log)
	taskProgressRepo := repos.NewUserTaskProgressRepo(gormDB, log)
	completionRepo := repos.NewDailyTaskCompletionRepo(gormDB, log)
	userPointsRepo := repos.NewUserPointsRepo(gormDB, log)
	weeklySetRepo := repos.NewWeeklyQuestionSetRepo(gormDB, log)
	weeklyProgressRepo := repos.NewWeeklyQuestionProgressRepo(gormDB, log)
	sessionRepo := repos.NewDailyLearningSessionRepo(gormDB, log)
	sessionAnswerRepo := repos.NewDailyLearningQuestionRepo(gormDB, log)
	streakRepo := repos.NewDailyLearningStreakRepo(gormDB, log)
	settingsRepo := repos.NewDailyLearningSettingsRepo(gormDB, log)

	pointsService := services.NewPointsService(userPointsRepo, log)
	authService := services.NewAuthService(
		gormDB, userRepo, userTokenRepo, jwtSecret,
		time.Duration(tokenTTLHours)*time.Hour, log)
	topicService := services.NewTopicService(gormDB, topicRepo, log)
	questionService := services.NewQuestionService(gormDB, questionRepo, topicRepo, log)
	answerService := services.NewAnswerService(gormDB, questionRepo, userRepo, userAnswerRepo, log)
	taskService := services.NewTaskService(
		gormDB, userRepo, weeklyTaskRepo, taskProgressRepo, completionRepo, pointsService, log)
	weeklySetService := services.NewWeeklySetService(
		gormDB, userRepo, questionRepo, weeklySetRepo, weeklyProgressRepo, pointsService, log)
	learningService := services.NewDailyLearningService(
		gormDB, userRepo, questionRepo, sessionRepo, sessionAnswerRepo,
		streakRepo, settingsRepo, pointsService, log)

	weeklySetJob := jobs.NewWeeklySetJob(weeklySetService, weeklySetCron, log)
	if err := weeklySetJob.Start(); err != nil {
		log.Fatal("failed to start weekly set job", "error", err)
	}
	defer weeklySetJob.Stop()

	router := server.NewRouter(server.Handlers{
		Healthcheck:   handlers.NewHealthcheckHandler(),
		Auth:          handlers.NewAuthHandler(authService, log),
		Topic:         handlers.NewTopicHandler(topicService, log),
		Question:      handlers.NewQuestionHandler(questionService, log),
		Answer:        handlers.NewAnswerHandler(answerService, log),
		Task:          handlers.NewTaskHandler(taskService, pointsService, log),
		WeeklySet:     handlers.NewWeeklySetHandler(weeklySetService, log),
		DailyLearning: handlers.NewDailyLearningHandler(learningService, log),
	}, corsOrigins)

	log.Info("server starting", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}

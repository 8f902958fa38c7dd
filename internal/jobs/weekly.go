package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron"

	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/services"
)

// WeeklySetJob keeps a question set available for the current week. It runs
// once at startup and then on the configured cron schedule (Monday night by
// default). EnsureCurrentWeekSet is idempotent, so overlapping runs are safe.
type WeeklySetJob struct {
	weeklySets services.WeeklySetService
	schedule   string
	cron       *cron.Cron
	log        *logger.Logger
}

func NewWeeklySetJob(weeklySets services.WeeklySetService, schedule string, baseLog *logger.Logger) *WeeklySetJob {
	jobLog := baseLog.With("job", "WeeklySetJob")
	return &WeeklySetJob{weeklySets: weeklySets, schedule: schedule, log: jobLog}
}

func (j *WeeklySetJob) Start() error {
	j.run()

	j.cron = cron.New()
	if err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}
	j.cron.Start()
	j.log.Info("weekly set job scheduled", "schedule", j.schedule)
	return nil
}

func (j *WeeklySetJob) Stop() {
	if j.cron != nil {
		j.cron.Stop()
	}
}

func (j *WeeklySetJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	set, created, err := j.weeklySets.EnsureCurrentWeekSet(ctx)
	if err != nil {
		j.log.Error("weekly set creation failed", "error", err)
		return
	}
	if created {
		j.log.Info("weekly question set created", "set_id", set.ID)
	}
}

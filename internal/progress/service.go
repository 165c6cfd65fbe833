package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/workoutware/internal/telemetry/metrics"
	"github.com/2beens/workoutware/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultRollupWeeks = 12
	neglectWindowWeeks = 4
	suggestionDays     = 7
	dashboardListLimit = 5
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=progress

type progressRepo interface {
	SetRows(ctx context.Context, userID, exerciseID int, from, to *time.Time) ([]SetRow, error)
	ReplaceEntries(ctx context.Context, userID int, periods []Period, build func(rows []SetRow) []Entry) (int, error)
	ListEntries(ctx context.Context, userID, exerciseID int, period Period) ([]Entry, error)
	UserIDs(ctx context.Context) ([]int, error)
	ExerciseNames(ctx context.Context) (map[int]string, error)
	MuscleGroups(ctx context.Context) ([]string, error)
	MuscleGroupCounts(ctx context.Context, userID int, since time.Time) (map[string]int, error)
	CompletedSessionDays(ctx context.Context, userID int) ([]time.Time, error)
	CountCompleted(ctx context.Context, userID int, since *time.Time) (int, error)
	TopExercisesByVolume(ctx context.Context, userID, limit int) ([]ExerciseVolume, error)
	NotDoneSince(ctx context.Context, userID int, since time.Time, limit int) ([]ExerciseSuggestion, error)
}

type RollupResult struct {
	ExerciseID int       `json:"exerciseId"`
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
	Weekly     []Bucket  `json:"weekly"`
	Summary    Summary   `json:"summary"`
}

type Dashboard struct {
	Streak          int                  `json:"streak"`
	WeekCompleted   int                  `json:"weekCompleted"`
	TotalCompleted  int                  `json:"totalCompleted"`
	TopExercises    []ExerciseVolume     `json:"topExercises"`
	Suggestions     []ExerciseSuggestion `json:"suggestions"`
	Recommendations []Recommendation     `json:"recommendations"`
}

type Service struct {
	repo    progressRepo
	metrics *metrics.Manager
	now     func() time.Time
}

func NewService(repo progressRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:    repo,
		metrics: metricsManager,
		now:     time.Now,
	}
}

func (s *Service) today() time.Time {
	return PeriodDaily.Truncate(s.now().UTC())
}

// Rollup aggregates the exercise over [from, to], both inclusive. Missing
// bounds default to the last twelve weeks.
func (s *Service) Rollup(ctx context.Context, userID, exerciseID int, from, to *time.Time) (_ *RollupResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.rollup")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	end := s.today()
	if to != nil {
		end = PeriodDaily.Truncate(*to)
	}
	start := end.AddDate(0, 0, -7*DefaultRollupWeeks)
	if from != nil {
		start = PeriodDaily.Truncate(*from)
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: from after to", ErrInvalidRange)
	}

	rows, err := s.repo.SetRows(ctx, userID, exerciseID, &start, &end)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("rows", len(rows)))

	return &RollupResult{
		ExerciseID: exerciseID,
		From:       start,
		To:         end,
		Weekly:     RollupByPeriod(rows, PeriodWeekly),
		Summary:    Rollup(rows),
	}, nil
}

// Rebuild recomputes the stored progress of a user for the periods.
func (s *Service) Rebuild(ctx context.Context, userID int, periods []Period, trigger string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.rebuild")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	if len(periods) == 0 {
		periods = []Period{PeriodWeekly}
	}

	start := time.Now()
	written, err := s.repo.ReplaceEntries(ctx, userID, periods, func(rows []SetRow) []Entry {
		var entries []Entry
		for _, p := range periods {
			entries = append(entries, BuildEntries(userID, rows, p)...)
		}
		return entries
	})
	if err != nil {
		return 0, fmt.Errorf("rebuild progress for user %d: %w", userID, err)
	}

	if s.metrics != nil {
		s.metrics.CounterProgressRebuilds.WithLabelValues(trigger).Inc()
		s.metrics.HistProgressRebuildDuration.Observe(time.Since(start).Seconds())
	}
	log.Debugf("progress rebuilt for user %d [%s]: %d rows", userID, trigger, written)

	return written, nil
}

// RebuildAll rebuilds every user, one transaction per user. Failures are
// logged and counted, the rest still run.
func (s *Service) RebuildAll(ctx context.Context, periods []Period, trigger string) (rebuilt, failed int, err error) {
	userIDs, err := s.repo.UserIDs(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list users: %w", err)
	}

	for _, userID := range userIDs {
		if ctx.Err() != nil {
			return rebuilt, failed, ctx.Err()
		}
		if _, err := s.Rebuild(ctx, userID, periods, trigger); err != nil {
			log.Errorf("rebuild all: %s", err)
			failed++
			continue
		}
		rebuilt++
	}
	return rebuilt, failed, nil
}

func (s *Service) Entries(ctx context.Context, userID, exerciseID int, period Period) ([]Entry, error) {
	return s.repo.ListEntries(ctx, userID, exerciseID, period)
}

func (s *Service) Recommendations(ctx context.Context, userID int) (_ []Recommendation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.recommendations")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	weekly, err := s.repo.ListEntries(ctx, userID, 0, PeriodWeekly)
	if err != nil {
		return nil, err
	}
	names, err := s.repo.ExerciseNames(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := s.repo.MuscleGroups(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.MuscleGroupCounts(ctx, userID, s.today().AddDate(0, 0, -7*neglectWindowWeeks))
	if err != nil {
		return nil, err
	}

	recs := StalledLifts(weekly, names)
	recs = append(recs, NeglectedMuscleGroups(groups, counts)...)
	if recs == nil {
		recs = make([]Recommendation, 0)
	}
	return recs, nil
}

func (s *Service) Dashboard(ctx context.Context, userID int) (_ *Dashboard, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.dashboard")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	today := s.today()
	days, err := s.repo.CompletedSessionDays(ctx, userID)
	if err != nil {
		return nil, err
	}

	weekStart := PeriodWeekly.Truncate(today)
	weekCompleted, err := s.repo.CountCompleted(ctx, userID, &weekStart)
	if err != nil {
		return nil, err
	}
	totalCompleted, err := s.repo.CountCompleted(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	top, err := s.repo.TopExercisesByVolume(ctx, userID, dashboardListLimit)
	if err != nil {
		return nil, err
	}
	suggestions, err := s.repo.NotDoneSince(ctx, userID, today.AddDate(0, 0, -suggestionDays), dashboardListLimit)
	if err != nil {
		return nil, err
	}
	recs, err := s.Recommendations(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Streak:          Streak(days, today),
		WeekCompleted:   weekCompleted,
		TotalCompleted:  totalCompleted,
		TopExercises:    top,
		Suggestions:     suggestions,
		Recommendations: recs,
	}, nil
}

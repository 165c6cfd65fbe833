package test

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/workoutware/internal/progress"
	"github.com/2beens/workoutware/internal/validation"
	"github.com/2beens/workoutware/internal/workouts"
)

func (s *IntegrationTestSuite) logSet(ctx context.Context, seID int, weight string, reps int) workouts.LoggedSet {
	w := decimal.RequireFromString(weight)
	var logged workouts.LoggedSet
	s.doJSON(ctx, "POST", fmt.Sprintf("/session-exercises/%d/sets", seID), workouts.NewSet{
		Weight: &w,
		Reps:   reps,
	}, http.StatusCreated, &logged)
	return logged
}

func (s *IntegrationTestSuite) TestWorkoutFlow() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	today := time.Now().UTC().Truncate(24 * time.Hour)
	yesterday := today.AddDate(0, 0, -1)

	var bench workouts.Exercise
	s.doJSON(ctx, "POST", "/exercises", workouts.Exercise{
		Name:        "Flow Bench Press",
		Type:        "strength",
		MuscleGroup: "chest",
		Difficulty:  2,
	}, http.StatusCreated, &bench)
	require.Positive(t, bench.ID)

	status, _ := s.do(ctx, "POST", "/exercises", workouts.Exercise{
		Name: "Flow Bench Press", Type: "strength", MuscleGroup: "chest", Difficulty: 2,
	})
	assert.Equal(t, http.StatusConflict, status)

	var exercises workouts.ExercisesResponse
	s.doJSON(ctx, "GET", "/exercises?muscle_group=chest", nil, http.StatusOK, &exercises)
	require.NotEmpty(t, exercises.Exercises)

	// yesterday: the first set ever is a PR
	var first workouts.Session
	s.doJSON(ctx, "POST", "/sessions", workouts.CreateSessionRequest{
		Name: "push", Date: yesterday.Format(time.DateOnly),
	}, http.StatusCreated, &first)

	var firstSE workouts.SessionExercise
	s.doJSON(ctx, "POST", fmt.Sprintf("/sessions/%d/exercises", first.ID), workouts.SessionExercise{
		ExerciseID: bench.ID,
	}, http.StatusCreated, &firstSE)

	pr := s.logSet(ctx, firstSE.ID, "100", 5)
	require.NotNil(t, pr.Validation)
	assert.Equal(t, validation.StatusPR, pr.Validation.Status)
	assert.Equal(t, 1, pr.SetNumber)

	var completed workouts.Session
	s.doJSON(ctx, "POST", fmt.Sprintf("/sessions/%d/complete", first.ID), nil, http.StatusOK, &completed)
	assert.True(t, completed.Completed)

	// today: classified against yesterday only
	var second workouts.Session
	s.doJSON(ctx, "POST", "/sessions", workouts.CreateSessionRequest{
		Name: "push", Date: today.Format(time.DateOnly),
	}, http.StatusCreated, &second)
	var secondSE workouts.SessionExercise
	s.doJSON(ctx, "POST", fmt.Sprintf("/sessions/%d/exercises", second.ID), workouts.SessionExercise{
		ExerciseID: bench.ID,
	}, http.StatusCreated, &secondSE)

	normal := s.logSet(ctx, secondSE.ID, "100", 5)
	require.NotNil(t, normal.Validation)
	assert.Equal(t, validation.StatusNormal, normal.Validation.Status)
	assert.Equal(t, 1, normal.SetNumber)

	newPR := s.logSet(ctx, secondSE.ID, "120", 5)
	assert.Equal(t, validation.StatusPR, newPR.Validation.Status)
	assert.Equal(t, "100", newPR.Validation.PreviousMax.String())
	assert.Equal(t, 2, newPR.SetNumber)

	low := s.logSet(ctx, secondSE.ID, "60", 5)
	assert.Equal(t, validation.StatusSuspiciousLow, low.Validation.Status)

	// dry run, nothing stored
	var checked validation.Result
	s.doJSON(ctx, "POST", "/validation/check", validation.CheckRequest{
		ExerciseID: bench.ID,
		Weight:     decimal.NewFromInt(130),
	}, http.StatusOK, &checked)
	assert.Equal(t, validation.StatusPR, checked.Status)

	var events validation.EventsResponse
	s.doJSON(ctx, "GET", fmt.Sprintf("/validation/events?exercise_id=%d", bench.ID), nil, http.StatusOK, &events)
	require.Len(t, events.Events, 4)
	var flagged []validation.Status
	var lowEventID int
	for _, e := range events.Events {
		flagged = append(flagged, e.FlaggedAs)
		if e.FlaggedAs == validation.StatusSuspiciousLow {
			lowEventID = e.ID
		}
	}
	assert.ElementsMatch(t, []validation.Status{
		validation.StatusPR, validation.StatusNormal, validation.StatusPR, validation.StatusSuspiciousLow,
	}, flagged)

	s.doJSON(ctx, "PUT", fmt.Sprintf("/validation/events/%d", lowEventID), validation.UserActionRequest{
		Action: validation.UserActionConfirmed,
	}, http.StatusOK, nil)

	status, _ = s.do(ctx, "PUT", fmt.Sprintf("/validation/events/%d", lowEventID), validation.UserActionRequest{
		Action: "shrug",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	var pbs validation.PersonalBestsResponse
	s.doJSON(ctx, "GET", fmt.Sprintf("/personal-bests?exercise_id=%d", bench.ID), nil, http.StatusOK, &pbs)
	require.Len(t, pbs.PersonalBests, 2)

	// nobody else can log into this session
	otherToken := s.registerAndLogin("stranger", "stranger@workoutware.test", "curls-for-the-girls")
	w := decimal.NewFromInt(50)
	status, _ = s.doWithToken(ctx, otherToken, "POST", fmt.Sprintf("/session-exercises/%d/sets", secondSE.ID), workouts.NewSet{
		Weight: &w, Reps: 5,
	})
	assert.Equal(t, http.StatusNotFound, status)

	s.doJSON(ctx, "POST", fmt.Sprintf("/sessions/%d/complete", second.ID), nil, http.StatusOK, nil)

	// progress
	var rebuilt progress.RebuildResponse
	s.doJSON(ctx, "POST", "/progress/rebuild?periods=all", nil, http.StatusOK, &rebuilt)
	assert.Positive(t, rebuilt.Written)

	var daily progress.EntriesResponse
	s.doJSON(ctx, "GET", fmt.Sprintf("/progress?exercise_id=%d&period=daily", bench.ID), nil, http.StatusOK, &daily)
	require.Len(t, daily.Entries, 2)
	assert.Equal(t, "100", daily.Entries[0].MaxWeight.String())
	assert.Equal(t, "120", daily.Entries[1].MaxWeight.String())

	var rollup progress.RollupResult
	s.doJSON(ctx, "GET", fmt.Sprintf("/progress/rollup?exercise_id=%d", bench.ID), nil, http.StatusOK, &rollup)
	assert.Equal(t, "120", rollup.Summary.MaxWeight.String())
	assert.Equal(t, "1900", rollup.Summary.TotalVolume.String())
	assert.Equal(t, 4, rollup.Summary.SetCount)
	assert.Equal(t, 2, rollup.Summary.WorkoutCount)

	status, _ = s.do(ctx, "GET", fmt.Sprintf("/progress/rollup?exercise_id=%d&from=2024-02-01&to=2024-01-01", bench.ID), nil)
	assert.Equal(t, http.StatusBadRequest, status)

	var dashboard progress.Dashboard
	s.doJSON(ctx, "GET", "/progress/dashboard", nil, http.StatusOK, &dashboard)
	assert.Equal(t, 2, dashboard.TotalCompleted)
	assert.GreaterOrEqual(t, dashboard.Streak, 2)

	// the exercise is in use now
	status, _ = s.do(ctx, "DELETE", fmt.Sprintf("/exercises/%d", bench.ID), nil)
	assert.Equal(t, http.StatusConflict, status)
}

func (s *IntegrationTestSuite) TestTemplates() {
	t := s.T()
	ctx := context.Background()

	var squat workouts.Exercise
	s.doJSON(ctx, "POST", "/exercises", workouts.Exercise{
		Name: "Template Squat", Type: "strength", MuscleGroup: "legs", Difficulty: 3,
	}, http.StatusCreated, &squat)

	var session workouts.Session
	s.doJSON(ctx, "POST", "/sessions", workouts.CreateSessionRequest{
		Name: "legs", Date: time.Now().UTC().Format(time.DateOnly),
	}, http.StatusCreated, &session)
	var se workouts.SessionExercise
	s.doJSON(ctx, "POST", fmt.Sprintf("/sessions/%d/exercises", session.ID), workouts.SessionExercise{
		ExerciseID: squat.ID,
	}, http.StatusCreated, &se)
	s.logSet(ctx, se.ID, "80", 8)

	var template workouts.Session
	s.doJSON(ctx, "POST", fmt.Sprintf("/sessions/%d/template", session.ID), workouts.TemplateRequest{
		Name: "legs day",
	}, http.StatusCreated, &template)
	assert.True(t, template.IsTemplate)

	var templates workouts.TemplatesResponse
	s.doJSON(ctx, "GET", "/templates", nil, http.StatusOK, &templates)
	require.NotEmpty(t, templates.Templates)

	var started workouts.Session
	s.doJSON(ctx, "POST", fmt.Sprintf("/templates/%d/start", template.ID), workouts.TemplateRequest{
		Date: time.Now().UTC().Format(time.DateOnly),
	}, http.StatusCreated, &started)
	assert.False(t, started.IsTemplate)
	assert.NotEqual(t, template.ID, started.ID)

	var loaded workouts.Session
	s.doJSON(ctx, "GET", fmt.Sprintf("/sessions/%d", started.ID), nil, http.StatusOK, &loaded)
	require.Len(t, loaded.Exercises, 1)
	assert.Equal(t, squat.ID, loaded.Exercises[0].ExerciseID)
	assert.Empty(t, loaded.Exercises[0].Sets)
}

package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/workoutware/internal/bodystats"
	"github.com/2beens/workoutware/internal/goals"
)

func (s *IntegrationTestSuite) TestGoals() {
	t := s.T()
	ctx := context.Background()

	token := s.registerAndLogin("goalie", "goalie@workoutware.test", "hit-the-target")
	do := func(method, path string, body any, expectedStatus int, out any) {
		status, respBytes := s.doWithToken(ctx, token, method, path, body)
		require.Equal(t, expectedStatus, status, "%s %s: %s", method, path, respBytes)
		if out != nil {
			require.NoError(t, json.Unmarshal(respBytes, out))
		}
	}

	current := decimal.NewFromInt(50)
	var goal goals.Goal
	do("POST", "/goals", goals.CreateGoalRequest{
		Type:         "strength",
		Description:  "bench 100",
		TargetValue:  decimal.NewFromInt(100),
		CurrentValue: &current,
		Unit:         "kg",
		TargetDate:   time.Now().UTC().AddDate(0, 3, 0).Format(time.DateOnly),
	}, http.StatusCreated, &goal)
	assert.Equal(t, goals.StatusActive, goal.Status)
	assert.Equal(t, 50.0, goal.ProgressPercent)

	do("POST", "/goals", goals.CreateGoalRequest{
		Type:        "strength",
		TargetValue: decimal.NewFromInt(-1),
	}, http.StatusBadRequest, nil)

	var other goals.Goal
	do("POST", "/goals", goals.CreateGoalRequest{
		Type:        "bodyweight",
		TargetValue: decimal.NewFromInt(80),
		Unit:        "kg",
	}, http.StatusCreated, &other)

	newValue := decimal.NewFromInt(100)
	var updated goals.Goal
	do("PUT", fmt.Sprintf("/goals/%d", goal.ID), goals.UpdateGoalRequest{
		CurrentValue: &newValue,
		Status:       "completed",
	}, http.StatusOK, &updated)
	assert.Equal(t, goals.StatusCompleted, updated.Status)
	assert.Equal(t, 100.0, updated.ProgressPercent)
	require.NotNil(t, updated.CompletionDate)

	var active goals.GoalsResponse
	do("GET", "/goals?status=active", nil, http.StatusOK, &active)
	require.Len(t, active.Goals, 1)
	assert.Equal(t, other.ID, active.Goals[0].ID)

	var all goals.GoalsResponse
	do("GET", "/goals", nil, http.StatusOK, &all)
	assert.Len(t, all.Goals, 2)

	// goals of other users are invisible
	status, _ := s.do(ctx, "GET", fmt.Sprintf("/goals/%d", goal.ID), nil)
	assert.Equal(t, http.StatusNotFound, status)

	do("DELETE", fmt.Sprintf("/goals/%d", other.ID), nil, http.StatusOK, nil)
	do("GET", fmt.Sprintf("/goals/%d", other.ID), nil, http.StatusNotFound, nil)
}

func (s *IntegrationTestSuite) TestBodyStats() {
	t := s.T()
	ctx := context.Background()

	token := s.registerAndLogin("scale", "scale@workoutware.test", "weigh-in-daily")
	do := func(method, path string, body any, expectedStatus int, out any) {
		status, respBytes := s.doWithToken(ctx, token, method, path, body)
		require.Equal(t, expectedStatus, status, "%s %s: %s", method, path, respBytes)
		if out != nil {
			require.NoError(t, json.Unmarshal(respBytes, out))
		}
	}

	waist := decimal.NewFromInt(90)
	var first bodystats.Stat
	do("POST", "/body-stats", bodystats.LogStatRequest{
		LogDate: "2024-05-01",
		Weight:  decimal.RequireFromString("82.5"),
		Waist:   &waist,
	}, http.StatusCreated, &first)
	do("POST", "/body-stats", bodystats.LogStatRequest{
		LogDate: "2024-05-15",
		Weight:  decimal.RequireFromString("81"),
	}, http.StatusCreated, nil)
	do("POST", "/body-stats", bodystats.LogStatRequest{
		LogDate: "2024-06-01",
		Weight:  decimal.RequireFromString("80.25"),
	}, http.StatusCreated, nil)

	do("POST", "/body-stats", bodystats.LogStatRequest{
		LogDate: "2024-06-02",
		Weight:  decimal.Zero,
	}, http.StatusBadRequest, nil)

	var stats bodystats.StatsResponse
	do("GET", "/body-stats?from=2024-05-10", nil, http.StatusOK, &stats)
	require.Len(t, stats.Stats, 2)
	assert.Equal(t, "80.25", stats.Stats[0].Weight.String())

	var trend bodystats.Trend
	do("GET", "/body-stats/trend", nil, http.StatusOK, &trend)
	require.Len(t, trend.Points, 3)
	require.NotNil(t, trend.Delta)
	assert.Equal(t, "-2.25", trend.Delta.String())

	do("GET", "/body-stats/trend?from=2024-07-01&to=2024-06-01", nil, http.StatusBadRequest, nil)

	do("DELETE", fmt.Sprintf("/body-stats/%d", first.ID), nil, http.StatusOK, nil)
	do("DELETE", fmt.Sprintf("/body-stats/%d", first.ID), nil, http.StatusNotFound, nil)
}

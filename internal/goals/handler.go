package goals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/workoutware/internal/auth"
	"github.com/2beens/workoutware/internal/telemetry/tracing"
	"github.com/2beens/workoutware/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=goals_test

type goalsRepo interface {
	Create(ctx context.Context, goal Goal) (*Goal, error)
	List(ctx context.Context, userID int, status Status) ([]Goal, error)
	Get(ctx context.Context, userID, id int) (*Goal, error)
	Update(ctx context.Context, userID, id int, update GoalUpdate) (*Goal, error)
	Delete(ctx context.Context, userID, id int) error
}

type CreateGoalRequest struct {
	ExerciseID   *int             `json:"exerciseId"`
	Type         string           `json:"goalType"`
	Description  string           `json:"description"`
	TargetValue  decimal.Decimal  `json:"targetValue"`
	CurrentValue *decimal.Decimal `json:"currentValue"`
	Unit         string           `json:"unit"`
	StartDate    string           `json:"startDate"`
	TargetDate   string           `json:"targetDate"`
}

type UpdateGoalRequest struct {
	CurrentValue *decimal.Decimal `json:"currentValue"`
	Status       string           `json:"status"`
}

type GoalsResponse struct {
	Goals []Goal `json:"goals"`
}

type Handler struct {
	repo goalsRepo
	now  func() time.Time
}

func NewHandler(repo goalsRepo) *Handler {
	return &Handler{
		repo: repo,
		now:  time.Now,
	}
}

func (handler *Handler) today() time.Time {
	now := handler.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func writeJSON(w http.ResponseWriter, v any, statusCode int) {
	respJson, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal goals response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, statusCode)
}

func goalID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, goal id NaN", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.new")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new goal, unmarshal json params: %s", err)
		http.Error(w, "add goal failed", http.StatusBadRequest)
		return
	}

	goal := Goal{
		UserID:      userID,
		ExerciseID:  req.ExerciseID,
		Type:        req.Type,
		Description: req.Description,
		TargetValue: req.TargetValue,
		Unit:        req.Unit,
		StartDate:   handler.today(),
	}
	if req.CurrentValue != nil {
		goal.CurrentValue = *req.CurrentValue
	}
	if req.StartDate != "" {
		start, err := time.Parse(pkg.DateLayout, req.StartDate)
		if err != nil {
			http.Error(w, "error, invalid start date", http.StatusBadRequest)
			return
		}
		goal.StartDate = start
	}
	if req.TargetDate != "" {
		target, err := time.Parse(pkg.DateLayout, req.TargetDate)
		if err != nil {
			http.Error(w, "error, invalid target date", http.StatusBadRequest)
			return
		}
		goal.TargetDate = &target
	}
	if err := goal.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := handler.repo.Create(ctx, goal)
	if errors.Is(err, ErrExerciseNotFound) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	} else if err != nil {
		log.Errorf("failed to add goal for user %d: %s", userID, err)
		http.Error(w, "error, failed to add goal", http.StatusInternalServerError)
		return
	}

	writeJSON(w, created, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var status Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := ParseStatus(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		status = parsed
	}

	goals, err := handler.repo.List(ctx, userID, status)
	if err != nil {
		log.Errorf("list goals for user %d: %s", userID, err)
		http.Error(w, "failed to get goals", http.StatusInternalServerError)
		return
	}

	writeJSON(w, GoalsResponse{Goals: goals}, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.get")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	id, ok := goalID(w, r)
	if !ok {
		return
	}

	goal, err := handler.repo.Get(ctx, userID, id)
	if errors.Is(err, ErrGoalNotFound) {
		http.Error(w, "goal not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("get goal %d: %s", id, err)
		http.Error(w, "failed to get goal", http.StatusInternalServerError)
		return
	}

	writeJSON(w, goal, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.update")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	id, ok := goalID(w, r)
	if !ok {
		return
	}

	var req UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update goal, unmarshal json params: %s", err)
		http.Error(w, "update goal failed", http.StatusBadRequest)
		return
	}
	if req.CurrentValue == nil && req.Status == "" {
		http.Error(w, "error, nothing to update", http.StatusBadRequest)
		return
	}
	if req.CurrentValue != nil && req.CurrentValue.IsNegative() {
		http.Error(w, "error, current value must not be negative", http.StatusBadRequest)
		return
	}

	update := GoalUpdate{CurrentValue: req.CurrentValue}
	if req.Status != "" {
		status, err := ParseStatus(req.Status)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		update.Status = status
		update.CompletionDate = CompletionDate(status, handler.today())
	}

	goal, err := handler.repo.Update(ctx, userID, id, update)
	if errors.Is(err, ErrGoalNotFound) {
		http.Error(w, "goal not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("update goal %d: %s", id, err)
		http.Error(w, "failed to update goal", http.StatusInternalServerError)
		return
	}

	writeJSON(w, goal, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	id, ok := goalID(w, r)
	if !ok {
		return
	}

	if err := handler.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete goal %d: %s", id, err)
		http.Error(w, "failed to delete goal", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"deletedId":%d}`, id))
}

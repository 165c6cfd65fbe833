package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/workoutware/internal/telemetry/metrics"
	"github.com/2beens/workoutware/internal/telemetry/tracing"
	"github.com/2beens/workoutware/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=sets_mocks_test.go -package=workouts_test

type setsRepo interface {
	LogSet(ctx context.Context, userID, sessionExerciseID int, newSet NewSet, evaluator SetEvaluator) (*LoggedSet, error)
	UpdateSet(ctx context.Context, userID, setID int, update SetUpdate) (*Set, error)
	DeleteSet(ctx context.Context, userID, setID int) error
}

type SetsHandler struct {
	repo        setsRepo
	evaluator   SetEvaluator
	dirtyMarker dirtyMarker
	metrics     *metrics.Manager
}

func NewSetsHandler(
	repo setsRepo,
	evaluator SetEvaluator,
	dirtyMarker dirtyMarker,
	metricsManager *metrics.Manager,
) *SetsHandler {
	return &SetsHandler{
		repo:        repo,
		evaluator:   evaluator,
		dirtyMarker: dirtyMarker,
		metrics:     metricsManager,
	}
}

func (handler *SetsHandler) markDirty(ctx context.Context, userID int) {
	if err := handler.dirtyMarker.MarkDirty(ctx, userID); err != nil {
		log.Errorf("mark progress dirty for user %d: %s", userID, err)
	}
}

func (handler *SetsHandler) HandleLogSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.log")
	defer span.End()

	userID, ok := loggedUserID(ctx, w)
	if !ok {
		return
	}
	sessionExerciseID, ok := pathInt(w, r, "seid")
	if !ok {
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var newSet NewSet
	if err := json.NewDecoder(r.Body).Decode(&newSet); err != nil {
		log.Tracef("log set, unmarshal json params: %s", err)
		http.Error(w, "log set failed", http.StatusBadRequest)
		return
	}
	if err := newSet.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logged, err := handler.repo.LogSet(ctx, userID, sessionExerciseID, newSet, handler.evaluator)
	switch {
	case errors.Is(err, ErrSessionExerciseNotFound):
		http.Error(w, "session exercise not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrInvalidSet):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		log.Errorf("failed to log set for session exercise %d: %s", sessionExerciseID, err)
		http.Error(w, "error, failed to log set", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterSetsLogged.Inc()
	if logged.Validation != nil {
		handler.metrics.CounterSetClassifications.WithLabelValues(string(logged.Validation.Status)).Inc()
		if logged.Validation.IsPR {
			handler.metrics.CounterPersonalBests.Inc()
		}
		log.Debugf("set %d for exercise %d classified as %s", logged.ID, logged.ExerciseID, logged.Validation.Status)
	}
	handler.markDirty(ctx, userID)

	writeJSON(w, logged, http.StatusCreated)
}

func (handler *SetsHandler) HandleUpdateSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.update")
	defer span.End()

	userID, ok := loggedUserID(ctx, w)
	if !ok {
		return
	}
	setID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var update SetUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Tracef("update set, unmarshal json params: %s", err)
		http.Error(w, "update set failed", http.StatusBadRequest)
		return
	}
	if err := update.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	set, err := handler.repo.UpdateSet(ctx, userID, setID, update)
	if errors.Is(err, ErrSetNotFound) {
		http.Error(w, "set not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to update set %d: %s", setID, err)
		http.Error(w, "error, failed to update set", http.StatusInternalServerError)
		return
	}

	handler.markDirty(ctx, userID)
	writeJSON(w, set, http.StatusOK)
}

func (handler *SetsHandler) HandleDeleteSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.delete")
	defer span.End()

	userID, ok := loggedUserID(ctx, w)
	if !ok {
		return
	}
	setID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	if err := handler.repo.DeleteSet(ctx, userID, setID); errors.Is(err, ErrSetNotFound) {
		http.Error(w, "set not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to delete set %d: %s", setID, err)
		http.Error(w, "set not deleted", http.StatusInternalServerError)
		return
	}

	handler.markDirty(ctx, userID)
	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"deletedId":%d}`, setID))
}

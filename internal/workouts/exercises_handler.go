package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/workoutware/internal/cache"
	"github.com/2beens/workoutware/internal/telemetry/metrics"
	"github.com/2beens/workoutware/internal/telemetry/tracing"
	"github.com/2beens/workoutware/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=exercises_mocks_test.go -package=workouts_test

type exercisesRepo interface {
	Add(ctx context.Context, exercise Exercise) (*Exercise, error)
	Get(ctx context.Context, id int) (*Exercise, error)
	List(ctx context.Context, filter ExerciseFilter) ([]Exercise, error)
	Update(ctx context.Context, exercise *Exercise) error
	Delete(ctx context.Context, id int) error
}

type catalogVersioner interface {
	Current(ctx context.Context) (int64, error)
	Bump(ctx context.Context) (int64, error)
}

type ExercisesResponse struct {
	Exercises []Exercise `json:"exercises"`
}

type ExercisesHandler struct {
	repo     exercisesRepo
	cache    cache.Cache
	cacheTTL time.Duration
	versions catalogVersioner
	metrics  *metrics.Manager
}

func NewExercisesHandler(
	repo exercisesRepo,
	cache cache.Cache,
	cacheTTL time.Duration,
	versions catalogVersioner,
	metricsManager *metrics.Manager,
) *ExercisesHandler {
	return &ExercisesHandler{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		versions: versions,
		metrics:  metricsManager,
	}
}

func (handler *ExercisesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	filter := ExerciseFilter{
		MuscleGroup: r.URL.Query().Get("muscle_group"),
		Type:        r.URL.Query().Get("type"),
	}

	cacheKey := ""
	if version, err := handler.versions.Current(ctx); err != nil {
		log.Warnf("exercise catalog version: %s", err)
	} else {
		cacheKey = fmt.Sprintf("exercises|%d|%s|%s", version, filter.MuscleGroup, filter.Type)
	}

	if cacheKey != "" {
		if cached, found := handler.cache.Get(cacheKey); found {
			handler.metrics.CounterExerciseCache.WithLabelValues("hit").Inc()
			pkg.WriteResponseBytes(w, pkg.ContentType.JSON, cached, http.StatusOK)
			return
		}
		handler.metrics.CounterExerciseCache.WithLabelValues("miss").Inc()
	}

	exercises, err := handler.repo.List(ctx, filter)
	if err != nil {
		log.Errorf("list exercises error: %s", err)
		http.Error(w, "failed to get exercises", http.StatusInternalServerError)
		return
	}

	exercisesJson, err := json.Marshal(ExercisesResponse{Exercises: exercises})
	if err != nil {
		log.Errorf("marshal exercises error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if cacheKey != "" {
		handler.cache.Set(cacheKey, exercisesJson, handler.cacheTTL)
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exercisesJson, http.StatusOK)
}

func (handler *ExercisesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.get")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	exercise, err := handler.repo.Get(ctx, id)
	if errors.Is(err, ErrExerciseNotFound) {
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to get exercise %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	exJson, err := json.Marshal(exercise)
	if err != nil {
		log.Errorf("failed to marshal exercise: %s", err)
		http.Error(w, "failed to marshal exercise", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exJson, http.StatusOK)
}

func (handler *ExercisesHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var exercise Exercise
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		log.Tracef("new exercise, unmarshal json params: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}

	exercise.Normalize()
	if err := exercise.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	added, err := handler.repo.Add(ctx, exercise)
	if errors.Is(err, ErrDuplicateExercise) {
		http.Error(w, "exercise already exists", http.StatusConflict)
		return
	} else if err != nil {
		log.Errorf("failed to add new exercise [%s]: %s", exercise.Name, err)
		http.Error(w, "error, failed to add new exercise", http.StatusInternalServerError)
		return
	}

	handler.invalidateCatalog(ctx)

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("failed to marshal new exercise: %s", err)
		http.Error(w, "error, failed to add new exercise", http.StatusInternalServerError)
		return
	}

	log.Debugf("new exercise added: %s", addedJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *ExercisesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.update")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var exercise Exercise
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		log.Tracef("update exercise, unmarshal json params: %s", err)
		http.Error(w, "update exercise failed", http.StatusBadRequest)
		return
	}
	exercise.ID = id

	exercise.Normalize()
	if err := exercise.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, &exercise); err != nil {
		switch {
		case errors.Is(err, ErrExerciseNotFound):
			http.Error(w, "exercise not found", http.StatusNotFound)
		case errors.Is(err, ErrDuplicateExercise):
			http.Error(w, "exercise already exists", http.StatusConflict)
		default:
			log.Errorf("failed to update exercise [%d]: %s", id, err)
			http.Error(w, "error, failed to update exercise", http.StatusInternalServerError)
		}
		return
	}

	handler.invalidateCatalog(ctx)

	log.Debugf("exercise updated: [%s] [%s]: %d", exercise.MuscleGroup, exercise.Name, id)
	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"updatedId":%d}`, id))
}

func (handler *ExercisesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.delete")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, ErrExerciseNotFound):
			http.Error(w, "exercise not found", http.StatusNotFound)
		case errors.Is(err, ErrExerciseInUse):
			http.Error(w, "exercise is in use", http.StatusConflict)
		default:
			log.Errorf("failed to delete exercise %d: %s", id, err)
			http.Error(w, "exercise not deleted", http.StatusInternalServerError)
		}
		return
	}

	handler.invalidateCatalog(ctx)

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"deletedId":%d}`, id))
}

func (handler *ExercisesHandler) invalidateCatalog(ctx context.Context) {
	handler.cache.Clear()
	if _, err := handler.versions.Bump(ctx); err != nil {
		log.Errorf("bump exercise catalog version: %s", err)
	}
}

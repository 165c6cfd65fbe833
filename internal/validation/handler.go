package validation

import (
	"context"
	"encoding/json"
	"errors"
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

//go:generate mockgen -source=$GOFILE -destination=validation_mocks_test.go -package=validation_test

type validationRepo interface {
	LoadBaseline(ctx context.Context, userID, exerciseID int, recentSince time.Time) (Baseline, error)
	ListEvents(ctx context.Context, params EventsParams) ([]Event, error)
	SetUserAction(ctx context.Context, userID, eventID int, action UserAction) error
	ListPersonalBests(ctx context.Context, userID, exerciseID, limit int) ([]PersonalBest, error)
}

type CheckRequest struct {
	ExerciseID int             `json:"exerciseId"`
	Weight     decimal.Decimal `json:"weight"`
	IsWarmup   bool            `json:"isWarmup"`
}

type UserActionRequest struct {
	Action UserAction `json:"action"`
}

type EventsResponse struct {
	Events []Event `json:"events"`
}

type PersonalBestsResponse struct {
	PersonalBests []PersonalBest `json:"personalBests"`
}

type Handler struct {
	repo      validationRepo
	validator *Validator
}

func NewHandler(repo validationRepo, validator *Validator) *Handler {
	return &Handler{
		repo:      repo,
		validator: validator,
	}
}

// HandleCheck classifies a weight without storing anything.
func (handler *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.validation.check")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var checkReq CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&checkReq); err != nil {
		log.Tracef("validation check, unmarshal json params: %s", err)
		http.Error(w, "validation check failed", http.StatusBadRequest)
		return
	}
	if checkReq.ExerciseID <= 0 {
		http.Error(w, "error, exercise id empty", http.StatusBadRequest)
		return
	}
	if checkReq.Weight.IsNegative() {
		http.Error(w, "error, weight must not be negative", http.StatusBadRequest)
		return
	}

	result := Result{Status: StatusUnclassified}
	if Classifiable(&checkReq.Weight, checkReq.IsWarmup) {
		baseline, err := handler.repo.LoadBaseline(ctx, userID, checkReq.ExerciseID, handler.validator.RecentSince())
		if err != nil {
			log.Errorf("validation check, load baseline [%d] [%d]: %s", userID, checkReq.ExerciseID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		result = Classify(checkReq.Weight, baseline, handler.validator.Thresholds())
	}

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("failed to marshal validation result: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resultJson, http.StatusOK)
}

func (handler *Handler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.validation.events.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	exerciseID, err := pkg.QueryInt(query, "exercise_id", 0)
	if err != nil {
		http.Error(w, "error, exercise_id NaN", http.StatusBadRequest)
		return
	}
	limit, err := pkg.QueryInt(query, "limit", 50)
	if err != nil || limit < 1 {
		http.Error(w, "error, invalid limit", http.StatusBadRequest)
		return
	}
	onlyOpen, err := pkg.QueryBool(query, "only_open")
	if err != nil {
		http.Error(w, "error, invalid only_open", http.StatusBadRequest)
		return
	}

	status := Status(query.Get("status"))
	if status != "" && !status.Valid() {
		http.Error(w, "error, invalid status", http.StatusBadRequest)
		return
	}

	events, err := handler.repo.ListEvents(ctx, EventsParams{
		UserID:     userID,
		ExerciseID: exerciseID,
		Status:     status,
		OnlyOpen:   onlyOpen != nil && *onlyOpen,
		Limit:      limit,
	})
	if err != nil {
		log.Errorf("list validation events for user %d: %s", userID, err)
		http.Error(w, "failed to get validation events", http.StatusInternalServerError)
		return
	}

	eventsJson, err := json.Marshal(EventsResponse{Events: events})
	if err != nil {
		log.Errorf("marshal validation events: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, eventsJson, http.StatusOK)
}

func (handler *Handler) HandleSetUserAction(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.validation.events.action")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	eventID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var actionReq UserActionRequest
	if err := json.NewDecoder(r.Body).Decode(&actionReq); err != nil {
		log.Tracef("set user action, unmarshal json params: %s", err)
		http.Error(w, "set user action failed", http.StatusBadRequest)
		return
	}
	if !actionReq.Action.Valid() {
		http.Error(w, "error, invalid action", http.StatusBadRequest)
		return
	}

	if err := handler.repo.SetUserAction(ctx, userID, eventID, actionReq.Action); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			http.Error(w, "validation event not found", http.StatusNotFound)
			return
		}
		log.Errorf("set user action on event %d: %s", eventID, err)
		http.Error(w, "set user action failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("validation event %d marked as %s", eventID, actionReq.Action)
	pkg.WriteJSONResponseOK(w, `{"updatedId":`+strconv.Itoa(eventID)+`}`)
}

func (handler *Handler) HandleListPersonalBests(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.validation.pb.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	exerciseID, err := pkg.QueryInt(query, "exercise_id", 0)
	if err != nil {
		http.Error(w, "error, exercise_id NaN", http.StatusBadRequest)
		return
	}
	limit, err := pkg.QueryInt(query, "limit", 20)
	if err != nil || limit < 1 {
		http.Error(w, "error, invalid limit", http.StatusBadRequest)
		return
	}

	pbs, err := handler.repo.ListPersonalBests(ctx, userID, exerciseID, limit)
	if err != nil {
		log.Errorf("list personal bests for user %d: %s", userID, err)
		http.Error(w, "failed to get personal bests", http.StatusInternalServerError)
		return
	}

	pbsJson, err := json.Marshal(PersonalBestsResponse{PersonalBests: pbs})
	if err != nil {
		log.Errorf("marshal personal bests: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, pbsJson, http.StatusOK)
}

package progress

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/workoutware/internal/auth"
	"github.com/2beens/workoutware/internal/telemetry/tracing"
	"github.com/2beens/workoutware/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=progress_test

type progressService interface {
	Rollup(ctx context.Context, userID, exerciseID int, from, to *time.Time) (*RollupResult, error)
	Entries(ctx context.Context, userID, exerciseID int, period Period) ([]Entry, error)
	Rebuild(ctx context.Context, userID int, periods []Period, trigger string) (int, error)
	Recommendations(ctx context.Context, userID int) ([]Recommendation, error)
	Dashboard(ctx context.Context, userID int) (*Dashboard, error)
}

type EntriesResponse struct {
	Entries []Entry `json:"entries"`
}

type RebuildResponse struct {
	Written int `json:"written"`
}

type RecommendationsResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
}

type Handler struct {
	service progressService
}

func NewHandler(service progressService) *Handler {
	return &Handler{
		service: service,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	respJson, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal progress response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleRollup(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.rollup")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	exerciseID, err := pkg.QueryInt(query, "exercise_id", 0)
	if err != nil || exerciseID <= 0 {
		http.Error(w, "error, exercise_id missing or invalid", http.StatusBadRequest)
		return
	}
	from, err := pkg.QueryDate(query, "from")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	to, err := pkg.QueryDate(query, "to")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := handler.service.Rollup(ctx, userID, exerciseID, from, to)
	if errors.Is(err, ErrInvalidRange) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	} else if err != nil {
		log.Errorf("rollup for user %d, exercise %d: %s", userID, exerciseID, err)
		http.Error(w, "failed to get rollup", http.StatusInternalServerError)
		return
	}

	writeJSON(w, result)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.list")
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
	period, err := ParsePeriod(query.Get("period"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := handler.service.Entries(ctx, userID, exerciseID, period)
	if err != nil {
		log.Errorf("list progress for user %d: %s", userID, err)
		http.Error(w, "failed to get progress", http.StatusInternalServerError)
		return
	}

	writeJSON(w, EntriesResponse{Entries: entries})
}

func (handler *Handler) HandleRebuild(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.rebuild")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	periods, err := ParsePeriods(r.URL.Query().Get("periods"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	written, err := handler.service.Rebuild(ctx, userID, periods, TriggerManual)
	if err != nil {
		log.Errorf("manual progress rebuild: %s", err)
		http.Error(w, "failed to rebuild progress", http.StatusInternalServerError)
		return
	}

	writeJSON(w, RebuildResponse{Written: written})
}

func (handler *Handler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.recommendations")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	recs, err := handler.service.Recommendations(ctx, userID)
	if err != nil {
		log.Errorf("recommendations for user %d: %s", userID, err)
		http.Error(w, "failed to get recommendations", http.StatusInternalServerError)
		return
	}

	writeJSON(w, RecommendationsResponse{Recommendations: recs})
}

func (handler *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.dashboard")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	dashboard, err := handler.service.Dashboard(ctx, userID)
	if err != nil {
		log.Errorf("dashboard for user %d: %s", userID, err)
		http.Error(w, "failed to get dashboard", http.StatusInternalServerError)
		return
	}

	writeJSON(w, dashboard)
}

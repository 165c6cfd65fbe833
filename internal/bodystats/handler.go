package bodystats

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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=bodystats_test

type statsRepo interface {
	Add(ctx context.Context, stat Stat) (*Stat, error)
	List(ctx context.Context, userID int, from, to *time.Time) ([]Stat, error)
	WeightPoints(ctx context.Context, userID int, from, to *time.Time) ([]TrendPoint, error)
	Delete(ctx context.Context, userID, id int) error
}

type LogStatRequest struct {
	LogDate    string           `json:"logDate"`
	Weight     decimal.Decimal  `json:"weight"`
	Neck       *decimal.Decimal `json:"neck"`
	Waist      *decimal.Decimal `json:"waist"`
	Hips       *decimal.Decimal `json:"hips"`
	BodyFatPct *decimal.Decimal `json:"bodyFatPct"`
	Notes      string           `json:"notes"`
}

type StatsResponse struct {
	Stats []Stat `json:"stats"`
}

type Handler struct {
	repo statsRepo
}

func NewHandler(repo statsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func writeJSON(w http.ResponseWriter, v any, statusCode int) {
	respJson, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal body stats response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, statusCode)
}

func dateRange(r *http.Request) (from, to *time.Time, err error) {
	query := r.URL.Query()
	if from, err = pkg.QueryDate(query, "from"); err != nil {
		return nil, nil, err
	}
	if to, err = pkg.QueryDate(query, "to"); err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, ErrInvalidRange
	}
	return from, to, nil
}

func (handler *Handler) HandleLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodystats.log")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req LogStatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("log body stat, unmarshal json params: %s", err)
		http.Error(w, "log body stat failed", http.StatusBadRequest)
		return
	}

	logDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.LogDate != "" {
		parsed, err := time.Parse(pkg.DateLayout, req.LogDate)
		if err != nil {
			http.Error(w, "error, invalid log date", http.StatusBadRequest)
			return
		}
		logDate = parsed
	}

	stat := Stat{
		UserID:     userID,
		LogDate:    logDate,
		Weight:     req.Weight,
		Neck:       req.Neck,
		Waist:      req.Waist,
		Hips:       req.Hips,
		BodyFatPct: req.BodyFatPct,
		Notes:      req.Notes,
	}
	if err := stat.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	added, err := handler.repo.Add(ctx, stat)
	if err != nil {
		log.Errorf("failed to log body stat for user %d: %s", userID, err)
		http.Error(w, "error, failed to log body stat", http.StatusInternalServerError)
		return
	}

	writeJSON(w, added, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodystats.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	from, to, err := dateRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stats, err := handler.repo.List(ctx, userID, from, to)
	if err != nil {
		log.Errorf("list body stats for user %d: %s", userID, err)
		http.Error(w, "failed to get body stats", http.StatusInternalServerError)
		return
	}

	writeJSON(w, StatsResponse{Stats: stats}, http.StatusOK)
}

func (handler *Handler) HandleTrend(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodystats.trend")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	from, to, err := dateRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	points, err := handler.repo.WeightPoints(ctx, userID, from, to)
	if err != nil {
		log.Errorf("bodyweight trend for user %d: %s", userID, err)
		http.Error(w, "failed to get trend", http.StatusInternalServerError)
		return
	}

	writeJSON(w, BuildTrend(points), http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodystats.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, ErrStatNotFound) {
			http.Error(w, "body stat not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete body stat %d: %s", id, err)
		http.Error(w, "failed to delete body stat", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"deletedId":%d}`, id))
}

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
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/workoutware/internal/auth"
	"github.com/2beens/workoutware/internal/telemetry/tracing"
	"github.com/2beens/workoutware/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=sessions_mocks_test.go -package=workouts_test

type sessionsRepo interface {
	Create(ctx context.Context, session Session) (*Session, error)
	List(ctx context.Context, params SessionsParams) ([]Session, int, error)
	Get(ctx context.Context, userID, id int) (*Session, error)
	Delete(ctx context.Context, userID, id int) error
	Complete(ctx context.Context, userID, id int, start, end *time.Time) (*Session, error)
	SaveAsTemplate(ctx context.Context, userID, id int, name string) (*Session, error)
	ListTemplates(ctx context.Context, userID int) ([]Session, error)
	StartFromTemplate(ctx context.Context, userID, templateID int, date time.Time, name string) (*Session, error)
	AddExercise(ctx context.Context, userID, sessionID int, se SessionExercise) (*SessionExercise, error)
	RemoveExercise(ctx context.Context, userID, sessionID, sessionExerciseID int) error
}

// dirtyMarker schedules a progress rebuild for the user.
type dirtyMarker interface {
	MarkDirty(ctx context.Context, userID int) error
}

type CreateSessionRequest struct {
	Name       string           `json:"name"`
	Date       string           `json:"date"`
	StartTime  *time.Time       `json:"startTime"`
	Bodyweight *decimal.Decimal `json:"bodyweight"`
	Notes      string           `json:"notes"`
}

type CompleteSessionRequest struct {
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
}

type TemplateRequest struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

type SessionsPageResponse struct {
	Sessions []Session `json:"sessions"`
	Total    int       `json:"total"`
}

type TemplatesResponse struct {
	Templates []Session `json:"templates"`
}

type SessionsHandler struct {
	repo        sessionsRepo
	dirtyMarker dirtyMarker
}

func NewSessionsHandler(repo sessionsRepo, dirtyMarker dirtyMarker) *SessionsHandler {
	return &SessionsHandler{
		repo:        repo,
		dirtyMarker: dirtyMarker,
	}
}

func loggedUserID(ctx context.Context, w http.ResponseWriter) (int, bool) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
	}
	return userID, ok
}

func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		http.Error(w, fmt.Sprintf("error, %s NaN", name), http.StatusBadRequest)
		return 0, false
	}
	return v, true
}

// parseDay parses yyyy-mm-dd, an empty value is today.
func parseDay(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(pkg.DateLayout, raw)
}

func writeJSON(w http.ResponseWriter, v any, statusCode int) {
	respJson, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, statusCode)
}

func (handler *SessionsHandler) markDirty(ctx context.Context, userID int) {
	if err := handler.dirtyMarker.MarkDirty(ctx, userID); err != nil {
		log.Errorf("mark progress dirty for user %d: %s", userID, err)
	}
}

func (handler *SessionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.new")
	defer span.End()

	userID, ok := loggedUserID(ctx, w)
	if !ok {
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new session, unmarshal json params: %s", err)
		http.Error(w, "add session failed", http.StatusBadRequest)
		return
	}

	sessionDate, err := parseDay(req.Date)
	if err != nil {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}
	if req.Bodyweight != nil && !req.Bodyweight.IsPositive() {
		http.Error(w, "error, bodyweight must be positive", http.StatusBadRequest)
		return
	}

	created, err := handler.repo.Create(ctx, Session{
		UserID:      userID,
		Name:        req.Name,
		SessionDate: sessionDate,
		StartTime:   req.StartTime,
		Bodyweight:  req.Bodyweight,
		Notes:       req.Notes,
	})
	if err != nil {
		log.Errorf("failed to add new session for user %d: %s", userID, err)
		http.Error(w, "error, failed to add new session", http.StatusInternalServerError)
		return
	}

	writeJSON(w, created, http.StatusCreated)
}

func (handler *SessionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.list")
	defer span.End()

	userID, ok := loggedUserID(ctx, w)
	if !ok {
		return
	}

	query := r.URL.Query()
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
	completed, err := pkg.QueryBool(query, "completed")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	page, err := pkg.QueryInt(query, "page", 1)
	if err != nil || page < 1 {
		http.Error(w, "invalid page (has to be non-zero value)", http.StatusBadRequest)
		return
	}
	size, err := pkg.QueryInt(query, "size", 20)
	if err != nil || size < 1 {
		http.Error(w, "invalid size (has to be non-zero value)", http.StatusBadRequest)
		return
	}

	sessions, total, err := handler.repo.List(ctx, SessionsParams{
		UserID:    userID,
		From:      from,
		To:        to,
		Completed: completed,
		Page:      page,
		Size:      size,
	})
	if err != nil {
		log.Errorf("list sessions error: %s", err)
		http.Error(w, "failed to get sessions", http.StatusInternalServerError)
		return
	}

	writeJSON(w, SessionsPageResponse{Sessions: sessions, Total: total}, http.StatusOK)
}

func (handler *SessionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.get")
	defer span.End()

	userID, ok := loggedUserID(ctx, w)
	if !ok {
		return
	}
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	session, err := handler.repo.Get(ctx, userID, id)
	if errors.Is(err, ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to get session %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, session, http.StatusOK)
}

func (handler *SessionsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.delete")
	defer span.End()

	userID, ok := loggedUserID(ctx, w)
	if !ok {
		return
	}
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	if err := handler.repo.Delete(ctx, userID, id); errors.Is(err, ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to delete session %d: %s", id, err)
		http.Error(w, "session not deleted", http.StatusInternalServerError)
		return
	}

	handler.markDirty(ctx, userID)
	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"deletedId":%d}`, id))
}

func (handler *SessionsHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.complete")
	defer span.End()

	userID, ok := loggedUserID(ctx, w)
	if !ok {
		return
	}
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	var req CompleteSessionRequest
	if r.ContentLength != 0 {
		if r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "invalid content type", http.StatusBadRequest)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Tracef("complete session, unmarshal json params: %s", err)
			http.Error(w, "complete session failed", http.StatusBadRequest)
			return
		}
	}
	if req.StartTime != nil && req.EndTime != nil && req.EndTime.Before(*req.StartTime) {
		http.Error(w, "error, end time before start time", http.StatusBadRequest)
		return
	}

	session, err := handler.repo.Complete(ctx, userID, id, req.StartTime, req.EndTime)
	if errors.Is(err, ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to complete session %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	handler.markDirty(ctx, userID)
	writeJSON(w, session, http.StatusOK)
}

func (handler *SessionsHandler) HandleSaveTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.template.save")
	defer span.End()

	userID, ok := loggedUserID(ctx, w)
	if !ok {
		return
	}
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	var req TemplateRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "save template failed", http.StatusBadRequest)
			return
		}
	}

	template, err := handler.repo.SaveAsTemplate(ctx, userID, id, req.Name)
	if errors.Is(err, ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to save session %d as template: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, template, http.StatusCreated)
}

func (handler *SessionsHandler) HandleListTemplates(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.template.list")
	defer span.End()

	userID, ok := loggedUserID(ctx, w)
	if !ok {
		return
	}

	templates, err := handler.repo.ListTemplates(ctx, userID)
	if err != nil {
		log.Errorf("list templates for user %d: %s", userID, err)
		http.Error(w, "failed to get templates", http.StatusInternalServerError)
		return
	}

	writeJSON(w, TemplatesResponse{Templates: templates}, http.StatusOK)
}

func (handler *SessionsHandler) HandleStartFromTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.template.start")
	defer span.End()

	userID, ok := loggedUserID(ctx, w)
	if !ok {
		return
	}
	templateID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	var req TemplateRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "start from template failed", http.StatusBadRequest)
			return
		}
	}
	date, err := parseDay(req.Date)
	if err != nil {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}

	session, err := handler.repo.StartFromTemplate(ctx, userID, templateID, date, req.Name)
	if errors.Is(err, ErrTemplateNotFound) {
		http.Error(w, "template not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to start session from template %d: %s", templateID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, session, http.StatusCreated)
}

func (handler *SessionsHandler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.exercise.add")
	defer span.End()

	userID, ok := loggedUserID(ctx, w)
	if !ok {
		return
	}
	sessionID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var se SessionExercise
	if err := json.NewDecoder(r.Body).Decode(&se); err != nil {
		log.Tracef("add session exercise, unmarshal json params: %s", err)
		http.Error(w, "add session exercise failed", http.StatusBadRequest)
		return
	}
	if se.ExerciseID <= 0 {
		http.Error(w, "error, exercise id empty", http.StatusBadRequest)
		return
	}
	if (se.TargetSets != nil && *se.TargetSets <= 0) || (se.TargetReps != nil && *se.TargetReps <= 0) {
		http.Error(w, "error, targets must be positive", http.StatusBadRequest)
		return
	}

	added, err := handler.repo.AddExercise(ctx, userID, sessionID, se)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrExerciseNotFound):
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("failed to add exercise %d to session %d: %s", se.ExerciseID, sessionID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, added, http.StatusCreated)
}

func (handler *SessionsHandler) HandleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.exercise.remove")
	defer span.End()

	userID, ok := loggedUserID(ctx, w)
	if !ok {
		return
	}
	sessionID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	sessionExerciseID, ok := pathInt(w, r, "seid")
	if !ok {
		return
	}

	if err := handler.repo.RemoveExercise(ctx, userID, sessionID, sessionExerciseID); errors.Is(err, ErrSessionExerciseNotFound) {
		http.Error(w, "session exercise not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to remove session exercise %d: %s", sessionExerciseID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	handler.markDirty(ctx, userID)
	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"deletedId":%d}`, sessionExerciseID))
}

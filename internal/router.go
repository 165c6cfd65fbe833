package internal

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/2beens/workoutware/internal/auth"
	"github.com/2beens/workoutware/internal/bodystats"
	"github.com/2beens/workoutware/internal/goals"
	"github.com/2beens/workoutware/internal/middleware"
	"github.com/2beens/workoutware/internal/progress"
	"github.com/2beens/workoutware/internal/telemetry/metrics"
	"github.com/2beens/workoutware/internal/users"
	"github.com/2beens/workoutware/internal/validation"
	"github.com/2beens/workoutware/internal/workouts"
	"github.com/2beens/workoutware/pkg"
)

type routerDeps struct {
	exercises  *workouts.ExercisesHandler
	sessions   *workouts.SessionsHandler
	sets       *workouts.SetsHandler
	validation *validation.Handler
	progress   *progress.Handler
	goals      *goals.Handler
	bodyStats  *bodystats.Handler
	users      *users.Handler

	loginChecker     auth.Checker
	rateLimiter      middleware.RequestRateLimiter
	metricsManager   *metrics.Manager
	allowedOrigins   []string
	loginRatePerMin  int
	apiRatePerMin    int
	versionInfo      string
	tracingRouteName string
}

func newRouter(deps routerDeps) *mux.Router {
	r := mux.NewRouter()
	if deps.tracingRouteName != "" {
		r.Use(otelmux.Middleware(deps.tracingRouteName))
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, "I'm OK, thanks")
	}).Methods("GET").Name("health")
	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, deps.versionInfo)
	}).Methods("GET").Name("version")

	accountRouter := r.PathPrefix("/a").Subrouter()
	accountRouter.HandleFunc("/register", deps.users.HandleRegister).Methods("POST", "OPTIONS").Name("register")
	accountRouter.HandleFunc("/login", deps.users.HandleLogin).Methods("POST", "OPTIONS").Name("login")
	accountRouter.HandleFunc("/logout", deps.users.HandleLogout).Methods("GET", "OPTIONS").Name("logout")
	accountRouter.Use(middleware.RateLimit(deps.rateLimiter, "login", deps.loginRatePerMin, deps.metricsManager))

	r.HandleFunc("/exercises", deps.exercises.HandleList).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/exercises", deps.exercises.HandleAdd).Methods("POST", "OPTIONS").Name("new-exercise")
	r.HandleFunc("/exercises/{id}", deps.exercises.HandleGet).Methods("GET", "OPTIONS").Name("get-exercise")
	r.HandleFunc("/exercises/{id}", deps.exercises.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-exercise")
	r.HandleFunc("/exercises/{id}", deps.exercises.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-exercise")

	r.HandleFunc("/sessions", deps.sessions.HandleList).Methods("GET", "OPTIONS").Name("list-sessions")
	r.HandleFunc("/sessions", deps.sessions.HandleCreate).Methods("POST", "OPTIONS").Name("new-session")
	r.HandleFunc("/sessions/{id}", deps.sessions.HandleGet).Methods("GET", "OPTIONS").Name("get-session")
	r.HandleFunc("/sessions/{id}", deps.sessions.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-session")
	r.HandleFunc("/sessions/{id}/complete", deps.sessions.HandleComplete).Methods("POST", "OPTIONS").Name("complete-session")
	r.HandleFunc("/sessions/{id}/template", deps.sessions.HandleSaveTemplate).Methods("POST", "OPTIONS").Name("save-template")
	r.HandleFunc("/sessions/{id}/exercises", deps.sessions.HandleAddExercise).Methods("POST", "OPTIONS").Name("add-session-exercise")
	r.HandleFunc("/sessions/{id}/exercises/{seid}", deps.sessions.HandleRemoveExercise).Methods("DELETE", "OPTIONS").Name("remove-session-exercise")
	r.HandleFunc("/templates", deps.sessions.HandleListTemplates).Methods("GET", "OPTIONS").Name("list-templates")
	r.HandleFunc("/templates/{id}/start", deps.sessions.HandleStartFromTemplate).Methods("POST", "OPTIONS").Name("start-template")

	r.HandleFunc("/session-exercises/{seid}/sets", deps.sets.HandleLogSet).Methods("POST", "OPTIONS").Name("log-set")
	r.HandleFunc("/sets/{id}", deps.sets.HandleUpdateSet).Methods("PUT", "OPTIONS").Name("update-set")
	r.HandleFunc("/sets/{id}", deps.sets.HandleDeleteSet).Methods("DELETE", "OPTIONS").Name("delete-set")

	r.HandleFunc("/validation/check", deps.validation.HandleCheck).Methods("POST", "OPTIONS").Name("validation-check")
	r.HandleFunc("/validation/events", deps.validation.HandleListEvents).Methods("GET", "OPTIONS").Name("validation-events")
	r.HandleFunc("/validation/events/{id}", deps.validation.HandleSetUserAction).Methods("PUT", "OPTIONS").Name("validation-user-action")
	r.HandleFunc("/personal-bests", deps.validation.HandleListPersonalBests).Methods("GET", "OPTIONS").Name("personal-bests")

	r.HandleFunc("/progress", deps.progress.HandleList).Methods("GET", "OPTIONS").Name("list-progress")
	r.HandleFunc("/progress/rollup", deps.progress.HandleRollup).Methods("GET", "OPTIONS").Name("progress-rollup")
	r.HandleFunc("/progress/rebuild", deps.progress.HandleRebuild).Methods("POST", "OPTIONS").Name("progress-rebuild")
	r.HandleFunc("/progress/recommendations", deps.progress.HandleRecommendations).Methods("GET", "OPTIONS").Name("recommendations")
	r.HandleFunc("/progress/dashboard", deps.progress.HandleDashboard).Methods("GET", "OPTIONS").Name("dashboard")

	r.HandleFunc("/goals", deps.goals.HandleList).Methods("GET", "OPTIONS").Name("list-goals")
	r.HandleFunc("/goals", deps.goals.HandleCreate).Methods("POST", "OPTIONS").Name("new-goal")
	r.HandleFunc("/goals/{id}", deps.goals.HandleGet).Methods("GET", "OPTIONS").Name("get-goal")
	r.HandleFunc("/goals/{id}", deps.goals.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-goal")
	r.HandleFunc("/goals/{id}", deps.goals.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-goal")

	r.HandleFunc("/body-stats", deps.bodyStats.HandleList).Methods("GET", "OPTIONS").Name("list-body-stats")
	r.HandleFunc("/body-stats", deps.bodyStats.HandleLog).Methods("POST", "OPTIONS").Name("log-body-stat")
	r.HandleFunc("/body-stats/trend", deps.bodyStats.HandleTrend).Methods("GET", "OPTIONS").Name("body-stats-trend")
	r.HandleFunc("/body-stats/{id}", deps.bodyStats.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-body-stat")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(deps.loginChecker)

	r.Use(middleware.PanicRecovery(deps.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(deps.metricsManager))
	r.Use(middleware.Cors(deps.allowedOrigins))
	r.Use(middleware.RateLimit(deps.rateLimiter, "api", deps.apiRatePerMin, deps.metricsManager))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/gymmax/gymmax/internal/auth"
	"github.com/gymmax/gymmax/internal/clubs"
	"github.com/gymmax/gymmax/internal/entry"
	"github.com/gymmax/gymmax/internal/gymclass"
	"github.com/gymmax/gymmax/internal/members"
	"github.com/gymmax/gymmax/internal/notifications"
	"github.com/gymmax/gymmax/internal/observability"
	"github.com/gymmax/gymmax/internal/trainingplan"
	"github.com/gymmax/gymmax/internal/users"
	"github.com/gymmax/gymmax/internal/workday"
	"github.com/gymmax/gymmax/internal/workoutgoal"
	"github.com/gymmax/gymmax/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger               *slog.Logger
	Config               *Config
	AuthHandler          *auth.Handler
	MembersHandler       *members.Handler
	UsersHandler         *users.Handler
	GymClassHandler      *gymclass.Handler
	TrainingPlanHandler  *trainingplan.Handler
	WorkoutGoalHandler   *workoutgoal.Handler
	ClubsHandler         *clubs.Handler
	WorkDayHandler       *workday.Handler
	NotificationsHandler *notifications.Handler
	EntryHandler         *entry.Handler
	JobHandler           *jobs.Handler
	Metrics              *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP, chimw.RequestID, chimw.Recoverer)

	// The WebSocket route stays outside the timeout and compression
	// layers, which would kill a long-lived connection.
	if params.EntryHandler != nil {
		r.Route("/ws", params.EntryHandler.MountRoutes)
	}

	r.Group(func(r chi.Router) {
		for _, mw := range MiddlewareStack(MiddlewareConfig{
			Logger:  params.Logger,
			Config:  params.Config,
			Metrics: params.Metrics,
		}) {
			r.Use(mw)
		}
		r.Use(chimw.Logger)

		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})

		r.Route("/auth", params.AuthHandler.MountRoutes)
		r.Route("/members", params.MembersHandler.MountRoutes)
		r.Route("/users", params.UsersHandler.MountRoutes)
		r.Route("/gymClasses", params.GymClassHandler.MountRoutes)
		r.Route("/trainingPlan", params.TrainingPlanHandler.MountRoutes)
		r.Route("/workoutGoal", params.WorkoutGoalHandler.MountRoutes)
		r.Route("/clubs", params.ClubsHandler.MountRoutes)
		r.Route("/workDayActivity", params.WorkDayHandler.MountRoutes)
		if params.NotificationsHandler != nil {
			r.Route("/notifications", params.NotificationsHandler.MountRoutes)
		}
		if params.JobHandler != nil {
			r.Route("/jobs", params.JobHandler.MountRoutes)
		}
		if params.Metrics != nil {
			r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
		}
	})

	return r
}

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/caiosilvaazeredo/ASG-Coleta/internal/middleware"
	"github.com/caiosilvaazeredo/ASG-Coleta/internal/models"
	"github.com/caiosilvaazeredo/ASG-Coleta/internal/services"
)

// Build metadata, overridden at link time with -ldflags -X.
var (
	commit    = "dev"
	buildTime = "unknown"
)

// Options tunes the router; zero values fall back to the service defaults.
type Options struct {
	AutoSaveInterval time.Duration
	SessionTimeout   time.Duration
	Insight          services.InsightConfig
	DemoPassword     string
	HTTPClient       services.HTTPClient
}

type Router struct {
	log   zerolog.Logger
	store Store

	sessions      *services.SessionRegistry
	auth          *services.AuthService
	catalog       *services.CatalogService
	responses     *services.ResponseService
	gaps          *services.GapService
	escalation    *services.EscalationEngine
	notifications *services.NotificationService
	respondents   *services.RespondentService
	framework     *services.FrameworkService
	orgChart      *services.OrgChartService
	projects      *services.ProjectService
	reports       *services.ReportService
	insights      *services.InsightService
}

func NewRouter(log zerolog.Logger, opts Options) (*Router, error) {
	store := NewMemoryStore()
	orgChart := services.NewOrgChartService()

	if opts.DemoPassword == "" {
		opts.DemoPassword = "asg-demo"
	}
	if err := Seed(store, orgChart, opts.DemoPassword); err != nil {
		return nil, err
	}

	sessions := services.NewSessionRegistry(opts.SessionTimeout)
	notifications := services.NewNotificationService(store)
	responses := services.NewResponseService(store, store, opts.AutoSaveInterval)
	responses.SetNotifier(notifications)
	respondents := services.NewRespondentService(store)
	respondents.SetNotifier(notifications)
	gaps := services.NewGapService(store)
	reports := services.NewReportService(store)

	rt := &Router{
		log:           log,
		store:         store,
		sessions:      sessions,
		auth:          services.NewAuthService(store, sessions, middleware.SignToken),
		catalog:       services.NewCatalogService(store),
		responses:     responses,
		gaps:          gaps,
		escalation:    services.NewEscalationEngine(gaps),
		notifications: notifications,
		respondents:   respondents,
		framework:     services.NewFrameworkService(store),
		orgChart:      orgChart,
		projects:      services.NewProjectService(store),
		reports:       reports,
		insights:      services.NewInsightService(reports, opts.HTTPClient, opts.Insight),
	}
	return rt, nil
}

// Stop flushes nothing and cancels pending auto-save timers.
func (rt *Router) Stop() { rt.responses.Stop() }

func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(rt.requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.WithAuth)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"commit": commit, "build_time": buildTime})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", rt.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(rt.sessions))

			r.Post("/auth/logout", rt.handleLogout)
			r.Get("/auth/me", rt.handleMe)

			r.Get("/institutions", rt.handleInstitutions)

			r.Get("/indicators", rt.handleListIndicators)
			r.Get("/indicators/{code}", rt.handleGetIndicator)
			r.Route("/indicators/{code}/response", func(r chi.Router) {
				r.Get("/", rt.handleOpenResponse)
				r.Put("/option", rt.handleSelectOption)
				r.Patch("/form", rt.handlePatchForm)
				r.Put("/answers/{questionID}", rt.handleSetAnswer)
				r.Patch("/meta", rt.handlePatchMeta)
				r.Post("/contributors", rt.handleAddContributor)
				r.Post("/contributions", rt.handleAddContribution)
				r.Post("/contributions/submit", rt.handleSubmitContribution)
				r.Put("/score", rt.handleSetScore)
				r.Put("/scoring-criteria", rt.handleSetScoringCriteria)
				r.Post("/save", rt.handleSaveResponse)
				r.Post("/approve", rt.handleApproveResponse)
				r.Post("/request-changes", rt.handleRequestChanges)
				r.Post("/resolve-gap", rt.handleResolveGap)
			})
			r.Get("/responses", rt.handleListResponses)

			r.Get("/framework/pillars", rt.handleListPillars)
			r.Post("/framework/edits", rt.handleApplyFrameworkEdit)
			r.Delete("/framework/edits", rt.handleDeleteFrameworkNode)

			r.Get("/gaps", rt.handleListGaps)
			r.Post("/gaps/sweep", rt.handleRunSweep)
			r.Get("/gaps/sweep/log", rt.handleSweepLog)

			r.Get("/orgchart", rt.handleOrgChartTree)
			r.Post("/orgchart/nodes", rt.handleAddOrgNode)
			r.Put("/orgchart/nodes/{id}", rt.handleUpdateOrgNode)
			r.Delete("/orgchart/nodes/{id}", rt.handleDeleteOrgNode)

			r.Get("/notifications", rt.handleListNotifications)
			r.Post("/notifications/read-all", rt.handleReadAllNotifications)
			r.Post("/notifications/{id}/read", rt.handleReadNotification)

			r.Get("/respondents", rt.handleListRespondents)
			r.Post("/respondents", rt.handleCreateRespondent)
			r.Post("/respondents/reminders", rt.handleSendReminders)
			r.Get("/respondents/{id}", rt.handleGetRespondent)
			r.Put("/respondents/{id}", rt.handleUpdateRespondent)
			r.Delete("/respondents/{id}", rt.handleDeleteRespondent)

			r.Get("/projects", rt.handleListProjects)
			r.Post("/projects", rt.handleCreateProject)
			r.Get("/projects/{id}", rt.handleGetProject)
			r.Put("/projects/{id}", rt.handleUpdateProject)
			r.Post("/projects/{id}/submit", rt.handleSubmitProject)
			r.Post("/projects/{id}/approve", rt.handleApproveProject)
			r.Post("/projects/{id}/request-changes", rt.handleRequestProjectChanges)

			r.Get("/reports/dimensions", rt.handleReportDimensions)
			r.Get("/export", rt.handleExport)

			r.Post("/insights", rt.handleInsights)
		})
	})
	return r
}

func (rt *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		rt.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

// currentUser resolves the authenticated profile, or nil when the claims do
// not match a stored account.
func (rt *Router) currentUser(r *http.Request) *models.UserProfile {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return nil
	}
	u, err := rt.store.GetUser(uid)
	if err != nil {
		return nil
	}
	return u
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := "internal"
	if se, ok := services.AsServiceError(err); ok {
		code = string(se.Code)
		switch se.Code {
		case services.ErrorInvalid:
			status = http.StatusBadRequest
		case services.ErrorForbidden:
			status = http.StatusForbidden
		case services.ErrorNotFound:
			status = http.StatusNotFound
		case services.ErrorConflict:
			status = http.StatusConflict
		case services.ErrorUnauthorized:
			status = http.StatusUnauthorized
		case services.ErrorBadGateway:
			status = http.StatusBadGateway
		}
	}
	writeJSON(w, status, map[string]string{"error": code, "message": err.Error()})
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return services.NewInvalidError("invalid request body: " + err.Error())
	}
	return nil
}

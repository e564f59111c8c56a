package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/caiosilvaazeredo/ASG-Coleta/internal/middleware"
	"github.com/caiosilvaazeredo/ASG-Coleta/internal/models"
	"github.com/caiosilvaazeredo/ASG-Coleta/internal/services"
)

// Auth.

func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	res, err := rt.auth.Login(req.Email, req.Password)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": res.Token, "user": res.User})
}

func (rt *Router) handleLogout(w http.ResponseWriter, r *http.Request) {
	if uid, ok := middleware.UserIDFromContext(r.Context()); ok {
		rt.auth.Logout(uid)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (rt *Router) handleMe(w http.ResponseWriter, r *http.Request) {
	u := rt.currentUser(r)
	if u == nil {
		writeErr(w, services.NewUnauthorizedError("unknown account"))
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// Institutions and catalog.

func (rt *Router) handleInstitutions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Institutions())
}

func (rt *Router) handleListIndicators(w http.ResponseWriter, r *http.Request) {
	fw := models.Framework(r.URL.Query().Get("framework"))
	list, err := rt.catalog.List(fw)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (rt *Router) handleGetIndicator(w http.ResponseWriter, r *http.Request) {
	ind, err := rt.catalog.Get(chi.URLParam(r, "code"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ind)
}

// Responses.

func (rt *Router) handleOpenResponse(w http.ResponseWriter, r *http.Request) {
	resp, err := rt.responses.Open(chi.URLParam(r, "code"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (rt *Router) handleListResponses(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rt.responses.List())
}

func (rt *Router) handleSelectOption(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Option models.ResponseOption `json:"option"`
	}
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	resp, err := rt.responses.SelectOption(chi.URLParam(r, "code"), req.Option)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (rt *Router) handlePatchForm(w http.ResponseWriter, r *http.Request) {
	var p services.FormPatch
	if err := decode(r, &p); err != nil {
		writeErr(w, err)
		return
	}
	resp, err := rt.responses.Patch(chi.URLParam(r, "code"), p)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (rt *Router) handleSetAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value string `json:"value"`
	}
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	resp, err := rt.responses.SetAnswer(chi.URLParam(r, "code"), chi.URLParam(r, "questionID"), req.Value)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (rt *Router) handlePatchMeta(w http.ResponseWriter, r *http.Request) {
	var p services.MetaPatch
	if err := decode(r, &p); err != nil {
		writeErr(w, err)
		return
	}
	resp, err := rt.responses.UpdateMeta(chi.URLParam(r, "code"), p)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (rt *Router) handleAddContributor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Contributor string `json:"contributor"`
	}
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	resp, err := rt.responses.AddContributor(chi.URLParam(r, "code"), req.Contributor)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (rt *Router) handleAddContribution(w http.ResponseWriter, r *http.Request) {
	var c models.Contribution
	if err := decode(r, &c); err != nil {
		writeErr(w, err)
		return
	}
	resp, err := rt.responses.AddContribution(chi.URLParam(r, "code"), c)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (rt *Router) handleSubmitContribution(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	if req.UserID == "" {
		if uid, ok := middleware.UserIDFromContext(r.Context()); ok {
			req.UserID = uid
		}
	}
	resp, err := rt.responses.SubmitContribution(chi.URLParam(r, "code"), req.UserID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (rt *Router) handleSetScore(w http.ResponseWriter, r *http.Request) {
	u := rt.currentUser(r)
	if u == nil {
		writeErr(w, services.NewUnauthorizedError("unknown account"))
		return
	}
	var req struct {
		Score int `json:"score"`
	}
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	resp, err := rt.responses.SetManualScore(chi.URLParam(r, "code"), u.Role, req.Score)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (rt *Router) handleSetScoringCriteria(w http.ResponseWriter, r *http.Request) {
	var c models.ScoringCriteria
	if err := decode(r, &c); err != nil {
		writeErr(w, err)
		return
	}
	resp, err := rt.responses.SetScoringCriteria(chi.URLParam(r, "code"), c)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (rt *Router) handleSaveResponse(w http.ResponseWriter, r *http.Request) {
	res, err := rt.responses.Save(chi.URLParam(r, "code"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (rt *Router) handleApproveResponse(w http.ResponseWriter, r *http.Request) {
	u := rt.currentUser(r)
	if u == nil {
		writeErr(w, services.NewUnauthorizedError("unknown account"))
		return
	}
	resp, err := rt.responses.Approve(chi.URLParam(r, "code"), u.Permissions)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (rt *Router) handleRequestChanges(w http.ResponseWriter, r *http.Request) {
	u := rt.currentUser(r)
	if u == nil {
		writeErr(w, services.NewUnauthorizedError("unknown account"))
		return
	}
	var req struct {
		Feedback string `json:"feedback"`
	}
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	resp, err := rt.responses.RequestChanges(chi.URLParam(r, "code"), u.Permissions, req.Feedback)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (rt *Router) handleResolveGap(w http.ResponseWriter, r *http.Request) {
	resp, err := rt.responses.ResolveGap(chi.URLParam(r, "code"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Framework hierarchy.

func (rt *Router) handleListPillars(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rt.framework.ListPillars())
}

func (rt *Router) handleApplyFrameworkEdit(w http.ResponseWriter, r *http.Request) {
	var edit services.FrameworkEdit
	if err := decode(r, &edit); err != nil {
		writeErr(w, err)
		return
	}
	id, err := rt.framework.Apply(edit)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (rt *Router) handleDeleteFrameworkNode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	err := rt.framework.Delete(
		services.EditKind(q.Get("kind")),
		q.Get("pillar_id"), q.Get("notebook_id"), q.Get("content_id"), q.Get("id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Gaps and escalation.

func (rt *Router) handleListGaps(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rt.gaps.ListGaps())
}

func (rt *Router) handleRunSweep(w http.ResponseWriter, _ *http.Request) {
	entries := rt.escalation.RunSweep()
	rt.notifications.NotifySweep(entries)
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries, "last_run": rt.escalation.LastRun()})
}

func (rt *Router) handleSweepLog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"entries": rt.escalation.Log(), "last_run": rt.escalation.LastRun()})
}

// Org chart.

func (rt *Router) handleOrgChartTree(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rt.orgChart.Tree())
}

func (rt *Router) handleAddOrgNode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ParentID string               `json:"parent_id"`
		Node     models.HierarchyNode `json:"node"`
	}
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	id, err := rt.orgChart.Add(req.ParentID, req.Node)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (rt *Router) handleUpdateOrgNode(w http.ResponseWriter, r *http.Request) {
	var n models.HierarchyNode
	if err := decode(r, &n); err != nil {
		writeErr(w, err)
		return
	}
	n.ID = chi.URLParam(r, "id")
	if err := rt.orgChart.Update(n); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (rt *Router) handleDeleteOrgNode(w http.ResponseWriter, r *http.Request) {
	if err := rt.orgChart.Delete(chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Notifications.

func (rt *Router) handleListNotifications(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rt.notifications.List())
}

func (rt *Router) handleReadNotification(w http.ResponseWriter, r *http.Request) {
	if err := rt.notifications.MarkRead(chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (rt *Router) handleReadAllNotifications(w http.ResponseWriter, _ *http.Request) {
	n := rt.notifications.MarkAllRead()
	writeJSON(w, http.StatusOK, map[string]int{"marked": n})
}

// Respondents.

func (rt *Router) handleListRespondents(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rt.respondents.List())
}

func (rt *Router) handleCreateRespondent(w http.ResponseWriter, r *http.Request) {
	var in models.Respondent
	if err := decode(r, &in); err != nil {
		writeErr(w, err)
		return
	}
	out, err := rt.respondents.Create(in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (rt *Router) handleGetRespondent(w http.ResponseWriter, r *http.Request) {
	out, err := rt.respondents.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (rt *Router) handleUpdateRespondent(w http.ResponseWriter, r *http.Request) {
	var in models.Respondent
	if err := decode(r, &in); err != nil {
		writeErr(w, err)
		return
	}
	in.ID = chi.URLParam(r, "id")
	out, err := rt.respondents.Update(in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (rt *Router) handleDeleteRespondent(w http.ResponseWriter, r *http.Request) {
	if err := rt.respondents.Delete(chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (rt *Router) handleSendReminders(w http.ResponseWriter, _ *http.Request) {
	n := rt.respondents.SendReminders()
	writeJSON(w, http.StatusOK, map[string]int{"sent": n})
}

// Impact projects.

func (rt *Router) handleListProjects(w http.ResponseWriter, r *http.Request) {
	inst := models.InstitutionID(r.URL.Query().Get("institution"))
	writeJSON(w, http.StatusOK, rt.projects.List(inst))
}

func (rt *Router) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var in models.ImpactProject
	if err := decode(r, &in); err != nil {
		writeErr(w, err)
		return
	}
	out, err := rt.projects.Create(in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (rt *Router) handleGetProject(w http.ResponseWriter, r *http.Request) {
	out, err := rt.projects.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (rt *Router) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var in models.ImpactProject
	if err := decode(r, &in); err != nil {
		writeErr(w, err)
		return
	}
	in.ID = chi.URLParam(r, "id")
	out, err := rt.projects.Update(in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (rt *Router) handleSubmitProject(w http.ResponseWriter, r *http.Request) {
	out, err := rt.projects.Submit(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (rt *Router) handleApproveProject(w http.ResponseWriter, r *http.Request) {
	u := rt.currentUser(r)
	if u == nil {
		writeErr(w, services.NewUnauthorizedError("unknown account"))
		return
	}
	out, err := rt.projects.Approve(chi.URLParam(r, "id"), u.Permissions)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (rt *Router) handleRequestProjectChanges(w http.ResponseWriter, r *http.Request) {
	u := rt.currentUser(r)
	if u == nil {
		writeErr(w, services.NewUnauthorizedError("unknown account"))
		return
	}
	var req struct {
		Feedback string `json:"feedback"`
	}
	if err := decode(r, &req); err != nil {
		writeErr(w, err)
		return
	}
	out, err := rt.projects.RequestChanges(chi.URLParam(r, "id"), u.Permissions, req.Feedback)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Reports, export and insights.

func (rt *Router) handleReportDimensions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"dimensions": rt.reports.Dimensions(),
		"gri_score":  rt.reports.ScoreString(),
		"open_gaps":  rt.reports.GapCount(),
	})
}

func (rt *Router) handleExport(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = "responses"
	}
	var (
		b    []byte
		err  error
		name string
	)
	switch kind {
	case "responses":
		b, err = rt.reports.ExportResponsesCSV()
		name = "responses.csv"
	case "gaps":
		b, err = services.ExportGapsCSV(rt.gaps.ListGaps())
		name = "gaps.csv"
	default:
		writeErr(w, services.NewInvalidError("unsupported export kind"))
		return
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+name)
	_, _ = w.Write(b)
}

func (rt *Router) handleInsights(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"insights": rt.insights.Generate()})
}

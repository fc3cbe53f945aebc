package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/surveycraft/surveycraft/internal/middleware"
	"github.com/surveycraft/surveycraft/internal/services"
)

type Router struct {
	store     Store
	auth      *services.AuthService
	surveys   *services.SurveyService
	questions *services.QuestionService
	responses *services.ResponseService
	dashboard *services.DashboardService
	results   *services.ResultsService
}

func NewRouter(store Store, signer services.TokenSigner, tokenTTL time.Duration) *Router {
	return &Router{
		store:     store,
		auth:      services.NewAuthService(newAuthStoreAdapter(store), signer, tokenTTL),
		surveys:   services.NewSurveyService(newSurveyStoreAdapter(store)),
		questions: services.NewQuestionService(newQuestionStoreAdapter(store)),
		responses: services.NewResponseService(newResponseStoreAdapter(store)),
		dashboard: services.NewDashboardService(newDashboardStoreAdapter(store)),
		results:   services.NewResultsService(newResultsStoreAdapter(store)),
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/auth/register", rt.handleRegister)
	mux.HandleFunc("/api/auth/login", rt.handleLogin)
	mux.HandleFunc("/api/surveys", rt.handleSurveys)
	mux.HandleFunc("/api/surveys/", rt.handleSurveyScoped)
	mux.HandleFunc("/api/questions/", rt.handleQuestionScoped)
	mux.HandleFunc("/api/dashboard/stats", rt.handleStats)
	mux.HandleFunc("/api/dashboard/activity", rt.handleActivity)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusForCode(code services.ErrorCode) int {
	switch code {
	case services.ErrorInvalid:
		return http.StatusBadRequest
	case services.ErrorUnauthorized:
		return http.StatusUnauthorized
	case services.ErrorForbidden:
		return http.StatusForbidden
	case services.ErrorNotFound:
		return http.StatusNotFound
	case services.ErrorConflict, services.ErrorInvalidState:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	if se, ok := services.AsServiceError(err); ok {
		writeJSON(w, statusForCode(se.Code), map[string]any{"error": se.Message, "code": se.Code})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
}

func callerID(r *http.Request) string {
	uid, _ := middleware.UserIDFromContext(r.Context())
	return uid
}

// POST /api/auth/register
func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, services.NewInvalidError(err.Error()))
		return
	}
	res, err := rt.auth.Register(req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// POST /api/auth/login
func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, services.NewInvalidError(err.Error()))
		return
	}
	res, err := rt.auth.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GET  /api/surveys?include_archived=true
// POST /api/surveys
func (rt *Router) handleSurveys(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		includeArchived := r.URL.Query().Get("include_archived") == "true"
		out, err := rt.surveys.List(callerID(r), includeArchived)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	case http.MethodPost:
		var req struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, services.NewInvalidError(err.Error()))
			return
		}
		sv, err := rt.surveys.Create(callerID(r), req.Title, req.Description)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, sv)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// /api/surveys/{id} and its subresources: questions, responses, results, export.
func (rt *Router) handleSurveyScoped(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/surveys/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	id := parts[0]
	if len(parts) == 1 {
		rt.handleSurvey(w, r, id)
		return
	}
	if len(parts) != 2 {
		http.NotFound(w, r)
		return
	}
	switch parts[1] {
	case "questions":
		rt.handleSurveyQuestions(w, r, id)
	case "responses":
		rt.handleSurveyResponses(w, r, id)
	case "results":
		rt.handleSurveyResults(w, r, id)
	case "export":
		rt.handleSurveyExport(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (rt *Router) handleSurvey(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		detail, err := rt.surveys.Get(callerID(r), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, detail)
	case http.MethodPut:
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			writeError(w, services.NewInvalidError(err.Error()))
			return
		}
		sv, err := rt.surveys.Update(callerID(r), id, raw)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sv)
	case http.MethodDelete:
		if err := rt.surveys.Delete(callerID(r), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// GET lists the owner's questions; POST adds one.
func (rt *Router) handleSurveyQuestions(w http.ResponseWriter, r *http.Request, surveyID string) {
	switch r.Method {
	case http.MethodGet:
		qs, err := rt.questions.List(callerID(r), surveyID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, qs)
	case http.MethodPost:
		var in services.QuestionInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, services.NewInvalidError(err.Error()))
			return
		}
		q, err := rt.questions.Add(callerID(r), surveyID, in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, q)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// POST accepts a public submission; GET is the owner's review listing.
func (rt *Router) handleSurveyResponses(w http.ResponseWriter, r *http.Request, surveyID string) {
	switch r.Method {
	case http.MethodPost:
		var req struct {
			Answers map[string]json.RawMessage `json:"answers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, services.NewInvalidError(err.Error()))
			return
		}
		// Identity is optional here: anonymous submissions are allowed, and an
		// authenticated caller is recorded as the respondent.
		res, err := rt.responses.Submit(services.SubmitRequest{
			SurveyID:     surveyID,
			RespondentID: callerID(r),
			Answers:      req.Answers,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, res)
	case http.MethodGet:
		rs, err := rt.responses.ListBySurvey(callerID(r), surveyID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rs)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// GET /api/surveys/{id}/results
func (rt *Router) handleSurveyResults(w http.ResponseWriter, r *http.Request, surveyID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	res, err := rt.results.Aggregate(callerID(r), surveyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GET /api/surveys/{id}/export
func (rt *Router) handleSurveyExport(w http.ResponseWriter, r *http.Request, surveyID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	b, err := rt.results.ExportCSV(callerID(r), surveyID)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=responses.csv")
	_, _ = w.Write(b)
}

// PUT/DELETE /api/questions/{id}
func (rt *Router) handleQuestionScoped(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/questions/"), "/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodPut:
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			writeError(w, services.NewInvalidError(err.Error()))
			return
		}
		q, err := rt.questions.Update(callerID(r), id, raw)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, q)
	case http.MethodDelete:
		if err := rt.questions.Delete(callerID(r), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// GET /api/dashboard/stats
func (rt *Router) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	stats, err := rt.dashboard.Stats(callerID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GET /api/dashboard/activity
func (rt *Router) handleActivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	out, err := rt.dashboard.RecentActivity(callerID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

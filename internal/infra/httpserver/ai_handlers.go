package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appai "github.com/bryanwahyu/neurolink/internal/application/ai"
	"github.com/bryanwahyu/neurolink/internal/domain/incident"
	"github.com/bryanwahyu/neurolink/internal/middleware"
)

type analyzeRequest struct {
	InputText string `json:"inputText" validate:"max=20000"`
	UserID    string `json:"userId" validate:"max=64"`
	Region    string `json:"region" validate:"max=64"`
}

func (b *analyzeRequest) Sanitize() {
	b.InputText = middleware.SanitizeString(b.InputText)
	b.UserID = middleware.SanitizeString(b.UserID)
	b.Region = middleware.SanitizeString(b.Region)
}

// POST /api/ai/analyze
// Body: {"inputText": "...", "userId": "...", "region": "..."}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body analyzeRequest
	if err := middleware.DecodeJSON(w, req, &body); err != nil {
		return badRequest(err)
	}

	a, err := r.aiSvc.AnalyzeAndStore(req.Context(), appai.AnalyzeCommand{
		InputText: body.InputText,
		UserID:    body.UserID,
		Region:    body.Region,
	})
	if err != nil {
		return err
	}
	r.metrics.ObserveAI(false, a.IsMock)
	return writeJSON(w, http.StatusOK, map[string]any{"success": true, "analysis": a})
}

type codeRequest struct {
	Prompt string `json:"prompt" validate:"max=8000"`
}

func (b *codeRequest) Sanitize() { b.Prompt = middleware.SanitizeString(b.Prompt) }

type codeResponse struct {
	Success         bool   `json:"success"`
	Language        string `json:"language"`
	Code            string `json:"code"`
	Markup          string `json:"markup"`
	Prompt          string `json:"prompt"`
	DisplayLanguage string `json:"displayLanguage"`
	ArtifactURL     string `json:"artifactUrl,omitempty"`
	Provider        string `json:"provider"`
	IsMock          bool   `json:"isMock"`
}

// POST /api/ai/code
// Body: {"prompt": "..."}
// code carries whichever of code/markup was produced; markup is repeated on its own.
func (r *Router) handleGenerateCode(w http.ResponseWriter, req *http.Request) error {
	var body codeRequest
	if err := middleware.DecodeJSON(w, req, &body); err != nil {
		return badRequest(err)
	}

	res := r.aiSvc.Generate(req.Context(), body.Prompt)
	r.metrics.ObserveAI(true, res.Synthetic)
	return writeJSON(w, http.StatusOK, codeResponse{
		Success:         true,
		Language:        res.Payload.Language,
		Code:            res.Payload.Content(),
		Markup:          res.Payload.Markup,
		Prompt:          res.Payload.PromptSummary,
		DisplayLanguage: res.DisplayLanguage,
		ArtifactURL:     res.ArtifactURL,
		Provider:        res.Provider.Vendor(),
		IsMock:          res.Synthetic,
	})
}

// GET /api/ai/insights
func (r *Router) handleInsights(w http.ResponseWriter, req *http.Request) error {
	in, err := r.aiSvc.Insights(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		appai.Insights
	}{true, in})
}

// GET /api/ai/latest/{userId}
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	s, err := r.aiSvc.Latest(req.Context(), chi.URLParam(req, "userId"))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"success": true, "sentiment": s})
}

// GET /api/ai/incidents?limit=
func (r *Router) handleIncidents(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	list, err := r.aiSvc.Incidents(req.Context(), middleware.ValidateLimit(limit, 20))
	if err != nil {
		return err
	}
	if list == nil {
		list = []*incident.Incident{}
	}
	return writeJSON(w, http.StatusOK, map[string]any{"success": true, "incidents": list})
}

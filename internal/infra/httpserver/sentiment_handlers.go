package httpserver

import (
	"net/http"
	"strconv"

	appsentiment "github.com/bryanwahyu/neurolink/internal/application/sentiment"
	"github.com/bryanwahyu/neurolink/internal/middleware"
)

// GET /api/sentiment/feed?limit=
func (r *Router) handleFeed(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	feed, err := r.sentSvc.Feed(req.Context(), middleware.ValidateLimit(limit, appsentiment.DefaultFeedSize))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, feed)
}

type addSentimentRequest struct {
	Text      string `json:"text" validate:"required,max=20000"`
	Sentiment string `json:"sentiment" validate:"required"`
	Region    string `json:"region" validate:"max=64"`
}

func (b *addSentimentRequest) Sanitize() {
	b.Text = middleware.SanitizeString(b.Text)
	b.Sentiment = middleware.SanitizeString(b.Sentiment)
	b.Region = middleware.SanitizeString(b.Region)
}

// POST /api/sentiment/add
// Body: {"text": "...", "sentiment": "positive|neutral|negative", "region": "..."}
func (r *Router) handleAddSentiment(w http.ResponseWriter, req *http.Request) error {
	var body addSentimentRequest
	if err := middleware.DecodeJSON(w, req, &body); err != nil {
		return badRequest(err)
	}
	e, err := r.sentSvc.Add(req.Context(), appsentiment.AddCommand{
		Text:      body.Text,
		Sentiment: body.Sentiment,
		Region:    body.Region,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": e})
}

// GET /api/sentiment/stats
func (r *Router) handleStats(w http.ResponseWriter, req *http.Request) error {
	st, err := r.sentSvc.Stats(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, st)
}

// GET /api/sentiment/regions
func (r *Router) handleRegions(w http.ResponseWriter, req *http.Request) error {
	regions, err := r.sentSvc.Regions(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, regions)
}

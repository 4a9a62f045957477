package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sendurway/signalwise/internal/metrics"
	"github.com/sendurway/signalwise/internal/recommend"
)

// ResultsHandler serves plan recommendations.
type ResultsHandler struct {
	metrics *metrics.Metrics
}

// NewResultsHandler creates a ResultsHandler.
func NewResultsHandler(m *metrics.Metrics) *ResultsHandler {
	return &ResultsHandler{metrics: m}
}

// HandleResults computes the recommendation for the query parameters.
// Missing or unrecognized values fall back to defaults; it never fails.
func (h *ResultsHandler) HandleResults(c *gin.Context) {
	in := recommend.ParseInput(recommend.RawInput{
		HomeZip:        c.Query("homeZip"),
		DataTier:       c.Query("dataTier"),
		Priority:       c.Query("priority"),
		CurrentBill:    c.Query("currentBill"),
		CurrentCarrier: c.Query("currentCarrier"),
	})

	result := recommend.Build(in)
	h.metrics.RecordRecommendation(string(result.BestMatch.Carrier), string(in.Priority))

	c.JSON(http.StatusOK, result)
}

package handler

import (
	"log/slog"
	"net/http"
	"pitchgraph/internal/model"

	"github.com/gin-gonic/gin"
)

type GraphGenerator interface {
	Generate(startupText, companyName string) (*model.KnowledgeGraph, error)
}

type ObjectWriter interface {
	WriteJSON(uri string, v any) error
}

type GraphHandler struct {
	generator GraphGenerator
	writer    ObjectWriter
	providers []string
}

// NewGraphHandler wires the graph endpoints. writer may be nil when no
// object storage is configured.
func NewGraphHandler(generator GraphGenerator, writer ObjectWriter, providers []string) *GraphHandler {
	return &GraphHandler{generator: generator, writer: writer, providers: providers}
}

func (h *GraphHandler) GenerateGraph(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in request body"})
		return
	}

	if req.StartupText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'startup_text' in request body"})
		return
	}

	graph, err := h.generator.Generate(req.StartupText, req.CompanyName)
	if err != nil {
		slog.Error("graph generation failed", "company", req.CompanyName, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	res := GenerateResponse{KnowledgeGraph: graph}

	if req.DestinationGCS != "" {
		if h.writer == nil {
			res.GCSWriteError = "object storage is not configured"
		} else if err := h.writer.WriteJSON(req.DestinationGCS, graph); err != nil {
			slog.Error("error writing graph to GCS", "uri", req.DestinationGCS, "error", err)
			res.GCSWriteError = err.Error()
		} else {
			slog.Info("graph written to GCS", "uri", req.DestinationGCS)
		}
	}

	c.JSON(http.StatusOK, res)
}

// GetUsage documents the endpoint for GET callers.
func (h *GraphHandler) GetUsage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "pitchgraph",
		"usage":   "POST /graph with JSON body",
		"body": gin.H{
			"startup_text":    "description of the startup (required)",
			"company_name":    "company name, inferred from the text when omitted",
			"destination_gcs": "optional gs://bucket/object to write the graph to",
		},
	})
}

func (h *GraphHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"providers": h.providers,
	})
}

package handlers

import (
	"net/http"
	"strconv"

	"newscheck-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AnalysisHandler handles HTTP requests for article analyses
type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
	}
}

// CreateAnalysisRequest represents the request body for analyzing an article
type CreateAnalysisRequest struct {
	Article string `json:"article"`
}

// CreateAnalysis handles POST /api/analyses
func (h *AnalysisHandler) CreateAnalysis(c *gin.Context) {
	var req CreateAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	serviceReq := service.AnalyzeRequest{
		Article: req.Article,
	}

	result, err := h.analysisService.Analyze(c.Request.Context(), serviceReq)
	if err != nil {
		if err == service.ErrEmptyArticle {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "EMPTY_ARTICLE",
					"message": "Please enter a news article to analyze.",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ANALYSIS_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Analysis,
	})
}

// GetAnalysis handles GET /api/analyses/:id
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid analysis ID format",
			},
		})
		return
	}

	serviceReq := service.GetAnalysisRequest{
		ID: id,
	}

	result, err := h.analysisService.GetAnalysis(c.Request.Context(), serviceReq)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Analysis not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Analysis,
	})
}

// ListAnalyses handles GET /api/analyses
func (h *AnalysisHandler) ListAnalyses(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_LIMIT",
					"message": "Invalid limit parameter",
				},
			})
			return
		}
		limit = parsed
	}

	offset := 0
	if v := c.Query("offset"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_OFFSET",
					"message": "Invalid offset parameter",
				},
			})
			return
		}
		offset = parsed
	}

	serviceReq := service.ListAnalysesRequest{
		Limit:  limit,
		Offset: offset,
	}

	result, err := h.analysisService.ListAnalyses(c.Request.Context(), serviceReq)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LIST_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Analyses,
	})
}

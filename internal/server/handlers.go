package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/moodcheck/internal/assessment"
	"github.com/abhisek/moodcheck/internal/classifier"
	"github.com/abhisek/moodcheck/internal/encoder"
	"github.com/abhisek/moodcheck/internal/questionnaire"
	"github.com/abhisek/moodcheck/internal/store"
)

const (
	defaultListLimit = 20
	maxListLimit     = 200
)

type assessRequest struct {
	Responses encoder.ResponseSet `json:"responses"`
}

type questionsResponse struct {
	Version   string                   `json:"version"`
	Questions []questionnaire.Question `json:"questions"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "moodcheck",
	})
}

func (s *Server) listQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, questionsResponse{
		Version:   s.qn.Version,
		Questions: s.qn.Questions,
	})
}

func (s *Server) createAssessment(c *gin.Context) {
	var req assessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.Responses == nil {
		req.Responses = encoder.ResponseSet{}
	}

	res, err := s.assessor.Assess(c.Request.Context(), req.Responses)
	if err != nil {
		var incomplete *encoder.IncompleteError
		switch {
		case errors.As(err, &incomplete):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "please complete the assessment before submitting",
				"missing": incomplete.Missing,
			})
		case errors.Is(err, classifier.ErrAdapterFailure):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (s *Server) listAssessments(c *gin.Context) {
	if s.opts.Repo == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "history is disabled"})
		return
	}

	limit := defaultListLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxListLimit)
	}

	rows, err := s.opts.Repo.List(c.Request.Context(), store.QueryOpts{
		Limit: limit,
		Label: c.Query("label"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]*assessment.Result, 0, len(rows))
	for _, row := range rows {
		res, err := assessment.FromStored(row)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, res)
	}
	c.JSON(http.StatusOK, gin.H{"assessments": out})
}

func (s *Server) getAssessment(c *gin.Context) {
	if s.opts.Repo == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "history is disabled"})
		return
	}

	row, err := s.opts.Repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if row == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
		return
	}

	res, err := assessment.FromStored(*row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

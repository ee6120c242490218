package http

import (
	"net/http"

	"github.com/fwojciec/skim"
	"github.com/gin-gonic/gin"
)

type extractRequest struct {
	URL string `json:"url"`
}

type summarizeRequest struct {
	Text string `json:"text"`
}

// handleExtract handles "POST /api/extract".
func (s *Server) handleExtract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.Error(c, skim.Errorf(skim.EINVALID, "Invalid JSON body."))
		return
	}

	article, err := s.Extractor.ExtractArticle(c.Request.Context(), req.URL)
	if err != nil {
		s.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

// handleSummarize handles "POST /api/summarize".
func (s *Server) handleSummarize(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.Error(c, skim.Errorf(skim.EINVALID, "Invalid JSON body."))
		return
	}

	summary, err := s.Summarizer.Summarize(c.Request.Context(), req.Text)
	if err != nil {
		s.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

package handlers

import (
	"net/http"

	apperrors "homematch-search/internal/errors"
	"homematch-search/internal/models"
	"homematch-search/internal/services"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchService *services.SearchService
}

func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search handles POST /api/search. The body carries structured criteria
// (produced upstream by the NLU/CLI layer) and an optional user-profile
// snapshot, which is applied to the criteria before the pipeline runs.
func (h *SearchHandler) Search(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"message": "invalid request body",
			"code":    apperrors.ErrCodeInvalidCriteria,
		}})
		return
	}

	criteria := req.Criteria
	if req.Profile != nil {
		criteria = req.Profile.Apply(criteria)
	}

	response, err := h.searchService.Search(c.Request.Context(), criteria)
	if err != nil {
		httpErr := apperrors.MapError(err)
		c.JSON(httpErr.Status, gin.H{"error": gin.H{
			"message": httpErr.Message,
			"code":    httpErr.Code,
		}})
		return
	}
	c.JSON(http.StatusOK, response)
}

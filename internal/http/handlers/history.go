package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const maxHistoryLimit = 100

// History returns the most recently ended matches from the archive.
func (h *Handler) History(c *gin.Context) {
	if h.Archive == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "match history disabled"})
		return
	}

	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		if n > maxHistoryLimit {
			n = maxHistoryLimit
		}
		limit = n
	}

	records, err := h.Archive.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load match history"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// HistoryByMatch returns the archived row for one match id.
func (h *Handler) HistoryByMatch(c *gin.Context) {
	if h.Archive == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "match history disabled"})
		return
	}

	rec, err := h.Archive.GetByMatchID(c.Request.Context(), c.Param("matchId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load match"})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

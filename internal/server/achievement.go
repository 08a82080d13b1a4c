package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	achievementdomain "github.com/medforce/fieldtrack/internal/achievement/domain"
	"github.com/medforce/fieldtrack/internal/period"
)

type recordAchievementRequest struct {
	RepID         int64  `json:"rep_id"`
	ProductID     *int64 `json:"product_id"`
	AchievedUnits int    `json:"achieved_units"`
	Month         int    `json:"month"`
	Year          int    `json:"year"`
	Remarks       string `json:"remarks"`
}

func (s *Server) RecordAchievement(c *gin.Context) {
	var req recordAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var productID *snowflake.ID
	if req.ProductID != nil {
		id := snowflake.ID(*req.ProductID)
		productID = &id
	}

	resp, err := s.achievementSvc.Record(c.Request.Context(), achievementdomain.RecordRequest{
		RepID:         snowflake.ID(req.RepID),
		ProductID:     productID,
		AchievedUnits: req.AchievedUnits,
		Period:        period.Period{Month: req.Month, Year: req.Year},
		Remarks:       strings.TrimSpace(req.Remarks),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/medforce/fieldtrack/internal/period"
	targetdomain "github.com/medforce/fieldtrack/internal/target/domain"
)

type assignTargetRequest struct {
	RepID       int64  `json:"rep_id"`
	RepName     string `json:"rep_name"`
	ProductID   *int64 `json:"product_id"`
	ProductName string `json:"product_name"`
	Category    string `json:"category"`
	TargetUnits int    `json:"target_units"`
	Month       int    `json:"month"`
	Year        int    `json:"year"`
	AssignedBy  string `json:"assigned_by"`
}

type overrideTargetRequest struct {
	TargetUnits   *int `json:"target_units"`
	AchievedUnits *int `json:"achieved_units"`
}

func (s *Server) AssignTarget(c *gin.Context) {
	var req assignTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	category := targetdomain.Category(strings.TrimSpace(req.Category))
	if category == "" {
		category = targetdomain.CategoryProduct
	}

	var productID *snowflake.ID
	if req.ProductID != nil {
		id := snowflake.ID(*req.ProductID)
		productID = &id
	}

	// The token identity wins over the body field so a caller cannot gate
	// against somebody else's stock.
	assignedBy := strings.TrimSpace(req.AssignedBy)
	if identity := s.identity(c); identity != "" {
		assignedBy = identity
	}

	resp, err := s.targetSvc.Assign(c.Request.Context(), targetdomain.AssignRequest{
		RepID:       snowflake.ID(req.RepID),
		RepName:     strings.TrimSpace(req.RepName),
		ProductID:   productID,
		ProductName: strings.TrimSpace(req.ProductName),
		Category:    category,
		TargetUnits: req.TargetUnits,
		Period:      period.Period{Month: req.Month, Year: req.Year},
		AssignedBy:  assignedBy,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTargetByID(c *gin.Context) {
	id, err := parseSnowflakeParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.targetSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTargets(c *gin.Context) {
	p, err := parsePeriodQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.targetSvc.ListByPeriod(c.Request.Context(), p)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) OverrideTarget(c *gin.Context) {
	id, err := parseSnowflakeParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req overrideTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.TargetUnits == nil && req.AchievedUnits == nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.targetSvc.Override(c.Request.Context(), id, targetdomain.OverrideRequest{
		TargetUnits:   req.TargetUnits,
		AchievedUnits: req.AchievedUnits,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteTarget(c *gin.Context) {
	id, err := parseSnowflakeParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.targetSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetDashboard(c *gin.Context) {
	p, err := parsePeriodQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	sc, err := s.scopes.Resolve(c.Request.Context(), s.identity(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.performanceSvc.Summarize(c.Request.Context(), p, sc)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListRepresentativeTargets(c *gin.Context) {
	repID, err := parseSnowflakeParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	p, err := parsePeriodQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.performanceSvc.RepresentativeTargets(c.Request.Context(), repID, p)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

package server

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/medforce/fieldtrack/internal/period"
)

func parseSnowflakeParam(c *gin.Context, name string) (snowflake.ID, error) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, newValidationError(name, "invalid_"+name, "invalid "+name)
	}
	return snowflake.ID(id), nil
}

func parsePeriodQuery(c *gin.Context) (period.Period, error) {
	month, err := strconv.Atoi(strings.TrimSpace(c.Query("month")))
	if err != nil {
		return period.Period{}, newValidationError("month", "invalid_month", "invalid month")
	}
	year, err := strconv.Atoi(strings.TrimSpace(c.Query("year")))
	if err != nil {
		return period.Period{}, newValidationError("year", "invalid_year", "invalid year")
	}

	p := period.Period{Month: month, Year: year}
	if err := p.Validate(); err != nil {
		return period.Period{}, err
	}
	return p, nil
}

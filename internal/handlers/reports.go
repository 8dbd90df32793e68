package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"production_board/internal/service"
	"production_board/internal/shiftcal"

	"github.com/gin-gonic/gin"
)

const (
	errDateInvalid = "invalid 'date'; use YYYY-MM-DD"

	layoutDate = "2006-01-02"
)

// @Summary      Shift report
// @Description  Production, scrap, downtime and valuation per shift and machine over the requested period. Stored shift tags win; untagged records are attributed by the tolerance shift table.
// @Tags         reports
// @Produce      json
// @Param        period   query  string  false  "Reporting period"  Enums(today,yesterday,week,month,last_month,day)  default(today)
// @Param        date     query  string  false  "Day to report when period=day (YYYY-MM-DD, plant local)"  example(2026-08-24)
// @Param        machine  query  string  false  "Restrict to one machine ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/reports/shift [get]
// @Security     BearerAuth
func (h *Handler) getShiftReport(c *gin.Context) {
	filter := service.ReportFilter{
		Period:    strings.ToLower(strings.TrimSpace(c.Query("period"))),
		MachineID: c.Query("machine"),
	}

	if qs := c.Query("date"); qs != "" {
		date, err := parseQueryDate(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errDateInvalid})
			return
		}
		filter.Date = date
	}

	rep, err := h.services.Reporting.ShiftReport(c.Request.Context(), filter)
	if err != nil {
		// Unknown period or missing date are caller errors.
		if h.log != nil {
			h.log.Errorw("shift_report_failed", "err", err, "period", filter.Period, "machine", filter.MachineID)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rep)
}

// parseQueryDate reads a plant-local calendar day.
func parseQueryDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(layoutDate, s, shiftcal.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

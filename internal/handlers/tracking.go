package handlers

import (
	"net/http"

	"production_board/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK       = "ok"
	statusResumed  = "resumed"
	statusRecorded = "recorded"

	errGetBoard        = "failed to load board"
	errResumeStop      = "failed to resume stop"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Request DTO for a status change.
type statusRequest struct {
	Status string `json:"status" binding:"required"` // PRODUCING | LOW_EFFICIENCY | STOPPED | WAITING
	Reason string `json:"reason,omitempty"`
}

// Request DTO for opening a stop.
type stopRequest struct {
	Reason string `json:"reason" binding:"required"`
	Notes  string `json:"notes,omitempty"`
}

// Request DTO for a box scan.
type scanRequest struct {
	MachineID  string `json:"machine_id" binding:"required"`
	OrderID    string `json:"order_id" binding:"required"`
	ScannedBox int    `json:"scanned_box,omitempty"`
	Shift      string `json:"shift,omitempty"` // 1 | 2 | 3
}

// Request DTO for a scrap batch.
type scrapRequest struct {
	MachineID string `json:"machine_id" binding:"required"`
	OrderID   string `json:"order_id,omitempty"`
	Qty       int    `json:"qty" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
	Shift     string `json:"shift,omitempty"`
}

// Request DTO for a manual production entry.
type manualRequest struct {
	MachineID string `json:"machine_id" binding:"required"`
	OrderID   string `json:"order_id,omitempty"`
	GoodQty   int    `json:"good_qty" binding:"required"`
	Shift     string `json:"shift" binding:"required"`
	Product   string `json:"product,omitempty"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Floor board snapshot
// @Description  Current status per machine plus today's running totals.
// @Tags         machines
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/machines [get]
// @Security     BearerAuth
func (h *Handler) getBoard(c *gin.Context) {
	snap, err := h.services.Board.Snapshot(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetBoard, "board_snapshot_failed", err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary      Set machine status
// @Tags         machines
// @Accept       json
// @Produce      json
// @Param        id    path  string         true  "Machine ID"
// @Param        body  body  statusRequest  true  "Status payload"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/machines/{id}/status [post]
// @Security     BearerAuth
func (h *Handler) setStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	params := service.StatusParams{
		MachineID: c.Param("id"),
		Status:    req.Status,
		Reason:    req.Reason,
	}
	if err := h.services.Tracking.SetStatus(c.Request.Context(), params); err != nil {
		if h.log != nil {
			h.log.Errorw("set_status_failed", "err", err, "machine", params.MachineID, "status", req.Status)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Open a machine stop
// @Description  Records the start of a downtime interval. The stop stays open until resumed.
// @Tags         machines
// @Accept       json
// @Produce      json
// @Param        id    path  string       true  "Machine ID"
// @Param        body  body  stopRequest  true  "Stop payload"
// @Success      200  {object}  map[string]interface{}  "stop"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/machines/{id}/stops [post]
// @Security     BearerAuth
func (h *Handler) openStop(c *gin.Context) {
	var req stopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	params := service.StopParams{
		MachineID: c.Param("id"),
		Reason:    req.Reason,
		Notes:     req.Notes,
	}
	stop, err := h.services.Tracking.OpenStop(c.Request.Context(), params)
	if err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, err.Error(), "open_stop_failed", err, "machine", params.MachineID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stop": stop})
}

// @Summary      Resume a stopped machine
// @Tags         machines
// @Produce      json
// @Param        id  path  string  true  "Stop ID"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/stops/{id}/resume [post]
// @Security     BearerAuth
func (h *Handler) resumeStop(c *gin.Context) {
	if err := h.services.Tracking.ResumeStop(c.Request.Context(), c.Param("id")); err != nil {
		h.logAndJSONError(c, http.StatusNotFound, errResumeStop, "resume_stop_failed", err, "stop", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusResumed})
}

// @Summary      Record a box scan
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        body  body  scanRequest  true  "Scan payload"
// @Success      200  {object}  map[string]interface{}  "scan"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/scans [post]
// @Security     BearerAuth
func (h *Handler) recordScan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	scan, err := h.services.Tracking.RecordScan(c.Request.Context(), service.ScanParams{
		MachineID:  req.MachineID,
		OrderID:    req.OrderID,
		ScannedBox: req.ScannedBox,
		Shift:      req.Shift,
	})
	if err != nil {
		if h.log != nil {
			h.log.Errorw("record_scan_failed", "err", err, "machine", req.MachineID, "order", req.OrderID)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scan": scan})
}

// @Summary      Record scrap
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        body  body  scrapRequest  true  "Scrap payload"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/scrap [post]
// @Security     BearerAuth
func (h *Handler) recordScrap(c *gin.Context) {
	var req scrapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	err := h.services.Tracking.RecordScrap(c.Request.Context(), service.ScrapParams{
		MachineID: req.MachineID,
		OrderID:   req.OrderID,
		Qty:       req.Qty,
		Reason:    req.Reason,
		Shift:     req.Shift,
	})
	if err != nil {
		if h.log != nil {
			h.log.Errorw("record_scrap_failed", "err", err, "machine", req.MachineID)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusRecorded})
}

// @Summary      Record a manual production entry
// @Description  Used when a box was not scanned (rework, samples, scanner offline). Shift is mandatory.
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        body  body  manualRequest  true  "Manual entry payload"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/entries [post]
// @Security     BearerAuth
func (h *Handler) recordManual(c *gin.Context) {
	var req manualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	err := h.services.Tracking.RecordManual(c.Request.Context(), service.ManualParams{
		MachineID: req.MachineID,
		OrderID:   req.OrderID,
		GoodQty:   req.GoodQty,
		Shift:     req.Shift,
		Product:   req.Product,
	})
	if err != nil {
		if h.log != nil {
			h.log.Errorw("record_manual_failed", "err", err, "machine", req.MachineID)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusRecorded})
}

package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fxlens/clientpulse/internal/domain/dto"
	"github.com/fxlens/clientpulse/internal/refresh"
	"github.com/fxlens/clientpulse/internal/service"
)

// AdminHandler exposes the maintenance operations: cold-start backfill,
// drift comparison, and refresh status.
type AdminHandler struct {
	svc             service.ClientService
	initializer     *refresh.Initializer
	reconciler      *refresh.Reconciler
	defaultParallel int
}

// NewAdminHandler constructs an AdminHandler. defaultParallel is the
// backfill worker count used when the request does not override it.
func NewAdminHandler(svc service.ClientService, initializer *refresh.Initializer, reconciler *refresh.Reconciler, defaultParallel int) *AdminHandler {
	return &AdminHandler{
		svc:             svc,
		initializer:     initializer,
		reconciler:      reconciler,
		defaultParallel: defaultParallel,
	}
}

// Initialize handles POST /api/v1/admin/initialize requests.
//
// Initialize godoc
// @Summary      Rebuild all derived client state
// @Description  Refreshes every client present in either source table; safe to re-run
// @Tags         admin
// @Produce      json
// @Param        parallel  query     int   false  "Worker count (1..8)" example(4)
// @Param        force     query     bool  false  "Truncate derived tables first" example(false)
// @Success      200       {object}  dto.InitializeResponse  "Success"
// @Failure      400       {object}  dto.ErrorResponse       "Bad Request"
// @Failure      500       {object}  dto.ErrorResponse       "Internal Error"
// @Router       /api/v1/admin/initialize [post]
func (h *AdminHandler) Initialize(c *gin.Context) {
	parallel := h.defaultParallel
	if s := c.Query("parallel"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("parallel must be a positive integer", err))
			return
		}
		parallel = v
	}
	force := c.Query("force") == "true"

	stats, err := h.initializer.InitializeAll(c.Request.Context(), parallel, force)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("backfill failed", err))
		return
	}
	c.JSON(http.StatusOK, dto.InitializeResponse{
		ClientsProcessed: stats.ClientsProcessed,
		AccountsWritten:  stats.AccountsWritten,
		Duration:         stats.Duration.String(),
	})
}

// Compare handles POST /api/v1/admin/compare requests.
//
// Compare godoc
// @Summary      Compare source and derived client sets
// @Description  Reports missing and orphaned clients; repairs them when auto_fix=true
// @Tags         admin
// @Produce      json
// @Param        auto_fix  query     bool  false  "Repair drift in place" example(false)
// @Success      200       {object}  dto.ReconcileResponse  "Success"
// @Failure      500       {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/admin/compare [post]
func (h *AdminHandler) Compare(c *gin.Context) {
	autoFix := c.Query("auto_fix") == "true"

	findings, err := h.reconciler.CompareAndRepair(c.Request.Context(), autoFix)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("reconciliation failed", err))
		return
	}
	c.JSON(http.StatusOK, dto.ReconcileResponse{AutoFix: autoFix, Findings: findings})
}

// Status handles GET /api/v1/admin/status requests.
//
// Status godoc
// @Summary      Derived-state freshness
// @Description  Returns the newest derived timestamp plus derived row counts
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.RefreshStatusResponse  "Success"
// @Failure      500  {object}  dto.ErrorResponse          "Internal Error"
// @Router       /api/v1/admin/status [get]
func (h *AdminHandler) Status(c *gin.Context) {
	st, err := h.svc.RefreshStatus(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch refresh status", err))
		return
	}

	resp := dto.RefreshStatusResponse{
		TotalClients:  st.TotalClients,
		TotalAccounts: st.TotalAccounts,
	}
	if st.LastUpdated != nil {
		s := st.LastUpdated.UTC().Format("2006-01-02T15:04:05Z07:00")
		resp.LastUpdated = &s
	}
	c.JSON(http.StatusOK, resp)
}

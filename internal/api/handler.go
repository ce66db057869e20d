package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fxlens/clientpulse/internal/domain/dto"
	"github.com/fxlens/clientpulse/internal/domain/models"
	"github.com/fxlens/clientpulse/internal/refresh"
	"github.com/fxlens/clientpulse/internal/service"
	"github.com/fxlens/clientpulse/internal/storage"
)

// Handler provides HTTP handlers for the client-summary endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP parameters
//   - Interact with the service and dispatcher layers
//   - Translate results into response DTOs
//   - Return structured JSON responses with appropriate HTTP status codes
type Handler struct {
	svc        service.ClientService
	dispatcher *refresh.Dispatcher
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.ClientService, dispatcher *refresh.Dispatcher) *Handler {
	return &Handler{svc: svc, dispatcher: dispatcher}
}

// ListClients handles GET /api/v1/clients requests.
//
// ListClients godoc
// @Summary      List client summaries
// @Description  Returns one page of per-client aggregates with optional sorting and search
// @Tags         clients
// @Produce      json
// @Param        page       query     int     false  "Page number (1-based)" example(1)
// @Param        page_size  query     int     false  "Rows per page" example(50)
// @Param        sort_by    query     string  false  "Sort column" example(total_equity_usd)
// @Param        order      query     string  false  "asc or desc" example(desc)
// @Param        search     query     string  false  "Client id, login, or name fragment" example(jane)
// @Success      200        {object}  dto.SummaryPageResponse  "Success"
// @Failure      400        {object}  dto.ErrorResponse        "Bad Request"
// @Failure      500        {object}  dto.ErrorResponse        "Internal Error"
// @Router       /api/v1/clients [get]
func (h *Handler) ListClients(c *gin.Context) {
	q := storage.SummaryQuery{
		SortBy: strings.TrimSpace(c.Query("sort_by")),
		Search: c.Query("search"),
	}

	var err error
	if q.Page, err = intQuery(c, "page", 1); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid page", err))
		return
	}
	if q.PageSize, err = intQuery(c, "page_size", 50); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid page_size", err))
		return
	}

	switch order := strings.ToLower(c.DefaultQuery("order", "asc")); order {
	case "asc":
	case "desc":
		q.SortDesc = true
	default:
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("order must be asc or desc", nil))
		return
	}

	items, total, err := h.svc.SummaryPage(c.Request.Context(), q)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSortField) {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid sort_by", err))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch client summaries", err))
		return
	}

	if items == nil {
		items = []models.ClientSummary{}
	}
	totalPages := 0
	if q.PageSize > 0 {
		totalPages = (total + q.PageSize - 1) / q.PageSize
	}
	c.JSON(http.StatusOK, dto.SummaryPageResponse{
		Items:      items,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalItems: int64(total),
		TotalPages: totalPages,
	})
}

// GetClientAccounts handles GET /api/v1/clients/:id/accounts requests.
//
// GetClientAccounts godoc
// @Summary      Get per-account details for one client
// @Description  Returns the USD-normalized account snapshots backing the client drill-down
// @Tags         clients
// @Produce      json
// @Param        id   path      int  true  "Client id" example(42)
// @Success      200  {object}  dto.ClientAccountsResponse  "Success"
// @Failure      400  {object}  dto.ErrorResponse           "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse           "Not Found"
// @Failure      500  {object}  dto.ErrorResponse           "Internal Error"
// @Router       /api/v1/clients/{id}/accounts [get]
func (h *Handler) GetClientAccounts(c *gin.Context) {
	clientID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || clientID <= 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("client id must be a positive integer", err))
		return
	}

	accounts, err := h.svc.ClientAccounts(c.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse("client not found", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch client accounts", err))
		return
	}

	c.JSON(http.StatusOK, dto.ClientAccountsResponse{ClientID: clientID, Accounts: accounts})
}

// UpsertSourceAccount handles PUT /api/v1/source/:venue/accounts requests.
//
// UpsertSourceAccount godoc
// @Summary      Upsert one source account row
// @Description  Writes a venue feed record and refreshes every affected client in the same transaction
// @Tags         source
// @Accept       json
// @Produce      json
// @Param        venue    path      string                    true  "Venue (live or legacy)" example(live)
// @Param        account  body      dto.SourceAccountRequest  true  "Account record"
// @Success      204      "No Content"
// @Failure      400      {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500      {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/source/{venue}/accounts [put]
func (h *Handler) UpsertSourceAccount(c *gin.Context) {
	venue := models.Venue(c.Param("venue"))
	if !venue.Valid() {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("unknown venue", nil))
		return
	}

	var req dto.SourceAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid account payload", err))
		return
	}

	if err := h.dispatcher.ApplyUpsert(c.Request.Context(), req.ToModel(venue)); err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to apply account upsert", err))
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteSourceAccount handles DELETE /api/v1/source/:venue/accounts/:login requests.
//
// DeleteSourceAccount godoc
// @Summary      Delete one source account row
// @Description  Removes a venue feed record and refreshes the owning client in the same transaction
// @Tags         source
// @Produce      json
// @Param        venue  path      string  true  "Venue (live or legacy)" example(live)
// @Param        login  path      int     true  "Account login" example(100234)
// @Success      204    "No Content"
// @Failure      400    {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404    {object}  dto.ErrorResponse  "Not Found"
// @Failure      500    {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/source/{venue}/accounts/{login} [delete]
func (h *Handler) DeleteSourceAccount(c *gin.Context) {
	venue := models.Venue(c.Param("venue"))
	if !venue.Valid() {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("unknown venue", nil))
		return
	}
	login, err := strconv.ParseInt(c.Param("login"), 10, 64)
	if err != nil || login <= 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("login must be a positive integer", err))
		return
	}

	if err := h.dispatcher.ApplyDelete(c.Request.Context(), venue, login); err != nil {
		if errors.Is(err, refresh.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse("account not found", nil))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to apply account delete", err))
		return
	}
	c.Status(http.StatusNoContent)
}

// intQuery parses an optional positive integer query parameter.
func intQuery(c *gin.Context, name string, def int) (int, error) {
	s := c.Query(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, errors.New(name + " must be a positive integer")
	}
	return v, nil
}

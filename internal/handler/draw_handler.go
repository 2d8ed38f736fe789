package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"secret-draw-api/internal/dto"
	"secret-draw-api/internal/response"
	"secret-draw-api/internal/service"
)

// bindingCookieMaxAge keeps the claim cookie alive well past any event
// horizon. The cookie is the visitor's only credential, so it must outlive
// the draw itself.
const bindingCookieMaxAge = 365 * 24 * 60 * 60

// DrawHandler handles draw HTTP requests
type DrawHandler struct {
	drawService service.DrawService
	logger      *zap.Logger
}

// NewDrawHandler creates a new DrawHandler
func NewDrawHandler(drawService service.DrawService, logger *zap.Logger) *DrawHandler {
	return &DrawHandler{
		drawService: drawService,
		logger:      logger,
	}
}

// CreateDraw handles POST /api/draws
func (h *DrawHandler) CreateDraw(c *gin.Context) {
	var req dto.CreateDrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	resp, err := h.drawService.CreateDraw(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, resp)
}

// GetDraw handles GET /api/draws/:drawId. The caller's claim cookie, when
// present, selects which participant's match is included in the response.
func (h *DrawHandler) GetDraw(c *gin.Context) {
	drawID, err := uuid.Parse(c.Param("drawId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid draw ID")
		return
	}

	resp, err := h.drawService.GetDraw(c.Request.Context(), drawID, h.bindingFromCookie(c, drawID))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, resp)
}

// Redeem handles POST /api/draws/:drawId/redeem. A browser already bound to
// a participant always redeems that participant again, regardless of the
// submitted id; the binding is permanent so nobody can peek at a second
// match from the same browser.
func (h *DrawHandler) Redeem(c *gin.Context) {
	drawID, err := uuid.Parse(c.Param("drawId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid draw ID")
		return
	}

	var req dto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	participantID := req.ParticipantID
	if bound := h.bindingFromCookie(c, drawID); bound != nil {
		participantID = *bound
	}

	resp, err := h.drawService.Redeem(c.Request.Context(), drawID, participantID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	h.setBindingCookie(c, drawID, resp.ParticipantID)
	response.SendSuccess(c, http.StatusOK, resp)
}

func bindingCookieName(drawID uuid.UUID) string {
	return "draw_" + drawID.String()
}

// bindingFromCookie returns the participant this browser claimed earlier,
// or nil if there is no valid claim cookie for the draw.
func (h *DrawHandler) bindingFromCookie(c *gin.Context, drawID uuid.UUID) *uuid.UUID {
	value, err := c.Cookie(bindingCookieName(drawID))
	if err != nil {
		return nil
	}
	participantID, err := uuid.Parse(value)
	if err != nil {
		return nil
	}
	return &participantID
}

func (h *DrawHandler) setBindingCookie(c *gin.Context, drawID, participantID uuid.UUID) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(bindingCookieName(drawID), participantID.String(), bindingCookieMaxAge, "/", "", false, true)
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/smsinvite/invite-service/docs"
	"github.com/smsinvite/invite-service/internal/domain"
	"github.com/smsinvite/invite-service/internal/service"
)

const quotaExceededMessage = "Too much phone numbers, should be less or equal to 128 per day."

type Handler struct {
	dispatcher *service.Dispatcher
	server     *http.Server
}

// InviteRequest is the submit-invite payload.
type InviteRequest struct {
	ApiID   *int     `json:"apiId" example:"4"`
	Phones  []string `json:"phones" example:"79998887766,75554443322"`
	Message string   `json:"message" example:"Hello"`
}

// ApiResult is the response envelope for every endpoint.
type ApiResult struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// @title SMS Invite Publish API
// @version 1.0
// @description Web-service for publishing invite messages to batches of phone numbers
// @host localhost:6060
// @BasePath /
func NewHttpHandler(addr string, dispatcher *service.Dispatcher) *Handler {
	h := &Handler{
		dispatcher: dispatcher,
	}

	// create router
	router := gin.Default()

	// register routes
	router.POST("/api/invite", h.submitInvite)
	router.GET("/api/invites/:id/log", h.getSendLog)
	router.GET("/health", h.health)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// create http server
	h.server = &http.Server{
		Addr:    addr,
		Handler: router.Handler(),
	}

	return h
}

func (h *Handler) Run() error {
	return h.server.ListenAndServe()
}

func (h *Handler) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// SubmitInvite godoc
// @Summary Send an invite message to a batch of phone numbers
// @Description Validates the phones and message, checks the daily quota and dispatches the message to every recipient
// @Tags Invites
// @Accept json
// @Produce json
// @Param invite body InviteRequest true "Invite submission"
// @Success 200 {object} ApiResult{data=[]domain.RecipientResult}
// @Failure 400 {object} ApiResult
// @Failure 401 {object} ApiResult
// @Failure 429 {object} ApiResult
// @Failure 500 {object} ApiResult
// @Router /api/invite [post]
func (h *Handler) submitInvite(c *gin.Context) {
	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ApiResult{Message: "Bad Request"})
		return
	}
	if req.ApiID == nil {
		c.JSON(http.StatusUnauthorized, ApiResult{Message: "Provide ApiId."})
		return
	}

	results, err := h.dispatcher.SubmitInvite(c.Request.Context(), *req.ApiID, req.Phones, req.Message)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ApiResult{Success: true, Data: results})
}

// GetSendLog godoc
// @Summary Get the send log of an invite message
// @Description Lists the recorded delivery attempts for one invite message, newest first
// @Tags Invites
// @Produce json
// @Param id path int true "Invite message id"
// @Success 200 {object} ApiResult{data=[]domain.SendLogEntry}
// @Failure 400 {object} ApiResult
// @Failure 500 {object} ApiResult
// @Router /api/invites/{id}/log [get]
func (h *Handler) getSendLog(c *gin.Context) {
	messageID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ApiResult{Message: "Bad Request"})
		return
	}

	entries, err := h.dispatcher.GetSendLog(c.Request.Context(), messageID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ApiResult{Success: true, Data: entries})
}

func (h *Handler) health(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	var quotaErr *domain.QuotaExceededError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ApiResult{Message: validationErr.Reason})
	case errors.As(err, &quotaErr):
		c.JSON(http.StatusTooManyRequests, ApiResult{
			Data:    gin.H{"currentUsage": quotaErr.CurrentUsage, "limit": quotaErr.Limit},
			Message: quotaExceededMessage,
		})
	default:
		c.JSON(http.StatusInternalServerError, ApiResult{Message: "Request failed."})
	}
}

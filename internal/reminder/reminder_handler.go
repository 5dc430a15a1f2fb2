package reminder

import (
	"net/http"
	"strconv"
	"time"

	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("reminder.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("reminder.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("reminder request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) List(c *gin.Context) {
	windowDays, err := strconv.Atoi(c.DefaultQuery("window_days", strconv.Itoa(DefaultWindowDays)))
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("window_days"))
		return
	}

	resp, err := h.service.ListNeedingReminder(c.Request.Context(), time.Now().UTC(), windowDays)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Send(c *gin.Context) {
	windowDays, err := strconv.Atoi(c.DefaultQuery("window_days", strconv.Itoa(DefaultWindowDays)))
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("window_days"))
		return
	}

	sent, err := h.service.SendReminders(c.Request.Context(), time.Now().UTC(), windowDays)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, SendRemindersResponse{Sent: sent}, nil)
}

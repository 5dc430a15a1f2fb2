package calendar

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
	l := zap.L().Named("calendar.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calendar.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("calendar request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Month defaults to the current month when year/month are absent.
func (h *Handler) Month(c *gin.Context) {
	viewerID := c.GetString("employee_id")
	now := time.Now().UTC()

	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("year"))
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("month"))
		return
	}
	department := c.Query("department")

	events, err := h.service.EventsForMonth(c.Request.Context(), viewerID, year, month, department)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			h.writeServiceError(c, apperror.InvalidField("date"))
			return
		}
		events = EventsForDate(events, date)
	}

	response.Success(c, http.StatusOK, mapToResponse(events), nil)
}

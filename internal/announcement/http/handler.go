package http

import (
	"errors"
	"net/http"

	"github.com/classpage/announcements-backend/internal/announcement"
	"github.com/classpage/announcements-backend/internal/pkg/apperror"
	"github.com/classpage/announcements-backend/internal/pkg/request"
	"github.com/classpage/announcements-backend/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	service announcement.Service
}

func NewHandler(service announcement.Service) *Handler {
	return &Handler{service: service}
}

// GetActive lists announcements whose window includes today. Public: no
// identity check, and the endpoint never fails outward — the service
// degrades to an empty list on internal errors.
func (h *Handler) GetActive(c *gin.Context) {
	active := h.service.ListActive(c.Request.Context())

	items := make([]Response, len(active))
	for i, a := range active {
		items[i] = NewResponse(a)
	}

	c.JSON(http.StatusOK, items)
}

// ListAll lists every announcement, newest first, for the management surface.
func (h *Handler) ListAll(c *gin.Context) {
	var actor request.ActorQuery
	if err := c.ShouldBindQuery(&actor); err != nil {
		response.Error(c, apperror.InvalidArgument("username is required"))
		return
	}

	list, err := h.service.ListAll(c.Request.Context(), actor.Username)
	if err != nil {
		response.Error(c, serviceError(err, "failed to fetch announcements"))
		return
	}

	items := make([]Response, len(list))
	for i, a := range list {
		items[i] = NewResponse(a)
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.InvalidArgument("invalid request body"))
		return
	}

	req := announcement.CreateRequest{
		Message:        body.Message,
		StartDate:      body.StartDate,
		ExpirationDate: body.ExpirationDate,
		CreatedBy:      body.CreatedBy,
	}

	a, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, serviceError(err, "failed to create announcement"))
		return
	}

	c.JSON(http.StatusCreated, NewResponse(a))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.InvalidArgument("invalid announcement ID"))
		return
	}

	var actor request.ActorQuery
	if err := c.ShouldBindQuery(&actor); err != nil {
		response.Error(c, apperror.InvalidArgument("username is required"))
		return
	}

	var body UpdateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.InvalidArgument("invalid request body"))
		return
	}

	req := announcement.UpdateRequest{
		Message:        body.Message,
		StartDate:      body.StartDate,
		ExpirationDate: body.ExpirationDate,
	}

	a, err := h.service.Update(c.Request.Context(), uri.ID, actor.Username, req)
	if err != nil {
		response.Error(c, serviceError(err, "failed to update announcement"))
		return
	}

	c.JSON(http.StatusOK, NewResponse(a))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.InvalidArgument("invalid announcement ID"))
		return
	}

	var actor request.ActorQuery
	if err := c.ShouldBindQuery(&actor); err != nil {
		response.Error(c, apperror.InvalidArgument("username is required"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID, actor.Username); err != nil {
		response.Error(c, serviceError(err, "failed to delete announcement"))
		return
	}

	c.JSON(http.StatusOK, DeleteResponse{Message: "announcement deleted successfully"})
}

// serviceError translates announcement service errors into the boundary
// taxonomy. Anything unrecognized becomes a 500 with a generic message; the
// cause stays server-side.
func serviceError(err error, internalMsg string) *apperror.AppError {
	switch {
	case errors.Is(err, announcement.ErrUnauthorized):
		return apperror.Unauthorized("unauthorized")
	case errors.Is(err, announcement.ErrInvalidID),
		errors.Is(err, announcement.ErrInvalidDateFormat),
		errors.Is(err, announcement.ErrStartAfterExpiration),
		errors.Is(err, announcement.ErrMessageLength):
		return apperror.InvalidArgument(err.Error())
	case errors.Is(err, announcement.ErrNotFound):
		return apperror.NotFound(err.Error())
	default:
		return apperror.Internal(err, internalMsg)
	}
}

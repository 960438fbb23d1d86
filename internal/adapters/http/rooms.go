package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/chatrooms/internal/app/orch"
	"github.com/dkeye/chatrooms/internal/domain"
)

const (
	codeRoomConflict     = "room.conflict"
	codeRoomNotFound     = "room.not-found"
	codeParamsValidation = "req-params.validation"
	codeBodyValidation   = "req-body.validation"
	codeInternal         = "internal"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type createRoomRequest struct {
	RoomID          string `json:"roomId" binding:"required,max=64"`
	CreatorUsername string `json:"creatorUsername" binding:"required,max=36"`
}

type roomsAPI struct {
	orch *orch.Orchestrator
}

func abortWith(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Code: code, Message: message})
}

func forbidden(c *gin.Context) {
	abortWith(c, http.StatusForbidden, orch.CodeAccessForbidden, "The access is forbidden")
}

// POST /api/v1/rooms
func (a *roomsAPI) createRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWith(c, http.StatusBadRequest, codeBodyValidation, err.Error())
		return
	}
	log.Info().Str("module", "adapters.http").Str("room", req.RoomID).Str("creator", req.CreatorUsername).Msg("creating chat room")

	err := a.orch.CreateRoom(domain.RoomID(req.RoomID), req.CreatorUsername)
	switch {
	case err == nil:
		c.Status(http.StatusCreated)
	case errors.Is(err, domain.ErrRoomConflict):
		abortWith(c, http.StatusConflict, codeRoomConflict, err.Error())
	case errors.Is(err, domain.ErrRoomIDTooLong), errors.Is(err, domain.ErrRoomIDEmpty),
		errors.Is(err, domain.ErrUsernameEmpty), errors.Is(err, domain.ErrUsernameTooLong):
		abortWith(c, http.StatusBadRequest, codeBodyValidation, err.Error())
	default:
		log.Error().Err(err).Str("module", "adapters.http").Msg("failed to initiate room")
		abortWith(c, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

// GET /api/v1/rooms
func (a *roomsAPI) listRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": a.orch.ListRooms()})
}

// GET /api/v1/rooms/:roomId
func (a *roomsAPI) getRoom(c *gin.Context) {
	info, err := a.orch.Room(domain.RoomID(c.Param("roomId")))
	if err != nil {
		forbidden(c)
		return
	}
	c.JSON(http.StatusOK, info)
}

// GET /api/v1/rooms/:roomId/participants
func (a *roomsAPI) getParticipants(c *gin.Context) {
	snap, err := a.orch.Participants(domain.RoomID(c.Param("roomId")))
	if err != nil {
		forbidden(c)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// GET /api/v1/rooms/:roomId/messages?fromIndex=&toIndex=
func (a *roomsAPI) getMessages(c *gin.Context) {
	roomID := domain.RoomID(c.Param("roomId"))
	from, errFrom := strconv.Atoi(c.Query("fromIndex"))
	to, errTo := strconv.Atoi(c.Query("toIndex"))
	if errFrom != nil || errTo != nil {
		abortWith(c, http.StatusBadRequest, codeParamsValidation, "Invalid parameters, 'fromIndex' and 'toIndex' must be integers")
		return
	}
	log.Info().Str("module", "adapters.http").Str("room", string(roomID)).Int("from", from).Int("to", to).Msg("retrieving room messages")

	msgs, err := a.orch.Messages(roomID, from, to)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, msgs)
	case errors.Is(err, domain.ErrInvalidRange):
		abortWith(c, http.StatusBadRequest, codeParamsValidation, err.Error())
	default:
		log.Error().Err(err).Str("module", "adapters.http").Msg("failed to get room messages")
		forbidden(c)
	}
}

// DELETE /api/v1/rooms/:roomId
func (a *roomsAPI) closeRoom(c *gin.Context) {
	roomID := domain.RoomID(c.Param("roomId"))
	log.Info().Str("module", "adapters.http").Str("room", string(roomID)).Msg("deleting room")

	err := a.orch.CloseRoom(roomID)
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, domain.ErrRoomNotFound):
		abortWith(c, http.StatusNotFound, codeRoomNotFound, err.Error())
	default:
		log.Error().Err(err).Str("module", "adapters.http").Msg("failed to close room")
		abortWith(c, http.StatusInternalServerError, codeInternal, "internal error")
	}
}

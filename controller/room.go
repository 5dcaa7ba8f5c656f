package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-splendor/dto"
	"go-splendor/game"
	"go-splendor/service"
	"go-splendor/ws"
)

type RoomController struct {
	rooms *service.RoomService
}

func NewRoomController(rooms *service.RoomService) *RoomController {
	return &RoomController{rooms: rooms}
}

// statusOf 业务错误对应的 HTTP 状态码
func statusOf(err error) int {
	switch {
	case errors.Is(err, ws.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, ws.ErrRoomExists):
		return http.StatusConflict
	case errors.Is(err, ws.ErrBadRequest), errors.Is(err, game.ErrActionInvalid):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrHistoryDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	status := statusOf(err)
	c.JSON(status, gin.H{
		"status_code": status,
		"msg":         err.Error(),
	})
}

func (rc *RoomController) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status_code": http.StatusBadRequest, "msg": "缺少必要字段"})
		return
	}

	roomID, err := rc.rooms.CreateRoom(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "房间创建成功",
		"data":        dto.CreateRoomResponse{RoomID: roomID},
	})
}

func (rc *RoomController) DeleteRoom(c *gin.Context) {
	if err := rc.rooms.DeleteRoom(c.Request.Context(), c.Param("roomID")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "房间删除成功",
	})
}

func (rc *RoomController) GetRoomList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "获取成功",
		"data":        dto.GetRoomList{Rooms: rc.rooms.GetRoomList()},
	})
}

// GetRoomInfo 房间摘要、可见状态和每个玩家最近的动作；房间已被清理时返回缓存
func (rc *RoomController) GetRoomInfo(c *gin.Context) {
	ctx := c.Request.Context()
	roomID := c.Param("roomID")
	state, err := rc.rooms.GetRoomState(ctx, roomID)
	if err != nil {
		fail(c, err)
		return
	}
	data := gin.H{"state": state}
	if info, err := rc.rooms.GetRoomInfo(ctx, roomID); err == nil {
		data["room"] = info
	}
	actions, err := rc.rooms.GetLastActions(ctx, roomID)
	if err != nil {
		fail(c, err)
		return
	}
	data["last_actions"] = actions
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "获取成功",
		"data":        data,
	})
}

package ws

import (
	"errors"

	"go-splendor/game"
)

var (
	ErrRoomExists     = errors.New("房间已存在")
	ErrRoomNotFound   = errors.New("房间不存在")
	ErrForbidden      = errors.New("没有权限")
	ErrBadRequest     = errors.New("请求格式错误")
	ErrUnknownCommand = errors.New("未知命令")
)

// errorKind 返回给客户端的错误种类
func errorKind(err error) string {
	if kind := game.KindOf(err); kind != "" {
		return string(kind)
	}
	switch {
	case errors.Is(err, ErrRoomExists):
		return "RoomExists"
	case errors.Is(err, ErrRoomNotFound):
		return "RoomNotFound"
	case errors.Is(err, ErrForbidden):
		return "Forbidden"
	case errors.Is(err, ErrBadRequest):
		return "BadRequest"
	case errors.Is(err, ErrUnknownCommand):
		return "UnknownCommand"
	default:
		return "Internal"
	}
}

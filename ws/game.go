package ws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-splendor/dto"
)

// HandleWebSocket WebSocket 主入口（处理每个连接）
func (h *Hub) HandleWebSocket(c *gin.Context) {
	conn, err := upgradeConnection(c)
	if err != nil {
		h.logger.Warn("WebSocket 升级失败", zap.Error(err))
		return
	}
	defer conn.Close()

	cl := newClient(conn)
	defer h.cleanupOnDisconnect(cl)
	h.listen(c.Request.Context(), conn, cl)
}

// listen 持续读取客户端消息并分发
func (h *Hub) listen(ctx context.Context, conn ReadWriteConn, cl *client) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			h.logger.Debug("读取消息失败", zap.String("room", cl.roomID), zap.String("player", cl.username), zap.Error(err))
			return
		}
		h.dispatch(ctx, cl, raw)
	}
}

// dispatch 处理一条消息，出错时只回复给发送者
func (h *Hub) dispatch(ctx context.Context, cl *client, raw []byte) {
	var msg dto.ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		h.reply(cl, msg, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	handler, ok := messageHandlers[msg.Command]
	if !ok {
		h.reply(cl, msg, fmt.Errorf("%w: %q", ErrUnknownCommand, msg.Command))
		return
	}
	if err := handler(h, ctx, cl, msg); err != nil {
		h.reply(cl, msg, err)
	}
}

func (h *Hub) reply(cl *client, msg dto.ClientMessage, err error) {
	kind := errorKind(err)
	if kind == "Internal" {
		h.logger.Error("处理消息失败", zap.String("room", msg.RoomName), zap.String("command", msg.Command), zap.Error(err))
	} else {
		h.logger.Debug("拒绝请求", zap.String("room", msg.RoomName), zap.String("command", msg.Command), zap.String("kind", kind))
	}
	if werr := cl.send(dto.ErrorMessage{Type: dto.MessageTypeError, Kind: kind, Message: err.Error()}); werr != nil {
		h.logger.Debug("回复错误失败", zap.Error(werr))
	}
}

// 玩家断开连接后，从房间中移除该连接；玩家本身仍留在游戏里
func (h *Hub) cleanupOnDisconnect(cl *client) {
	if !cl.bound() {
		return
	}
	room, err := h.Room(cl.roomID)
	if err != nil {
		return
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	room.removeClient(cl)
	h.logger.Info("玩家离开房间", zap.String("room", room.ID), zap.String("player", cl.username))
	h.broadcastInfo(room, fmt.Sprintf("%s 断开了连接", cl.username))
}

package ws

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"go-splendor/dto"
	"go-splendor/game"
	"go-splendor/utils"
)

// 消息处理函数类型
type messageHandler func(h *Hub, ctx context.Context, c *client, msg dto.ClientMessage) error

// 消息处理函数映射
var messageHandlers = map[string]messageHandler{
	dto.CommandCreateRoom:  handleCreateRoom,
	dto.CommandJoinRoom:    handleJoinRoom,
	dto.CommandBeginGame:   handleBeginGame,
	dto.CommandViewRoom:    handleViewRoom,
	dto.CommandGetGlossary: handleGetGlossary,
	dto.CommandAction:      handleAction,
}

func handleCreateRoom(h *Hub, ctx context.Context, c *client, msg dto.ClientMessage) error {
	if c.bound() {
		return fmt.Errorf("%w: 连接已经在房间 %s 中", ErrForbidden, c.roomID)
	}
	if msg.Username == "" {
		return fmt.Errorf("%w: 缺少 username", ErrBadRequest)
	}
	roomID := msg.RoomName
	if roomID == "" {
		roomID = utils.NewRoomID()
	}

	room, err := h.CreateRoom(ctx, roomID, msg.Username)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	room.bind(c, msg.Username)
	h.broadcastInfo(room, fmt.Sprintf("%s 创建并加入了房间 %s", msg.Username, room.ID))
	h.syncRoom(ctx, room)
	return nil
}

func handleJoinRoom(h *Hub, ctx context.Context, c *client, msg dto.ClientMessage) error {
	if c.bound() {
		return fmt.Errorf("%w: 连接已经在房间 %s 中", ErrForbidden, c.roomID)
	}
	if msg.Username == "" {
		return fmt.Errorf("%w: 缺少 username", ErrBadRequest)
	}
	room, err := h.Room(msg.RoomName)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	// HTTP 创建房间时房主已经入座但还没有连接，第一次 join 认领该座位
	seated := room.game.HasPlayer(msg.Username) && !room.claimed[msg.Username]
	if !seated {
		if _, err := room.game.AddPlayer(msg.Username); err != nil {
			return err
		}
	}
	room.bind(c, msg.Username)
	h.broadcastInfo(room, fmt.Sprintf("%s 加入了房间 %s", msg.Username, room.ID))
	h.syncRoom(ctx, room)
	return nil
}

func handleBeginGame(h *Hub, ctx context.Context, c *client, msg dto.ClientMessage) error {
	room, err := h.memberRoom(c, msg)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	if _, err := room.game.Begin(h.source, h.source); err != nil {
		return err
	}
	h.logger.Info("游戏开始", zap.String("room", room.ID), zap.Strings("players", room.game.Players()))
	h.broadcastInfo(room, fmt.Sprintf("房间 %s 的游戏开始了", room.ID))
	h.syncRoom(ctx, room)
	return nil
}

func handleViewRoom(h *Hub, ctx context.Context, c *client, msg dto.ClientMessage) error {
	room, err := h.Room(msg.RoomName)
	if err != nil {
		return err
	}
	room.mu.Lock()
	state := h.visibleState(room)
	room.mu.Unlock()
	return c.send(dto.SyncMessage{Type: dto.MessageTypeSync, Room: room.ID, State: state})
}

func handleGetGlossary(h *Hub, ctx context.Context, c *client, msg dto.ClientMessage) error {
	glossary, err := h.Glossary(msg.RoomName)
	if err != nil {
		return err
	}
	return c.send(glossary)
}

func handleAction(h *Hub, ctx context.Context, c *client, msg dto.ClientMessage) error {
	room, err := h.memberRoom(c, msg)
	if err != nil {
		return err
	}
	action, err := game.ParseAction(msg.Action, msg.ActionArgs)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	outcome, err := room.game.Perform(c.username, action)
	if err != nil {
		return err
	}
	h.logger.Debug("动作完成",
		zap.String("room", room.ID),
		zap.String("player", c.username),
		zap.String("command", string(outcome.Action)),
		zap.Int("turn", outcome.Turn),
	)

	if h.store != nil {
		if err := h.store.SetLastData(ctx, room.ID, c.username, string(outcome.Action), msg.ActionArgs); err != nil {
			h.logger.Warn("保存最近动作失败", zap.String("room", room.ID), zap.Error(err))
		}
	}

	h.broadcastInfo(room, fmt.Sprintf("%s 执行了 %s", c.username, outcome.Action))
	if outcome.Collection != nil {
		h.broadcastInfo(room, fmt.Sprintf("%s 获得了贵族 %d", c.username, *outcome.Collection))
	}
	h.syncRoom(ctx, room)
	if outcome.Phase == game.PhaseWon {
		h.finishGame(ctx, room)
	}
	return nil
}

// memberRoom 连接必须已经绑定到消息里的房间，并且只能以绑定的名字行动
func (h *Hub) memberRoom(c *client, msg dto.ClientMessage) (*Room, error) {
	roomID := msg.RoomName
	if roomID == "" {
		roomID = c.roomID
	}
	room, err := h.Room(roomID)
	if err != nil {
		return nil, err
	}
	if c.roomID != room.ID {
		return nil, fmt.Errorf("%w: 请先加入房间 %s", ErrForbidden, room.ID)
	}
	if msg.Username != "" && msg.Username != c.username {
		return nil, fmt.Errorf("%w: 该连接只能以 %s 的身份行动", ErrForbidden, c.username)
	}
	return room, nil
}

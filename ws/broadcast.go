package ws

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"go-splendor/dto"
	"go-splendor/entities"
	"go-splendor/game"
)

// broadcastToRoom 广播消息给房间内所有连接，写失败的连接被移除。调用方持有 room.mu
func (h *Hub) broadcastToRoom(room *Room, v any) {
	message, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("序列化广播消息失败", zap.String("room", room.ID), zap.Error(err))
		return
	}

	kept := room.clients[:0]
	for _, c := range room.clients {
		if err := c.write(message); err != nil {
			if c.virtual {
				// NATS 暂时不可用时保留观察者
				h.logger.Warn("转发房间广播失败", zap.String("room", room.ID), zap.Error(err))
				kept = append(kept, c)
				continue
			}
			h.logger.Info("广播失败，移除连接", zap.String("room", room.ID), zap.String("player", c.username), zap.Error(err))
			_ = c.conn.Close()
			continue
		}
		kept = append(kept, c)
	}
	room.clients = kept
}

func (h *Hub) broadcastInfo(room *Room, message string) {
	h.broadcastToRoom(room, dto.InfoMessage{Type: dto.MessageTypeInfo, Message: message})
}

// visibleState 内部不一致只记日志，状态照常下发。调用方持有 room.mu
func (h *Hub) visibleState(room *Room) game.VisibleState {
	state, err := room.game.VisibleState()
	if err != nil {
		h.logger.Error("房间状态不一致", zap.String("room", room.ID), zap.Error(err))
	}
	return state
}

// syncRoom 广播可见状态并写入 redis 镜像。调用方持有 room.mu
func (h *Hub) syncRoom(ctx context.Context, room *Room) {
	state := h.visibleState(room)
	h.broadcastToRoom(room, dto.SyncMessage{Type: dto.MessageTypeSync, Room: room.ID, State: state})

	if h.store != nil {
		if err := h.store.SetState(ctx, room.ID, state); err != nil {
			h.logger.Warn("缓存房间状态失败", zap.String("room", room.ID), zap.Error(err))
		}
	}
	h.persistRoomInfo(ctx, room)
}

// finishGame 游戏结束：广播胜者，写入历史并发布结果。调用方持有 room.mu
func (h *Hub) finishGame(ctx context.Context, room *Room) {
	winner := room.game.Winner()
	h.broadcastToRoom(room, dto.GameOverMessage{Type: dto.MessageTypeGameOver, Room: room.ID, Winner: winner})

	result := entities.MatchResult{
		RoomID:     room.ID,
		Winner:     winner,
		Turns:      room.game.Turn(),
		Players:    room.game.Players(),
		FinishedAt: time.Now().UTC(),
	}
	if h.history != nil {
		if err := h.history.RecordResult(ctx, result); err != nil {
			h.logger.Warn("写入对局记录失败", zap.String("room", room.ID), zap.Error(err))
		}
	}
	if h.events != nil {
		if err := h.events.PublishResult(result); err != nil {
			h.logger.Warn("发布对局结果失败", zap.String("room", room.ID), zap.Error(err))
		}
	}
	h.logger.Info("游戏结束", zap.String("room", room.ID), zap.String("player", winner), zap.Int("turn", result.Turns))
}

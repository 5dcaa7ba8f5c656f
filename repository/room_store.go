package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/go-redis/redis/v8"

	"go-splendor/entities"
)

var ErrRoomNotFound = errors.New("房间不存在")

// LastAction 玩家最近一次成功的动作
type LastAction struct {
	Action   string          `json:"action"` // take_different / take_same / reserve / purchase
	PlayerID string          `json:"playerID"`
	Payload  json.RawMessage `json:"payload"` // 原始 JSON 数据，延迟反序列化
}

// RoomStore 房间的 redis 镜像。内存里的 Hub 才是权威数据，这里只给 HTTP 和重启后排查用
type RoomStore struct {
	rdb *redis.Client
}

func NewRoomStore(rdb *redis.Client) *RoomStore {
	return &RoomStore{rdb: rdb}
}

func roomInfoKey(roomID string) string { return fmt.Sprintf("room:%s:roomInfo", roomID) }
func lastDataKey(roomID string) string { return fmt.Sprintf("room:%s:last_data", roomID) }
func stateKey(roomID string) string    { return fmt.Sprintf("room:%s:state", roomID) }

func (s *RoomStore) SetRoomInfo(ctx context.Context, info entities.RoomInfo) error {
	players, err := json.Marshal(info.Players)
	if err != nil {
		return fmt.Errorf("序列化玩家列表失败: %w", err)
	}
	err = s.rdb.HSet(ctx, roomInfoKey(info.RoomID), map[string]interface{}{
		"roomID":     info.RoomID,
		"gameStatus": string(info.GameStatus),
		"players":    players,
		"userID":     info.UserID,
		"turn":       info.Turn,
		"winner":     info.Winner,
	}).Err()
	if err != nil {
		return fmt.Errorf("写入房间[%s]信息失败: %w", info.RoomID, err)
	}
	return nil
}

func (s *RoomStore) GetRoomInfo(ctx context.Context, roomID string) (entities.RoomInfo, error) {
	fields, err := s.rdb.HGetAll(ctx, roomInfoKey(roomID)).Result()
	if err != nil {
		return entities.RoomInfo{}, fmt.Errorf("获取房间信息失败: %w", err)
	}
	if len(fields) == 0 {
		return entities.RoomInfo{}, ErrRoomNotFound
	}

	info := entities.RoomInfo{
		RoomID:     fields["roomID"],
		GameStatus: entities.RoomStatus(fields["gameStatus"]),
		UserID:     fields["userID"],
		Winner:     fields["winner"],
	}
	if info.Turn, err = strconv.Atoi(fields["turn"]); err != nil {
		return entities.RoomInfo{}, fmt.Errorf("房间[%s] turn 字段非法: %w", roomID, err)
	}
	if raw := fields["players"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &info.Players); err != nil {
			return entities.RoomInfo{}, fmt.Errorf("房间[%s] players 字段非法: %w", roomID, err)
		}
	}
	return info, nil
}

// SetLastData 保存玩家最近一次的动作
func (s *RoomStore) SetLastData(ctx context.Context, roomID, playerID, action string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化 Payload 失败: %w", err)
	}
	bytes, err := json.Marshal(LastAction{Action: action, PlayerID: playerID, Payload: raw})
	if err != nil {
		return fmt.Errorf("序列化 LastAction 失败: %w", err)
	}

	field := fmt.Sprintf("player:%s", playerID)
	return s.rdb.HSet(ctx, lastDataKey(roomID), field, bytes).Err()
}

// GetLastActions 房间里每个玩家最近一次的动作，按玩家 ID 排序
func (s *RoomStore) GetLastActions(ctx context.Context, roomID string) ([]LastAction, error) {
	fields, err := s.rdb.HGetAll(ctx, lastDataKey(roomID)).Result()
	if err != nil {
		return nil, fmt.Errorf("获取最近动作失败: %w", err)
	}

	actions := make([]LastAction, 0, len(fields))
	for field, val := range fields {
		var action LastAction
		if err := json.Unmarshal([]byte(val), &action); err != nil {
			return nil, fmt.Errorf("反序列化 LastAction[%s] 失败: %w", field, err)
		}
		actions = append(actions, action)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i].PlayerID < actions[j].PlayerID })
	return actions, nil
}

// SetState 缓存最近一次广播的可见状态
func (s *RoomStore) SetState(ctx context.Context, roomID string, state interface{}) error {
	bytes, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("序列化房间状态失败: %w", err)
	}
	return s.rdb.Set(ctx, stateKey(roomID), bytes, 0).Err()
}

func (s *RoomStore) GetState(ctx context.Context, roomID string) (json.RawMessage, error) {
	val, err := s.rdb.Get(ctx, stateKey(roomID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("获取房间状态失败: %w", err)
	}
	return val, nil
}

// DeleteRoom 用 SCAN 查找所有以 room:{roomID}: 开头的 key 并删除
func (s *RoomStore) DeleteRoom(ctx context.Context, roomID string) error {
	prefix := fmt.Sprintf("room:%s:", roomID)
	var cursor uint64
	var keysToDelete []string

	for {
		keys, cur, err := s.rdb.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("扫描房间相关 key 失败: %w", err)
		}
		keysToDelete = append(keysToDelete, keys...)
		cursor = cur
		if cursor == 0 {
			break
		}
	}

	if len(keysToDelete) == 0 {
		return ErrRoomNotFound
	}
	if _, err := s.rdb.Del(ctx, keysToDelete...).Result(); err != nil {
		return fmt.Errorf("删除房间相关 key 失败: %w", err)
	}
	return nil
}

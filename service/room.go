package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-splendor/dto"
	"go-splendor/entities"
	"go-splendor/repository"
	"go-splendor/utils"
	"go-splendor/ws"
)

// RoomCache redis 里的房间镜像，房间被清理后仍可查询
type RoomCache interface {
	GetRoomInfo(ctx context.Context, roomID string) (entities.RoomInfo, error)
	GetState(ctx context.Context, roomID string) (json.RawMessage, error)
	GetLastActions(ctx context.Context, roomID string) ([]repository.LastAction, error)
}

type HistoryReader interface {
	ListResults(ctx context.Context, limit int) ([]entities.MatchResult, error)
}

// RoomService HTTP 接口背后的房间操作
type RoomService struct {
	hub     *ws.Hub
	cache   RoomCache
	history HistoryReader
}

func NewRoomService(hub *ws.Hub, cache RoomCache, history HistoryReader) *RoomService {
	return &RoomService{hub: hub, cache: cache, history: history}
}

func (s *RoomService) CreateRoom(ctx context.Context, params dto.CreateRoomRequest) (string, error) {
	roomID := params.RoomID
	if roomID == "" {
		roomID = utils.NewRoomID()
	}
	if _, err := s.hub.CreateRoom(ctx, roomID, params.UserID); err != nil {
		return "", fmt.Errorf("创建房间失败: %w", err)
	}
	return roomID, nil
}

func (s *RoomService) DeleteRoom(ctx context.Context, roomID string) error {
	return s.hub.DeleteRoom(ctx, roomID)
}

func (s *RoomService) GetRoomList() []dto.RoomInfo {
	return s.hub.Rooms()
}

// GetRoomInfo 内存中没有该房间时退回 redis 缓存，缓存里没有在线信息
func (s *RoomService) GetRoomInfo(ctx context.Context, roomID string) (dto.RoomInfo, error) {
	info, err := s.hub.Summary(roomID)
	if err == nil {
		return info, nil
	}
	if !errors.Is(err, ws.ErrRoomNotFound) || s.cache == nil {
		return dto.RoomInfo{}, err
	}
	cached, cerr := s.cache.GetRoomInfo(ctx, roomID)
	if errors.Is(cerr, repository.ErrRoomNotFound) {
		return dto.RoomInfo{}, err
	}
	if cerr != nil {
		return dto.RoomInfo{}, cerr
	}
	return dto.RoomInfo{
		RoomID:  cached.RoomID,
		UserID:  cached.UserID,
		Status:  cached.GameStatus,
		Players: cached.Players,
		Turn:    cached.Turn,
		Winner:  cached.Winner,
	}, nil
}

// GetLastActions 每个玩家最近一次的动作，没有 redis 时为空
func (s *RoomService) GetLastActions(ctx context.Context, roomID string) ([]repository.LastAction, error) {
	if s.cache == nil {
		return []repository.LastAction{}, nil
	}
	return s.cache.GetLastActions(ctx, roomID)
}

// GetRoomState 内存中没有该房间时退回 redis 缓存
func (s *RoomService) GetRoomState(ctx context.Context, roomID string) (any, error) {
	state, err := s.hub.State(roomID)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, ws.ErrRoomNotFound) || s.cache == nil {
		return nil, err
	}
	cached, cerr := s.cache.GetState(ctx, roomID)
	if errors.Is(cerr, repository.ErrRoomNotFound) {
		return nil, err
	}
	if cerr != nil {
		return nil, cerr
	}
	return cached, nil
}

func (s *RoomService) GetGlossary(roomID string) (dto.GlossaryMessage, error) {
	return s.hub.Glossary(roomID)
}

// ErrHistoryDisabled 没有配置 HISTORY_DSN
var ErrHistoryDisabled = errors.New("对局记录未开启")

func (s *RoomService) GetHistory(ctx context.Context, limit int) ([]entities.MatchResult, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.ListResults(ctx, limit)
}

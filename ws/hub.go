package ws

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"go-splendor/dto"
	"go-splendor/entities"
	"go-splendor/game"
	"go-splendor/repository"
)

// CatalogSource 开局时加载卡牌和贵族
type CatalogSource interface {
	game.CardSource
	game.CollectionSource
}

// RoomStore 房间信息的外部镜像（redis）
type RoomStore interface {
	SetRoomInfo(ctx context.Context, info entities.RoomInfo) error
	SetLastData(ctx context.Context, roomID, playerID, action string, payload interface{}) error
	SetState(ctx context.Context, roomID string, state interface{}) error
	DeleteRoom(ctx context.Context, roomID string) error
}

type ResultRecorder interface {
	RecordResult(ctx context.Context, result entities.MatchResult) error
}

type ResultPublisher interface {
	StatePublisher
	PublishResult(result entities.MatchResult) error
}

// Options 可选的外部依赖，为 nil 时对应功能关闭
type Options struct {
	Store     RoomStore
	History   ResultRecorder
	Publisher ResultPublisher
	Logger    *zap.Logger
}

// Hub 房间注册表，main 中创建后注入到 HTTP 和 WebSocket 处理函数
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	rules   game.Ruleset
	source  CatalogSource
	store   RoomStore
	history ResultRecorder
	events  ResultPublisher
	logger  *zap.Logger
}

// Room 一个房间：游戏本体加上房间里的连接，都由 mu 保护
type Room struct {
	ID        string
	Creator   string
	CreatedAt time.Time

	mu      sync.Mutex
	game    *game.Game
	clients []*client
	claimed map[string]bool // 已经有连接绑定过的座位，断线后不能再被认领
}

func NewHub(rules game.Ruleset, source CatalogSource, opts Options) *Hub {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		rooms:   make(map[string]*Room),
		rules:   rules,
		source:  source,
		store:   opts.Store,
		history: opts.History,
		events:  opts.Publisher,
		logger:  logger,
	}
}

// CreateRoom 新建房间；creator 不为空时房主直接加入
func (h *Hub) CreateRoom(ctx context.Context, roomID, creator string) (*Room, error) {
	if roomID == "" {
		return nil, fmt.Errorf("%w: 缺少房间名", ErrBadRequest)
	}
	g := game.New(h.rules)
	if creator != "" {
		if _, err := g.AddPlayer(creator); err != nil {
			return nil, err
		}
	}
	room := &Room{ID: roomID, Creator: creator, CreatedAt: time.Now(), game: g, claimed: make(map[string]bool)}
	if h.events != nil {
		room.clients = append(room.clients, &client{
			conn:    &VirtualConn{RoomID: roomID, Publisher: h.events},
			virtual: true,
		})
	}

	h.mu.Lock()
	if _, ok := h.rooms[roomID]; ok {
		h.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrRoomExists, roomID)
	}
	h.rooms[roomID] = room
	h.mu.Unlock()

	room.mu.Lock()
	h.persistRoomInfo(ctx, room)
	room.mu.Unlock()

	h.logger.Info("房间已创建", zap.String("room", roomID), zap.String("player", creator))
	return room, nil
}

func (h *Hub) Room(roomID string) (*Room, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	room, ok := h.rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}
	return room, nil
}

// DeleteRoom 从注册表移除房间，断开房间内的连接并清理 redis
func (h *Hub) DeleteRoom(ctx context.Context, roomID string) error {
	h.mu.Lock()
	room, ok := h.rooms[roomID]
	delete(h.rooms, roomID)
	h.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}

	room.mu.Lock()
	for _, c := range room.clients {
		if c.virtual {
			continue
		}
		_ = c.send(dto.InfoMessage{Type: dto.MessageTypeInfo, Message: fmt.Sprintf("房间 %s 已解散", roomID)})
		_ = c.conn.Close()
	}
	room.clients = nil
	room.mu.Unlock()

	if h.store != nil {
		if err := h.store.DeleteRoom(ctx, roomID); err != nil && !errors.Is(err, repository.ErrRoomNotFound) {
			return err
		}
	}
	h.logger.Info("房间已删除", zap.String("room", roomID))
	return nil
}

// Rooms 所有房间的摘要，按创建时间排序
func (h *Hub) Rooms() []dto.RoomInfo {
	h.mu.RLock()
	rooms := make([]*Room, 0, len(h.rooms))
	for _, room := range h.rooms {
		rooms = append(rooms, room)
	}
	h.mu.RUnlock()

	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].ID < rooms[j].ID
		}
		return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
	})

	out := make([]dto.RoomInfo, 0, len(rooms))
	for _, room := range rooms {
		room.mu.Lock()
		out = append(out, room.summary())
		room.mu.Unlock()
	}
	return out
}

// Summary 单个房间的摘要
func (h *Hub) Summary(roomID string) (dto.RoomInfo, error) {
	room, err := h.Room(roomID)
	if err != nil {
		return dto.RoomInfo{}, err
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	return room.summary(), nil
}

func (h *Hub) State(roomID string) (game.VisibleState, error) {
	room, err := h.Room(roomID)
	if err != nil {
		return game.VisibleState{}, err
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	return h.visibleState(room), nil
}

// Glossary 卡牌和贵族图鉴，未开局时为空
func (h *Hub) Glossary(roomID string) (dto.GlossaryMessage, error) {
	room, err := h.Room(roomID)
	if err != nil {
		return dto.GlossaryMessage{}, err
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	return room.glossary(), nil
}

// Sweep 清理没有在线连接的房间，返回被清理的房间 ID
func (h *Hub) Sweep(ctx context.Context) []string {
	h.mu.RLock()
	var idle []string
	for id, room := range h.rooms {
		room.mu.Lock()
		if room.onlineCount() == 0 {
			idle = append(idle, id)
		}
		room.mu.Unlock()
	}
	h.mu.RUnlock()

	sort.Strings(idle)
	for _, id := range idle {
		if err := h.DeleteRoom(ctx, id); err != nil && !errors.Is(err, ErrRoomNotFound) {
			h.logger.Warn("清理房间失败", zap.String("room", id), zap.Error(err))
		}
	}
	return idle
}

// 以下方法都要求调用方持有 room.mu

func (r *Room) summary() dto.RoomInfo {
	players := r.game.Players()
	online := make(map[string]bool, len(r.clients))
	for _, c := range r.clients {
		if !c.virtual {
			online[c.username] = true
		}
	}
	roomPlayers := make([]dto.RoomPlayer, 0, len(players))
	for _, id := range players {
		roomPlayers = append(roomPlayers, dto.RoomPlayer{PlayerID: id, Online: online[id]})
	}
	return dto.RoomInfo{
		RoomID:     r.ID,
		UserID:     r.Creator,
		Status:     r.status(),
		Players:    players,
		RoomPlayer: roomPlayers,
		Turn:       r.game.Turn(),
		Winner:     r.game.Winner(),
	}
}

func (r *Room) status() entities.RoomStatus {
	switch {
	case r.game.Phase() == game.PhaseWon:
		return entities.RoomStatusEnd
	case r.game.Began():
		return entities.RoomStatusPlaying
	default:
		return entities.RoomStatusWaiting
	}
}

func (r *Room) info() entities.RoomInfo {
	return entities.RoomInfo{
		RoomID:     r.ID,
		GameStatus: r.status(),
		Players:    r.game.Players(),
		UserID:     r.Creator,
		Turn:       r.game.Turn(),
		Winner:     r.game.Winner(),
	}
}

func (r *Room) glossary() dto.GlossaryMessage {
	msg := dto.GlossaryMessage{
		Type:        dto.MessageTypeGlossary,
		Cards:       r.game.Cards(),
		Collections: r.game.Collections(),
	}
	if msg.Cards == nil {
		msg.Cards = []entities.Card{}
	}
	if msg.Collections == nil {
		msg.Collections = []entities.Collection{}
	}
	return msg
}

// bind 把连接绑定到座位上，调用方需确认座位存在
func (r *Room) bind(c *client, username string) {
	c.roomID, c.username = r.ID, username
	r.clients = append(r.clients, c)
	r.claimed[username] = true
}

func (r *Room) onlineCount() int {
	n := 0
	for _, c := range r.clients {
		if !c.virtual {
			n++
		}
	}
	return n
}

func (r *Room) removeClient(target *client) {
	kept := r.clients[:0]
	for _, c := range r.clients {
		if c != target {
			kept = append(kept, c)
		}
	}
	r.clients = kept
}

func (h *Hub) persistRoomInfo(ctx context.Context, room *Room) {
	if h.store == nil {
		return
	}
	if err := h.store.SetRoomInfo(ctx, room.info()); err != nil {
		h.logger.Warn("写入房间信息失败", zap.String("room", room.ID), zap.Error(err))
	}
}

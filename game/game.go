// Package game 是宝石商人对局的状态机：回合顺序、宝石经济、牌堆/预留、计分、贵族和胜负。
//
// Game 本身不是并发安全的，同一个房间的所有调用需要由上层串行化。
package game

import (
	"time"

	"go-splendor/entities"
	"go-splendor/utils"

	"golang.org/x/exp/rand"
)

type Phase string

const (
	PhaseWaiting    Phase = "waiting"
	PhaseInProgress Phase = "in_progress"
	PhaseWon        Phase = "won"
)

type Game struct {
	rules Ruleset
	rng   *rand.Rand

	order   []string // 加入顺序即回合顺序
	players map[string]*Player
	began   bool
	turn    int

	catalog           *Catalog
	decks             Decks
	collectionsInPlay []entities.CollectionID
	bank              Wallet

	phase  Phase
	winner string
}

func New(rules Ruleset) *Game {
	seed := rules.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Game{
		rules:   rules,
		rng:     rand.New(rand.NewSource(seed)),
		players: make(map[string]*Player),
		phase:   PhaseWaiting,
	}
}

func (g *Game) Rules() Ruleset { return g.rules }
func (g *Game) Began() bool    { return g.began }
func (g *Game) Turn() int      { return g.turn }
func (g *Game) Phase() Phase   { return g.phase }
func (g *Game) Winner() string { return g.winner }

// Players 回合顺序
func (g *Game) Players() []string {
	return append([]string{}, g.order...)
}

func (g *Game) HasPlayer(id string) bool {
	_, ok := g.players[id]
	return ok
}

// AddPlayer 只能在开局前加入，ID 不能重复
func (g *Game) AddPlayer(id string) (*Game, error) {
	if g.began {
		return g, invalid(KindGameAlreadyBegun, "游戏已经开始").withPlayer(id)
	}
	if id == "" {
		return g, invalid(KindInvalidArguments, "玩家 ID 不能为空")
	}
	if _, ok := g.players[id]; ok {
		return g, invalid(KindPlayerExists, "玩家 %s 已经存在", id).withPlayer(id)
	}
	g.players[id] = newPlayer(id)
	g.order = append(g.order, id)
	return g, nil
}

// Begin 加载卡牌和贵族、发牌、初始化银行。幂等，已开局时直接返回
func (g *Game) Begin(cards CardSource, collections CollectionSource) (*Game, error) {
	if g.began {
		return g, nil
	}
	if len(g.order) == 0 {
		return g, invalid(KindNoPlayers, "至少需要一名玩家才能开始")
	}

	cardList, err := cards.LoadCards()
	if err != nil {
		return g, err
	}
	collectionList, err := collections.LoadCollections()
	if err != nil {
		return g, err
	}
	catalog, err := NewCatalog(cardList, collectionList)
	if err != nil {
		return g, err
	}

	g.catalog = catalog
	g.decks = dealDecks(catalog.tierCardIDs(), g.rules.RevealCount, g.rng)
	g.collectionsInPlay = g.drawCollections(catalog.collectionIDs())
	g.bank = g.rules.initialBank()
	g.turn = 0
	g.phase = PhaseInProgress
	g.began = true
	return g, nil
}

// drawCollections 随机抽取 CollectionsInPlay 个贵族，抽取顺序即检查顺序
func (g *Game) drawCollections(ids []entities.CollectionID) []entities.CollectionID {
	drawn := make([]entities.CollectionID, 0, len(ids))
	for _, i := range g.rng.Perm(len(ids)) {
		drawn = append(drawn, ids[i])
	}
	return utils.SafeSlice(drawn, g.rules.CollectionsInPlay)
}

// CurrentPlayer 当前回合玩家 = players[turn % 人数]
func (g *Game) CurrentPlayer() string {
	if len(g.order) == 0 {
		return ""
	}
	return g.order[g.turn%len(g.order)]
}

func (g *Game) Player(id string) (*Player, bool) {
	p, ok := g.players[id]
	return p, ok
}

func (g *Game) Bank() Wallet {
	return g.bank.clone()
}

func (g *Game) Decks() Decks { return g.decks }

func (g *Game) CollectionsInPlay() []entities.CollectionID {
	return append([]entities.CollectionID{}, g.collectionsInPlay...)
}

func (g *Game) Catalog() *Catalog { return g.catalog }

// Discount 玩家某种颜色的折扣 = 已购买卡牌中该折扣颜色的数量
func (g *Game) Discount(p *Player, color entities.Color) int {
	n := 0
	for _, id := range p.Developments {
		if card, ok := g.catalog.Card(id); ok && card.Discount == color {
			n++
		}
	}
	return n
}

func (g *Game) discounts(p *Player) map[entities.Color]int {
	out := make(map[entities.Color]int, len(entities.GemColors))
	for _, color := range entities.GemColors {
		out[color] = 0
	}
	for _, id := range p.Developments {
		if card, ok := g.catalog.Card(id); ok {
			out[card.Discount]++
		}
	}
	return out
}

// Score 已购买卡牌分数 + 贵族分数
func (g *Game) Score(p *Player) (int, error) {
	score := 0
	for _, id := range p.Developments {
		card, ok := g.catalog.Card(id)
		if !ok {
			return 0, internalf("玩家 %s 持有不存在的卡牌 %d", p.ID, id)
		}
		score += card.Score
	}
	if p.AttainedCollection != nil {
		collection, ok := g.catalog.Collection(*p.AttainedCollection)
		if !ok {
			return 0, internalf("玩家 %s 持有不存在的贵族 %d", p.ID, *p.AttainedCollection)
		}
		score += collection.Score
	}
	return score, nil
}

// assignCollectionIfEligible 按抽取顺序找第一个满足条件的贵族，每名玩家最多一个
func (g *Game) assignCollectionIfEligible(p *Player) (entities.CollectionID, bool) {
	if p.AttainedCollection != nil {
		return 0, false
	}
	discounts := g.discounts(p)
	for _, id := range g.collectionsInPlay {
		collection, ok := g.catalog.Collection(id)
		if !ok {
			continue
		}
		if satisfies(discounts, collection.Trigger) {
			attained := id
			p.AttainedCollection = &attained
			return id, true
		}
	}
	return 0, false
}

func satisfies(discounts map[entities.Color]int, trigger map[entities.Color]int) bool {
	for color, need := range trigger {
		if discounts[color] < need {
			return false
		}
	}
	return true
}

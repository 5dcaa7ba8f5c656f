package game

import "go-splendor/entities"

// VisibleState 发给客户端的快照：不含抽牌堆内容（只给数量），也不含卡牌/贵族图鉴
type VisibleState struct {
	Players           map[string]PlayerView      `json:"players"`
	PlayerOrder       []string                   `json:"player_order"`
	Began             bool                       `json:"began"`
	Turn              int                        `json:"turn"`
	CurrentPlayer     string                     `json:"current_player,omitempty"`
	Decks             map[entities.Tier]DeckView `json:"decks"`
	CollectionsInPlay []entities.CollectionID    `json:"collections_in_play"`
	Bank              Wallet                     `json:"bank"`
	Phase             Phase                      `json:"phase"`
	Winner            string                     `json:"winner,omitempty"`
}

type PlayerView struct {
	Wallet             Wallet                 `json:"wallet"`
	Developments       []entities.CardID      `json:"developments"`
	Reservations       []entities.CardID      `json:"reservations"`
	AttainedCollection *entities.CollectionID `json:"attained_collection"`
	Discounts          map[entities.Color]int `json:"discounts,omitempty"`
	Score              int                    `json:"score"`
}

type DeckView struct {
	Visible     []entities.CardID `json:"visible"`
	HiddenCount int               `json:"hidden_count"`
}

// VisibleState 返回深拷贝，调用方可以随意序列化。
// 分数算不出来时对应玩家的 score 为 0，并返回第一个内部错误
func (g *Game) VisibleState() (VisibleState, error) {
	var scoreErr error
	state := VisibleState{
		Players:           make(map[string]PlayerView, len(g.order)),
		PlayerOrder:       g.Players(),
		Began:             g.began,
		Turn:              g.turn,
		CurrentPlayer:     g.CurrentPlayer(),
		Decks:             make(map[entities.Tier]DeckView, len(g.decks)),
		CollectionsInPlay: g.CollectionsInPlay(),
		Bank:              g.bank.clone(),
		Phase:             g.phase,
		Winner:            g.winner,
	}
	if state.Bank == nil {
		state.Bank = newWallet()
	}

	for _, id := range g.order {
		p := g.players[id]
		view := PlayerView{
			Wallet:       p.Wallet.clone(),
			Developments: append([]entities.CardID{}, p.Developments...),
			Reservations: append([]entities.CardID{}, p.Reservations...),
		}
		if p.AttainedCollection != nil {
			attained := *p.AttainedCollection
			view.AttainedCollection = &attained
		}
		if g.began {
			view.Discounts = g.discounts(p)
			score, err := g.Score(p)
			if err != nil && scoreErr == nil {
				scoreErr = err
			}
			view.Score = score
		}
		state.Players[id] = view
	}

	for tier, deck := range g.decks {
		state.Decks[tier] = DeckView{
			Visible:     append([]entities.CardID{}, deck.Visible...),
			HiddenCount: len(deck.Hidden),
		}
	}
	return state, scoreErr
}

// Cards 完整卡牌图鉴，开局前为空
func (g *Game) Cards() []entities.Card {
	if g.catalog == nil {
		return nil
	}
	return g.catalog.Cards()
}

func (g *Game) Collections() []entities.Collection {
	if g.catalog == nil {
		return nil
	}
	return g.catalog.Collections()
}

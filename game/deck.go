package game

import (
	"sort"

	"go-splendor/entities"
	"go-splendor/utils"

	"golang.org/x/exp/rand"
)

// Deck 某一级的牌堆：Visible 是桌面上翻开的牌，Hidden 是背面朝上的抽牌堆，末尾为堆顶
type Deck struct {
	Visible []entities.CardID
	Hidden  []entities.CardID
}

type Decks map[entities.Tier]*Deck

// dealDecks 每一级随机排列后，前 reveal 张翻开，其余放入抽牌堆
func dealDecks(tiers map[entities.Tier][]entities.CardID, reveal int, rng *rand.Rand) Decks {
	order := make([]entities.Tier, 0, len(tiers))
	for tier := range tiers {
		order = append(order, tier)
	}
	// 按等级顺序洗牌，同一个种子才能发出同样的牌
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	decks := make(Decks, len(tiers))
	for _, tier := range order {
		ids := tiers[tier]
		shuffled := make([]entities.CardID, len(ids))
		for i, j := range rng.Perm(len(ids)) {
			shuffled[i] = ids[j]
		}
		split := reveal
		if split > len(shuffled) {
			split = len(shuffled)
		}
		decks[tier] = &Deck{
			Visible: append([]entities.CardID{}, shuffled[:split]...),
			Hidden:  append([]entities.CardID{}, shuffled[split:]...),
		}
	}
	return decks
}

func (d Decks) deck(tier entities.Tier) (*Deck, error) {
	deck, ok := d[tier]
	if !ok {
		return nil, invalid(KindUnknownTier, "等级 %s 不存在", tier).withTier(tier)
	}
	return deck, nil
}

func (d Decks) isVisible(tier entities.Tier, id entities.CardID) bool {
	deck, ok := d[tier]
	return ok && utils.Contains(deck.Visible, id)
}

func (d Decks) hiddenCount(tier entities.Tier) int {
	if deck, ok := d[tier]; ok {
		return len(deck.Hidden)
	}
	return 0
}

// drawFromHidden 从抽牌堆顶（切片末尾）取一张
func (d Decks) drawFromHidden(tier entities.Tier) (entities.CardID, error) {
	deck, err := d.deck(tier)
	if err != nil {
		return 0, err
	}
	n := len(deck.Hidden)
	if n == 0 {
		return 0, invalid(KindEmptyDeck, "等级 %s 已经没有牌了", tier).withTier(tier)
	}
	id := deck.Hidden[n-1]
	deck.Hidden = deck.Hidden[:n-1]
	return id, nil
}

func (d Decks) removeFromVisible(tier entities.Tier, id entities.CardID) error {
	deck, err := d.deck(tier)
	if err != nil {
		return err
	}
	visible, ok := utils.RemoveFirst(deck.Visible, id)
	if !ok {
		return invalid(KindCardNotAvailable, "卡牌 %d 不在桌面上", id).withCard(id).withTier(tier)
	}
	deck.Visible = visible
	return nil
}

// replaceVisibleSlot 桌面上拿走一张后补牌；抽牌堆空了这一级就永久少一个位置
func (d Decks) replaceVisibleSlot(tier entities.Tier) {
	deck, ok := d[tier]
	if !ok || len(deck.Hidden) == 0 {
		return
	}
	n := len(deck.Hidden)
	deck.Visible = append(deck.Visible, deck.Hidden[n-1])
	deck.Hidden = deck.Hidden[:n-1]
}

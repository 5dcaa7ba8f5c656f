package game

import (
	"go-splendor/entities"
	"go-splendor/utils"
)

// 拿 3 个不同颜色的宝石
func (a TakeDifferent) apply(g *Game, p *Player) error {
	seen := make(map[entities.Color]bool, len(a.Colors))
	for _, color := range a.Colors {
		seen[color] = true
	}
	if len(a.Colors) != 3 || len(seen) != 3 {
		return invalid(KindInvalidColorCount, "必须拿 3 个不同颜色的宝石").withLimit(3)
	}
	for _, color := range a.Colors {
		if !color.Valid() {
			return invalid(KindInvalidColor, "颜色 %s 不存在", color).withColor(color)
		}
	}

	limit := g.rules.MaxTokens - 3
	if p.Wallet.Total() > limit {
		return invalid(KindTokenLimitExceeded, "手上宝石不能超过 %d 个", g.rules.MaxTokens).withLimit(g.rules.MaxTokens)
	}
	for _, color := range a.Colors {
		if g.bank[color] < 1 {
			return invalid(KindBankInsufficient, "银行里 %s 宝石不够了", color).withColor(color).withLimit(1)
		}
	}

	for _, color := range a.Colors {
		p.Wallet[color]++
		g.bank[color]--
	}
	return nil
}

// 拿 2 个同色宝石，银行里该颜色至少要剩 TakeSameMinBank 个
func (a TakeSame) apply(g *Game, p *Player) error {
	if !a.Color.Valid() {
		return invalid(KindInvalidColor, "颜色 %s 不存在", a.Color).withColor(a.Color)
	}
	if g.bank[a.Color] < g.rules.TakeSameMinBank {
		return invalid(KindBankInsufficient, "银行里 %s 宝石少于 %d 个", a.Color, g.rules.TakeSameMinBank).
			withColor(a.Color).withLimit(g.rules.TakeSameMinBank)
	}
	if p.Wallet.Total() > g.rules.MaxTokens-2 {
		return invalid(KindTokenLimitExceeded, "手上宝石不能超过 %d 个", g.rules.MaxTokens).withLimit(g.rules.MaxTokens)
	}

	p.Wallet[a.Color] += 2
	g.bank[a.Color] -= 2
	return nil
}

// 预留一张卡并尽量拿一枚金币
func (a Reserve) apply(g *Game, p *Player) error {
	tier := a.Tier
	// 指定了卡牌时 tier 可以省略，但写了就必须存在
	if a.CardID == nil || tier != "" {
		if _, err := g.decks.deck(tier); err != nil {
			return err
		}
	}
	if a.CardID != nil {
		card, ok := g.catalog.Card(*a.CardID)
		if !ok {
			return invalid(KindUnknownCard, "卡牌 %d 不存在", *a.CardID).withCard(*a.CardID)
		}
		tier = card.Tier
		if !g.decks.isVisible(tier, card.ID) {
			return invalid(KindCardNotAvailable, "卡牌 %d 不在桌面上", card.ID).withCard(card.ID).withTier(tier)
		}
	}

	if len(p.Reservations) >= g.rules.MaxReservations {
		return invalid(KindReservationLimitExceeded, "最多只能预留 %d 张卡", g.rules.MaxReservations).
			withLimit(g.rules.MaxReservations)
	}
	if p.Wallet.Total() > g.rules.MaxTokens-1 {
		return invalid(KindTokenLimitExceeded, "手上宝石不能超过 %d 个", g.rules.MaxTokens).withLimit(g.rules.MaxTokens)
	}
	if a.CardID == nil && g.decks.hiddenCount(tier) == 0 {
		return invalid(KindEmptyDeck, "等级 %s 已经没有牌了", tier).withTier(tier)
	}

	// 以下不会再失败
	var reserved entities.CardID
	if a.CardID == nil {
		id, err := g.decks.drawFromHidden(tier)
		if err != nil {
			return err
		}
		reserved = id
	} else {
		if err := g.decks.removeFromVisible(tier, *a.CardID); err != nil {
			return err
		}
		g.decks.replaceVisibleSlot(tier)
		reserved = *a.CardID
	}
	p.Reservations = append(p.Reservations, reserved)

	if g.bank[entities.Gold] > 0 {
		p.Wallet[entities.Gold]++
		g.bank[entities.Gold]--
	}
	return nil
}

// EffectivePrice 扣除折扣后的价格（不低于 0），再按 goldUsage 把部分单位换成金币
func (g *Game) EffectivePrice(p *Player, card entities.Card, goldUsage []entities.Color) (map[entities.Color]int, error) {
	price := make(map[entities.Color]int, len(card.Price)+1)
	for color, n := range card.Price {
		eff := n - g.Discount(p, color)
		if eff < 0 {
			eff = 0
		}
		price[color] = eff
	}
	for _, color := range goldUsage {
		if !color.IsGem() {
			return nil, invalid(KindInvalidColor, "金币不能替代 %s", color).withColor(color)
		}
		if price[color] < 1 {
			return nil, invalid(KindExcessiveGoldUsage, "%s 已经不需要支付，不能再用金币", color).
				withColor(color).withCard(card.ID)
		}
		price[color]--
		price[entities.Gold]++
	}
	return price, nil
}

// 购买桌面上或自己预留的卡
func (a Purchase) apply(g *Game, p *Player) error {
	goldUsage := a.GoldUsage
	if goldUsage == nil {
		goldUsage = []entities.Color{}
	}

	card, ok := g.catalog.Card(a.CardID)
	if !ok {
		return invalid(KindUnknownCard, "卡牌 %d 不存在", a.CardID).withCard(a.CardID)
	}
	if len(goldUsage) > p.Wallet[entities.Gold] {
		return invalid(KindInsufficientGold, "金币不够，只有 %d 枚", p.Wallet[entities.Gold]).
			withColor(entities.Gold).withLimit(p.Wallet[entities.Gold])
	}

	price, err := g.EffectivePrice(p, card, goldUsage)
	if err != nil {
		return err
	}
	for _, color := range entities.AllColors {
		if need := price[color]; need > 0 && p.Wallet[color] < need {
			return invalid(KindInsufficientFunds, "%s 宝石不够，需要 %d 个", color, need).
				withColor(color).withCard(card.ID).withLimit(need)
		}
	}

	fromReservation := utils.Contains(p.Reservations, card.ID)
	if !fromReservation && !g.decks.isVisible(card.Tier, card.ID) {
		return invalid(KindCardNotAvailable, "卡牌 %d 不在桌面上", card.ID).withCard(card.ID).withTier(card.Tier)
	}

	// 以下不会再失败
	if fromReservation {
		p.Reservations, _ = utils.RemoveFirst(p.Reservations, card.ID)
	} else {
		if err := g.decks.removeFromVisible(card.Tier, card.ID); err != nil {
			return err
		}
		g.decks.replaceVisibleSlot(card.Tier)
	}
	p.Developments = append(p.Developments, card.ID)

	for color, n := range price {
		if n > 0 {
			p.Wallet[color] -= n
			g.bank[color] += n
		}
	}
	return nil
}

func (Pass) apply(g *Game, _ *Player) error {
	if !g.rules.Debug {
		return invalid(KindDebugDisabled, "调试动作未开启")
	}
	return nil
}

package game

import "go-splendor/entities"

// Wallet 玩家钱包和银行共用，6 种颜色始终存在
type Wallet map[entities.Color]int

func newWallet() Wallet {
	w := make(Wallet, len(entities.AllColors))
	for _, color := range entities.AllColors {
		w[color] = 0
	}
	return w
}

func (w Wallet) Total() int {
	total := 0
	for _, n := range w {
		total += n
	}
	return total
}

func (w Wallet) clone() Wallet {
	out := make(Wallet, len(w))
	for color, n := range w {
		out[color] = n
	}
	return out
}

type Player struct {
	ID                 string
	Wallet             Wallet
	Developments       []entities.CardID
	Reservations       []entities.CardID
	AttainedCollection *entities.CollectionID // 只能写一次
}

func newPlayer(id string) *Player {
	return &Player{
		ID:           id,
		Wallet:       newWallet(),
		Developments: []entities.CardID{},
		Reservations: []entities.CardID{},
	}
}

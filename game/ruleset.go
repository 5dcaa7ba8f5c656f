package game

import "go-splendor/entities"

// Ruleset 一局游戏的可配置规则，默认值为经典规则
type Ruleset struct {
	RevealCount       int // 每一级翻开的卡牌数
	CollectionsInPlay int // 开局抽取的贵族数量
	WinScore          int
	MaxTokens         int // 玩家手上宝石上限
	MaxReservations   int
	TakeSameMinBank   int // 拿两个同色宝石时银行至少要剩的数量
	BankTokens        int // 每种普通颜色的初始数量
	BankGold          int
	Debug             bool // 打开后才允许 pass 动作
	Seed              uint64
}

func DefaultRuleset() Ruleset {
	return Ruleset{
		RevealCount:       4,
		CollectionsInPlay: 5,
		WinScore:          15,
		MaxTokens:         10,
		MaxReservations:   3,
		TakeSameMinBank:   4,
		BankTokens:        7,
		BankGold:          5,
	}
}

func (r Ruleset) initialBank() Wallet {
	bank := newWallet()
	for _, color := range entities.GemColors {
		bank[color] = r.BankTokens
	}
	bank[entities.Gold] = r.BankGold
	return bank
}

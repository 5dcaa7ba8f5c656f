package game

import (
	"go-splendor/entities"
)

type ActionKind string

const (
	ActionTakeDifferent ActionKind = "take_different"
	ActionTakeSame      ActionKind = "take_same"
	ActionReserve       ActionKind = "reserve"
	ActionPurchase      ActionKind = "purchase"
	ActionPass          ActionKind = "debug_pass"
)

// Action 玩家动作。apply 必须先完成全部校验再修改状态，失败时不能留下任何改动
type Action interface {
	Kind() ActionKind
	apply(g *Game, p *Player) error
}

type TakeDifferent struct {
	Colors []entities.Color
}

type TakeSame struct {
	Color entities.Color
}

// Reserve CardID 为空时从该等级抽牌堆顶盲抽；不为空时 Tier 被忽略
type Reserve struct {
	Tier   entities.Tier
	CardID *entities.CardID
}

type Purchase struct {
	CardID    entities.CardID
	GoldUsage []entities.Color // 每个元素表示用一枚金币替代该颜色的一个单位
}

// Pass 调试用，什么都不做只推进回合
type Pass struct{}

func (TakeDifferent) Kind() ActionKind { return ActionTakeDifferent }
func (TakeSame) Kind() ActionKind      { return ActionTakeSame }
func (Reserve) Kind() ActionKind       { return ActionReserve }
func (Purchase) Kind() ActionKind      { return ActionPurchase }
func (Pass) Kind() ActionKind          { return ActionPass }

// Outcome 动作成功后的结果。胜利通过 Phase/Winner 表示，而不是错误
type Outcome struct {
	Action     ActionKind             `json:"action"`
	Player     string                 `json:"player"`
	Turn       int                    `json:"turn"` // 推进后的回合数
	Score      int                    `json:"score"`
	Phase      Phase                  `json:"phase"`
	Winner     string                 `json:"winner,omitempty"`
	Collection *entities.CollectionID `json:"collection,omitempty"` // 本回合新获得的贵族
}

// Perform 所有动作的统一入口：
// 已开局 -> 轮到该玩家 -> 执行动作 -> 胜负判断 -> 贵族 -> 回合 +1
func (g *Game) Perform(playerID string, action Action) (Outcome, error) {
	if !g.began {
		return Outcome{}, invalid(KindGameNotStarted, "游戏还没有开始").withPlayer(playerID)
	}
	if g.phase == PhaseWon {
		return Outcome{}, invalid(KindGameOver, "游戏已经结束，%s 获胜", g.winner).withPlayer(g.winner)
	}
	current := g.CurrentPlayer()
	if current != playerID {
		return Outcome{}, invalid(KindNotYourTurn, "现在是 %s 的回合", current).withPlayer(current)
	}
	player := g.players[playerID]

	if err := action.apply(g, player); err != nil {
		return Outcome{}, err
	}

	outcome := Outcome{Action: action.Kind(), Player: playerID}

	score, err := g.Score(player)
	if err != nil {
		return Outcome{}, err
	}
	if score >= g.rules.WinScore {
		g.phase = PhaseWon
		g.winner = playerID
	}

	if id, ok := g.assignCollectionIfEligible(player); ok {
		outcome.Collection = &id
	}

	g.turn++

	outcome.Turn = g.turn
	outcome.Phase = g.phase
	outcome.Winner = g.winner
	outcome.Score, err = g.Score(player)
	if err != nil {
		return Outcome{}, err
	}
	return outcome, nil
}

func (g *Game) TakeDifferent(playerID string, colors ...entities.Color) (Outcome, error) {
	return g.Perform(playerID, TakeDifferent{Colors: colors})
}

func (g *Game) TakeSame(playerID string, color entities.Color) (Outcome, error) {
	return g.Perform(playerID, TakeSame{Color: color})
}

func (g *Game) Reserve(playerID string, tier entities.Tier, cardID *entities.CardID) (Outcome, error) {
	return g.Perform(playerID, Reserve{Tier: tier, CardID: cardID})
}

func (g *Game) Purchase(playerID string, cardID entities.CardID, goldUsage ...entities.Color) (Outcome, error) {
	return g.Perform(playerID, Purchase{CardID: cardID, GoldUsage: goldUsage})
}

func (g *Game) Pass(playerID string) (Outcome, error) {
	return g.Perform(playerID, Pass{})
}

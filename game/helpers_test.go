package game

import (
	"testing"

	"go-splendor/entities"
)

type fixtureSource struct {
	cards       []entities.Card
	collections []entities.Collection
}

func (f fixtureSource) LoadCards() ([]entities.Card, error)             { return f.cards, nil }
func (f fixtureSource) LoadCollections() ([]entities.Collection, error) { return f.collections, nil }

type price = map[entities.Color]int

func card(id int, tier entities.Tier, p price, discount entities.Color, score int) entities.Card {
	return entities.Card{ID: entities.CardID(id), Tier: tier, Price: p, Discount: discount, Score: score}
}

// fixture 小型图鉴：1 级 0-5，2 级 6-9，3 级 10-12
func fixture() fixtureSource {
	return fixtureSource{
		cards: []entities.Card{
			card(0, entities.Tier1, price{entities.Red: 1}, entities.Black, 0),
			card(1, entities.Tier1, price{entities.Blue: 2}, entities.White, 1),
			card(2, entities.Tier1, price{entities.Green: 1, entities.White: 1}, entities.Red, 0),
			card(3, entities.Tier1, price{entities.Black: 3}, entities.Blue, 0),
			card(4, entities.Tier1, price{}, entities.Green, 0),
			card(5, entities.Tier1, price{entities.White: 1}, entities.Black, 0),
			card(6, entities.Tier2, price{entities.Red: 3}, entities.Red, 2),
			card(7, entities.Tier2, price{entities.Green: 3}, entities.Green, 2),
			card(8, entities.Tier2, price{entities.Blue: 3}, entities.Blue, 2),
			card(9, entities.Tier2, price{entities.White: 3}, entities.White, 3),
			card(10, entities.Tier3, price{entities.Black: 1}, entities.Black, 5),
			card(11, entities.Tier3, price{entities.White: 1}, entities.White, 5),
			card(12, entities.Tier3, price{entities.Red: 1}, entities.Red, 5),
		},
		collections: []entities.Collection{
			{ID: 0, Trigger: map[entities.Color]int{entities.Black: 2}, Score: 3},
			{ID: 1, Trigger: map[entities.Color]int{entities.Red: 1, entities.Blue: 1}, Score: 3},
			{ID: 2, Trigger: map[entities.Color]int{entities.White: 4}, Score: 3},
		},
	}
}

func testRules() Ruleset {
	rules := DefaultRuleset()
	rules.RevealCount = 2
	rules.CollectionsInPlay = 2
	rules.Seed = 42
	return rules
}

func newStartedGame(t *testing.T, rules Ruleset, players ...string) *Game {
	t.Helper()
	g := New(rules)
	for _, id := range players {
		if _, err := g.AddPlayer(id); err != nil {
			t.Fatalf("AddPlayer(%s): %v", id, err)
		}
	}
	src := fixture()
	if _, err := g.Begin(src, src); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	// 固定牌堆，方便断言；Hidden 末尾为堆顶
	g.decks = Decks{
		entities.Tier1: {Visible: ids(0, 1), Hidden: ids(2, 3, 4, 5)},
		entities.Tier2: {Visible: ids(6, 7), Hidden: ids(8, 9)},
		entities.Tier3: {Visible: ids(10, 11), Hidden: ids(12)},
	}
	g.collectionsInPlay = []entities.CollectionID{0, 1}
	return g
}

func ids(n ...int) []entities.CardID {
	out := make([]entities.CardID, 0, len(n))
	for _, v := range n {
		out = append(out, entities.CardID(v))
	}
	return out
}

func cardID(n int) *entities.CardID {
	id := entities.CardID(n)
	return &id
}

// give 从银行转给玩家，保持宝石守恒
func give(t *testing.T, g *Game, playerID string, color entities.Color, n int) {
	t.Helper()
	if g.bank[color] < n {
		t.Fatalf("bank has only %d %s", g.bank[color], color)
	}
	g.bank[color] -= n
	g.players[playerID].Wallet[color] += n
}

func mustPlayer(t *testing.T, g *Game, id string) *Player {
	t.Helper()
	p, ok := g.Player(id)
	if !ok {
		t.Fatalf("player %s missing", id)
	}
	return p
}

func expectKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil", kind)
	}
	if KindOf(err) != kind {
		t.Fatalf("expected %s, got %v (%s)", kind, err, KindOf(err))
	}
}

// fullSnapshot 包含抽牌堆内容，用来断言失败的动作没有改动任何状态
type fullSnapshot struct {
	Visible VisibleState
	Hidden  map[entities.Tier][]entities.CardID
}

func snapshot(g *Game) fullSnapshot {
	visible, _ := g.VisibleState()
	s := fullSnapshot{Visible: visible, Hidden: map[entities.Tier][]entities.CardID{}}
	for tier, deck := range g.decks {
		s.Hidden[tier] = append([]entities.CardID{}, deck.Hidden...)
	}
	return s
}

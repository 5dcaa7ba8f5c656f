package game

import (
	"reflect"
	"testing"

	"go-splendor/entities"
)

func TestTakeDifferentScenario(t *testing.T) {
	g := newStartedGame(t, testRules(), "alice")

	if _, err := g.TakeDifferent("alice", entities.Black, entities.White, entities.Red); err != nil {
		t.Fatalf("TakeDifferent: %v", err)
	}

	wantBank := Wallet{entities.Black: 6, entities.White: 6, entities.Red: 6, entities.Blue: 7, entities.Green: 7, entities.Gold: 5}
	if !reflect.DeepEqual(g.Bank(), wantBank) {
		t.Fatalf("bank = %v", g.Bank())
	}
	wantWallet := Wallet{entities.Black: 1, entities.White: 1, entities.Red: 1, entities.Blue: 0, entities.Green: 0, entities.Gold: 0}
	if w := mustPlayer(t, g, "alice").Wallet; !reflect.DeepEqual(w, wantWallet) {
		t.Fatalf("wallet = %v", w)
	}
}

func TestTakeDifferentErrors(t *testing.T) {
	tests := []struct {
		name   string
		colors []entities.Color
		setup  func(t *testing.T, g *Game)
		kind   ErrorKind
	}{
		{
			name:   "two colors",
			colors: []entities.Color{entities.Red, entities.Blue},
			kind:   KindInvalidColorCount,
		},
		{
			name:   "duplicate color",
			colors: []entities.Color{entities.Red, entities.Red, entities.Blue},
			kind:   KindInvalidColorCount,
		},
		{
			name:   "four colors",
			colors: []entities.Color{entities.Red, entities.Blue, entities.Green, entities.White},
			kind:   KindInvalidColorCount,
		},
		{
			name:   "unknown color",
			colors: []entities.Color{entities.Red, entities.Blue, "pink"},
			kind:   KindInvalidColor,
		},
		{
			name:   "wallet above seven",
			colors: []entities.Color{entities.Red, entities.Blue, entities.Green},
			setup: func(t *testing.T, g *Game) {
				give(t, g, "alice", entities.White, 4)
				give(t, g, "alice", entities.Black, 4)
			},
			kind: KindTokenLimitExceeded,
		},
		{
			name:   "bank empty",
			colors: []entities.Color{entities.Red, entities.Blue, entities.Green},
			setup: func(t *testing.T, g *Game) {
				g.bank[entities.Green] = 0
			},
			kind: KindBankInsufficient,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newStartedGame(t, testRules(), "alice")
			if tt.setup != nil {
				tt.setup(t, g)
			}
			before := snapshot(g)
			_, err := g.TakeDifferent("alice", tt.colors...)
			expectKind(t, err, tt.kind)
			if !reflect.DeepEqual(before, snapshot(g)) {
				t.Fatal("state changed on failed action")
			}
		})
	}
}

func TestTakeDifferentAtSevenTokens(t *testing.T) {
	g := newStartedGame(t, testRules(), "alice")
	give(t, g, "alice", entities.White, 4)
	give(t, g, "alice", entities.Black, 3)

	if _, err := g.TakeDifferent("alice", entities.Red, entities.Blue, entities.Green); err != nil {
		t.Fatalf("TakeDifferent: %v", err)
	}
	if total := mustPlayer(t, g, "alice").Wallet.Total(); total != 10 {
		t.Fatalf("wallet total = %d", total)
	}
}

func TestTakeSame(t *testing.T) {
	g := newStartedGame(t, testRules(), "alice")
	if _, err := g.TakeSame("alice", entities.Blue); err != nil {
		t.Fatalf("TakeSame: %v", err)
	}
	if g.bank[entities.Blue] != 5 || mustPlayer(t, g, "alice").Wallet[entities.Blue] != 2 {
		t.Fatalf("bank=%d wallet=%d", g.bank[entities.Blue], mustPlayer(t, g, "alice").Wallet[entities.Blue])
	}
}

func TestTakeSameErrors(t *testing.T) {
	tests := []struct {
		name  string
		color entities.Color
		setup func(t *testing.T, g *Game)
		kind  ErrorKind
	}{
		{name: "unknown color", color: "purple", kind: KindInvalidColor},
		{
			name:  "bank below four",
			color: entities.Red,
			setup: func(t *testing.T, g *Game) {
				g.bank[entities.Red] = 3
			},
			kind: KindBankInsufficient,
		},
		{
			name:  "wallet of nine",
			color: entities.Red,
			setup: func(t *testing.T, g *Game) {
				give(t, g, "alice", entities.White, 5)
				give(t, g, "alice", entities.Black, 4)
			},
			kind: KindTokenLimitExceeded,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newStartedGame(t, testRules(), "alice")
			if tt.setup != nil {
				tt.setup(t, g)
			}
			before := snapshot(g)
			_, err := g.TakeSame("alice", tt.color)
			expectKind(t, err, tt.kind)
			if !reflect.DeepEqual(before, snapshot(g)) {
				t.Fatal("state changed on failed action")
			}
			if g.Turn() != 0 {
				t.Fatalf("turn = %d", g.Turn())
			}
		})
	}
}

func TestTakeSameAtEightTokens(t *testing.T) {
	g := newStartedGame(t, testRules(), "alice")
	give(t, g, "alice", entities.White, 4)
	give(t, g, "alice", entities.Black, 4)

	if _, err := g.TakeSame("alice", entities.Red); err != nil {
		t.Fatalf("TakeSame: %v", err)
	}
	if total := mustPlayer(t, g, "alice").Wallet.Total(); total != 10 {
		t.Fatalf("wallet total = %d", total)
	}
}

func TestReserveVisibleCard(t *testing.T) {
	g := newStartedGame(t, testRules(), "alice")

	// tier 和卡牌等级不一致时以卡牌自身等级为准
	if _, err := g.Reserve("alice", entities.Tier3, cardID(1)); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	alice := mustPlayer(t, g, "alice")
	if !reflect.DeepEqual(alice.Reservations, ids(1)) {
		t.Fatalf("reservations = %v", alice.Reservations)
	}
	if alice.Wallet[entities.Gold] != 1 || g.bank[entities.Gold] != 4 {
		t.Fatalf("gold wallet=%d bank=%d", alice.Wallet[entities.Gold], g.bank[entities.Gold])
	}
	deck := g.decks[entities.Tier1]
	if !reflect.DeepEqual(deck.Visible, ids(0, 5)) || !reflect.DeepEqual(deck.Hidden, ids(2, 3, 4)) {
		t.Fatalf("deck after reserve: %+v", deck)
	}
}

func TestReserveCardWithoutTier(t *testing.T) {
	g := newStartedGame(t, testRules(), "alice")

	if _, err := g.Reserve("alice", "", cardID(0)); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if got := mustPlayer(t, g, "alice").Reservations; !reflect.DeepEqual(got, ids(0)) {
		t.Fatalf("reservations = %v", got)
	}
}

func TestReserveBlindDrawsTopOfHidden(t *testing.T) {
	g := newStartedGame(t, testRules(), "alice")

	if _, err := g.Reserve("alice", entities.Tier2, nil); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	alice := mustPlayer(t, g, "alice")
	if !reflect.DeepEqual(alice.Reservations, ids(9)) {
		t.Fatalf("reservations = %v", alice.Reservations)
	}
	deck := g.decks[entities.Tier2]
	if !reflect.DeepEqual(deck.Visible, ids(6, 7)) || !reflect.DeepEqual(deck.Hidden, ids(8)) {
		t.Fatalf("deck after blind reserve: %+v", deck)
	}
}

func TestReserveWithoutGoldLeft(t *testing.T) {
	g := newStartedGame(t, testRules(), "alice")
	g.bank[entities.Gold] = 0

	if _, err := g.Reserve("alice", entities.Tier1, cardID(0)); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	alice := mustPlayer(t, g, "alice")
	if len(alice.Reservations) != 1 || alice.Wallet[entities.Gold] != 0 {
		t.Fatalf("reservations=%v gold=%d", alice.Reservations, alice.Wallet[entities.Gold])
	}
}

func TestReserveShrinksVisibleWhenHiddenEmpty(t *testing.T) {
	g := newStartedGame(t, testRules(), "alice")
	g.decks[entities.Tier3] = &Deck{Visible: ids(10, 11, 12)}

	if _, err := g.Reserve("alice", "", cardID(11)); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if deck := g.decks[entities.Tier3]; !reflect.DeepEqual(deck.Visible, ids(10, 12)) || len(deck.Hidden) != 0 {
		t.Fatalf("deck = %+v", deck)
	}
}

func TestReserveErrors(t *testing.T) {
	tests := []struct {
		name  string
		tier  entities.Tier
		card  *entities.CardID
		setup func(t *testing.T, g *Game)
		kind  ErrorKind
	}{
		{name: "unknown tier", tier: "4", kind: KindUnknownTier},
		{name: "unknown tier with visible card", tier: "4", card: cardID(1), kind: KindUnknownTier},
		{name: "unknown card", tier: entities.Tier1, card: cardID(404), kind: KindUnknownCard},
		{name: "card in hidden pile", tier: entities.Tier1, card: cardID(3), kind: KindCardNotAvailable},
		{
			name: "empty hidden pile",
			tier: entities.Tier3,
			setup: func(t *testing.T, g *Game) {
				g.decks[entities.Tier3] = &Deck{Visible: ids(10, 11, 12)}
			},
			kind: KindEmptyDeck,
		},
		{
			name: "three reservations",
			tier: entities.Tier1,
			card: cardID(0),
			setup: func(t *testing.T, g *Game) {
				g.decks[entities.Tier2] = &Deck{Visible: ids(9)}
				mustPlayer(t, g, "alice").Reservations = ids(6, 7, 8)
			},
			kind: KindReservationLimitExceeded,
		},
		{
			name: "ten tokens",
			tier: entities.Tier1,
			setup: func(t *testing.T, g *Game) {
				give(t, g, "alice", entities.White, 5)
				give(t, g, "alice", entities.Black, 5)
			},
			kind: KindTokenLimitExceeded,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newStartedGame(t, testRules(), "alice")
			if tt.setup != nil {
				tt.setup(t, g)
			}
			before := snapshot(g)
			_, err := g.Reserve("alice", tt.tier, tt.card)
			expectKind(t, err, tt.kind)
			if !reflect.DeepEqual(before, snapshot(g)) {
				t.Fatal("state changed on failed action")
			}
		})
	}
}

func TestPurchaseFromVisible(t *testing.T) {
	g := newStartedGame(t, testRules(), "alice")
	give(t, g, "alice", entities.Blue, 2)

	out, err := g.Purchase("alice", 1)
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	alice := mustPlayer(t, g, "alice")
	if !reflect.DeepEqual(alice.Developments, ids(1)) || alice.Wallet[entities.Blue] != 0 || g.bank[entities.Blue] != 7 {
		t.Fatalf("developments=%v wallet=%v bank=%v", alice.Developments, alice.Wallet, g.bank)
	}
	if out.Score != 1 {
		t.Fatalf("score = %d", out.Score)
	}
	if deck := g.decks[entities.Tier1]; !reflect.DeepEqual(deck.Visible, ids(0, 5)) {
		t.Fatalf("visible = %v", deck.Visible)
	}
}

func TestPurchaseAppliesDiscount(t *testing.T) {
	g := newStartedGame(t, testRules(), "alice")
	alice := mustPlayer(t, g, "alice")
	alice.Developments = ids(8) // blue 折扣
	give(t, g, "alice", entities.Blue, 1)

	if _, err := g.Purchase("alice", 1); err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if alice.Wallet[entities.Blue] != 0 || g.bank[entities.Blue] != 7 {
		t.Fatalf("wallet=%v bank=%v", alice.Wallet, g.bank)
	}
}

func TestPurchaseDiscountNeverNegative(t *testing.T) {
	g := newStartedGame(t, testRules(), "alice")
	alice := mustPlayer(t, g, "alice")
	alice.Developments = ids(8, 3) // blue x2，比卡牌 1 的价格还多
	give(t, g, "alice", entities.Red, 1)

	if _, err := g.Purchase("alice", 1); err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if alice.Wallet[entities.Red] != 1 || alice.Wallet[entities.Blue] != 0 {
		t.Fatalf("wallet = %v", alice.Wallet)
	}
}

func TestPurchaseWithGold(t *testing.T) {
	g := newStartedGame(t, testRules(), "alice")
	give(t, g, "alice", entities.Blue, 1)
	give(t, g, "alice", entities.Gold, 1)

	if _, err := g.Purchase("alice", 1, entities.Blue); err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	alice := mustPlayer(t, g, "alice")
	if alice.Wallet.Total() != 0 {
		t.Fatalf("wallet = %v", alice.Wallet)
	}
	if g.bank[entities.Gold] != 5 || g.bank[entities.Blue] != 7 {
		t.Fatalf("bank = %v", g.bank)
	}
}

func TestPurchaseFromReservationKeepsOthers(t *testing.T) {
	g := newStartedGame(t, testRules(), "alice")
	g.decks[entities.Tier1] = &Deck{Visible: ids(2, 3), Hidden: ids(4)}
	alice := mustPlayer(t, g, "alice")
	alice.Reservations = ids(0, 1, 5)
	give(t, g, "alice", entities.Blue, 2)

	if _, err := g.Purchase("alice", 1); err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if !reflect.DeepEqual(alice.Reservations, ids(0, 5)) {
		t.Fatalf("reservations = %v", alice.Reservations)
	}
	if !reflect.DeepEqual(alice.Developments, ids(1)) {
		t.Fatalf("developments = %v", alice.Developments)
	}
	// 预留区购买不碰牌堆
	if deck := g.decks[entities.Tier1]; !reflect.DeepEqual(deck.Visible, ids(2, 3)) || !reflect.DeepEqual(deck.Hidden, ids(4)) {
		t.Fatalf("deck touched: %+v", deck)
	}
}

func TestPurchaseErrors(t *testing.T) {
	tests := []struct {
		name  string
		card  entities.CardID
		gold  []entities.Color
		setup func(t *testing.T, g *Game)
		kind  ErrorKind
	}{
		{name: "unknown card", card: 404, kind: KindUnknownCard},
		{
			name: "gold usage above wallet gold",
			card: 1,
			gold: []entities.Color{entities.Blue},
			kind: KindInsufficientGold,
		},
		{
			name: "gold for a free color",
			card: 1,
			gold: []entities.Color{entities.Red},
			setup: func(t *testing.T, g *Game) {
				give(t, g, "alice", entities.Gold, 1)
				give(t, g, "alice", entities.Blue, 2)
			},
			kind: KindExcessiveGoldUsage,
		},
		{
			name: "gold beyond discounted price",
			card: 1,
			gold: []entities.Color{entities.Blue, entities.Blue},
			setup: func(t *testing.T, g *Game) {
				mustPlayer(t, g, "alice").Developments = ids(8)
				give(t, g, "alice", entities.Gold, 2)
			},
			kind: KindExcessiveGoldUsage,
		},
		{
			name: "gold for gold",
			card: 1,
			gold: []entities.Color{entities.Gold},
			setup: func(t *testing.T, g *Game) {
				give(t, g, "alice", entities.Gold, 1)
			},
			kind: KindInvalidColor,
		},
		{
			name: "not enough tokens",
			card: 1,
			setup: func(t *testing.T, g *Game) {
				give(t, g, "alice", entities.Blue, 1)
			},
			kind: KindInsufficientFunds,
		},
		{
			name: "card in hidden pile",
			card: 4,
			kind: KindCardNotAvailable,
		},
		{
			name: "card reserved by someone else",
			card: 9,
			setup: func(t *testing.T, g *Game) {
				g.decks[entities.Tier2] = &Deck{Visible: ids(6, 7), Hidden: ids(8)}
				mustPlayer(t, g, "bob").Reservations = ids(9)
				give(t, g, "alice", entities.White, 3)
			},
			kind: KindCardNotAvailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newStartedGame(t, testRules(), "alice", "bob")
			if tt.setup != nil {
				tt.setup(t, g)
			}
			before := snapshot(g)
			_, err := g.Purchase("alice", tt.card, tt.gold...)
			expectKind(t, err, tt.kind)
			if !reflect.DeepEqual(before, snapshot(g)) {
				t.Fatal("state changed on failed action")
			}
		})
	}
}

func TestPurchaseNilGoldUsage(t *testing.T) {
	g := newStartedGame(t, testRules(), "alice")
	if _, err := g.Perform("alice", Purchase{CardID: 4}); err == nil {
		t.Fatal("card 4 is hidden, expected error")
	}
	g.decks[entities.Tier1] = &Deck{Visible: ids(0, 4), Hidden: ids(1, 2, 3, 5)}
	if _, err := g.Perform("alice", Purchase{CardID: 4}); err != nil {
		t.Fatalf("free card purchase: %v", err)
	}
}

func TestEffectivePrice(t *testing.T) {
	g := newStartedGame(t, testRules(), "alice")
	alice := mustPlayer(t, g, "alice")
	alice.Developments = ids(5) // black 折扣
	c, _ := g.catalog.Card(2)

	got, err := g.EffectivePrice(alice, c, []entities.Color{entities.Green})
	if err != nil {
		t.Fatalf("EffectivePrice: %v", err)
	}
	want := map[entities.Color]int{entities.Green: 0, entities.White: 1, entities.Gold: 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("price = %v, want %v", got, want)
	}
}

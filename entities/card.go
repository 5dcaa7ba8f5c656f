package entities

import "fmt"

type Color string

const (
	Black Color = "black"
	White Color = "white"
	Red   Color = "red"
	Blue  Color = "blue"
	Green Color = "green"
	Gold  Color = "gold" // 万能币，只能用来替代其它颜色付款
)

// AllColors 固定顺序，钱包和银行里始终包含这 6 种颜色
var AllColors = []Color{Black, White, Red, Blue, Green, Gold}

// GemColors 可以作为折扣颜色 / 贵族条件的 5 种颜色（不含 gold）
var GemColors = []Color{Black, White, Red, Blue, Green}

func (c Color) Valid() bool {
	for _, color := range AllColors {
		if c == color {
			return true
		}
	}
	return false
}

// IsGem 是否为普通宝石颜色
func (c Color) IsGem() bool {
	return c.Valid() && c != Gold
}

// CardID / CollectionID 单独定义类型，避免和分数、数量混用
type CardID int

type CollectionID int

type Tier string

const (
	Tier1 Tier = "1"
	Tier2 Tier = "2"
	Tier3 Tier = "3"
)

// Card 发展卡，加载后不可变
type Card struct {
	ID       CardID        `json:"id"`
	Tier     Tier          `json:"tier"`
	Price    map[Color]int `json:"price"`    // 没写的颜色视为 0
	Discount Color         `json:"discount"` // 折扣颜色
	Score    int           `json:"score"`
	Art      string        `json:"art,omitempty"`
}

func (c Card) Validate() error {
	if c.Tier == "" {
		return fmt.Errorf("卡牌 %d 缺少 tier", c.ID)
	}
	if !c.Discount.IsGem() {
		return fmt.Errorf("卡牌 %d 折扣颜色非法: %q", c.ID, c.Discount)
	}
	if c.Score < 0 {
		return fmt.Errorf("卡牌 %d 分数为负: %d", c.ID, c.Score)
	}
	for color, n := range c.Price {
		if !color.IsGem() {
			return fmt.Errorf("卡牌 %d 价格颜色非法: %q", c.ID, color)
		}
		if n < 0 {
			return fmt.Errorf("卡牌 %d 价格为负: %s=%d", c.ID, color, n)
		}
	}
	return nil
}

// Collection 贵族：持有足够的折扣卡即可获得
type Collection struct {
	ID      CollectionID  `json:"id"`
	Trigger map[Color]int `json:"trigger"` // 每种颜色至少需要的折扣数量
	Score   int           `json:"score"`
	Art     string        `json:"art,omitempty"`
}

func (c Collection) Validate() error {
	if len(c.Trigger) == 0 {
		return fmt.Errorf("贵族 %d 没有触发条件", c.ID)
	}
	for color, n := range c.Trigger {
		if !color.IsGem() {
			return fmt.Errorf("贵族 %d 条件颜色非法: %q", c.ID, color)
		}
		if n <= 0 {
			return fmt.Errorf("贵族 %d 条件数量必须为正: %s=%d", c.ID, color, n)
		}
	}
	if c.Score < 0 {
		return fmt.Errorf("贵族 %d 分数为负: %d", c.ID, c.Score)
	}
	return nil
}

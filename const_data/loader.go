// Package const_data 内置经典规则的 90 张发展卡和 10 个贵族，也支持从文件加载
package const_data

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"go-splendor/entities"
)

//go:embed cards.json
var cardsJSON []byte

//go:embed collections.json
var collectionsJSON []byte

type rawCard struct {
	Tier     int                    `json:"tier"`
	Price    map[entities.Color]int `json:"price"`
	Discount entities.Color         `json:"discount"`
	Score    int                    `json:"score"`
	Art      string                 `json:"art"`
}

type rawCollection struct {
	Trigger map[entities.Color]int `json:"trigger"`
	Score   int                    `json:"score"`
	Art     string                 `json:"art"`
}

// Source 卡牌/贵族数据来源，同时满足 game.CardSource 和 game.CollectionSource
type Source struct {
	readCards       func() ([]byte, error)
	readCollections func() ([]byte, error)
}

// Embedded 使用编译进二进制的默认数据
func Embedded() *Source {
	return &Source{
		readCards:       func() ([]byte, error) { return cardsJSON, nil },
		readCollections: func() ([]byte, error) { return collectionsJSON, nil },
	}
}

// FromFiles 路径为空时回退到内置数据
func FromFiles(cardsPath, collectionsPath string) *Source {
	src := Embedded()
	if cardsPath != "" {
		src.readCards = func() ([]byte, error) { return os.ReadFile(cardsPath) }
	}
	if collectionsPath != "" {
		src.readCollections = func() ([]byte, error) { return os.ReadFile(collectionsPath) }
	}
	return src
}

func (s *Source) LoadCards() ([]entities.Card, error) {
	data, err := s.readCards()
	if err != nil {
		return nil, fmt.Errorf("读取卡牌数据失败: %w", err)
	}
	return DecodeCards(data)
}

func (s *Source) LoadCollections() ([]entities.Collection, error) {
	data, err := s.readCollections()
	if err != nil {
		return nil, fmt.Errorf("读取贵族数据失败: %w", err)
	}
	return DecodeCollections(data)
}

// DecodeCards 卡牌 ID 按文件中的顺序从 0 开始编号
func DecodeCards(data []byte) ([]entities.Card, error) {
	var raws []rawCard
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("卡牌数据解析失败: %w", err)
	}

	cards := make([]entities.Card, 0, len(raws))
	for i, raw := range raws {
		card := entities.Card{
			ID:       entities.CardID(i),
			Tier:     entities.Tier(strconv.Itoa(raw.Tier)),
			Price:    raw.Price,
			Discount: raw.Discount,
			Score:    raw.Score,
			Art:      raw.Art,
		}
		if card.Price == nil {
			card.Price = map[entities.Color]int{}
		}
		if err := card.Validate(); err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func DecodeCollections(data []byte) ([]entities.Collection, error) {
	var raws []rawCollection
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("贵族数据解析失败: %w", err)
	}

	collections := make([]entities.Collection, 0, len(raws))
	for i, raw := range raws {
		collection := entities.Collection{
			ID:      entities.CollectionID(i),
			Trigger: raw.Trigger,
			Score:   raw.Score,
			Art:     raw.Art,
		}
		if err := collection.Validate(); err != nil {
			return nil, err
		}
		collections = append(collections, collection)
	}
	return collections, nil
}

package game

import (
	"fmt"
	"sort"

	"go-splendor/entities"
)

// CardSource / CollectionSource 由静态数据加载方实现，见 const_data
type CardSource interface {
	LoadCards() ([]entities.Card, error)
}

type CollectionSource interface {
	LoadCollections() ([]entities.Collection, error)
}

// Catalog 开局后只读，可以在多个 goroutine 间共享
type Catalog struct {
	cards       map[entities.CardID]entities.Card
	collections map[entities.CollectionID]entities.Collection
}

func NewCatalog(cards []entities.Card, collections []entities.Collection) (*Catalog, error) {
	c := &Catalog{
		cards:       make(map[entities.CardID]entities.Card, len(cards)),
		collections: make(map[entities.CollectionID]entities.Collection, len(collections)),
	}
	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.cards[card.ID]; dup {
			return nil, fmt.Errorf("卡牌 ID 重复: %d", card.ID)
		}
		c.cards[card.ID] = card
	}
	for _, collection := range collections {
		if err := collection.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.collections[collection.ID]; dup {
			return nil, fmt.Errorf("贵族 ID 重复: %d", collection.ID)
		}
		c.collections[collection.ID] = collection
	}
	return c, nil
}

func (c *Catalog) Card(id entities.CardID) (entities.Card, bool) {
	card, ok := c.cards[id]
	return card, ok
}

func (c *Catalog) Collection(id entities.CollectionID) (entities.Collection, bool) {
	collection, ok := c.collections[id]
	return collection, ok
}

// Cards 按 ID 排序
func (c *Catalog) Cards() []entities.Card {
	out := make([]entities.Card, 0, len(c.cards))
	for _, card := range c.cards {
		out = append(out, card)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (c *Catalog) Collections() []entities.Collection {
	out := make([]entities.Collection, 0, len(c.collections))
	for _, collection := range c.collections {
		out = append(out, collection)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// collectionIDs 按 ID 排序，保证同一个 seed 抽出同样的贵族
func (c *Catalog) collectionIDs() []entities.CollectionID {
	ids := make([]entities.CollectionID, 0, len(c.collections))
	for id := range c.collections {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// tierCardIDs 每一级的卡牌 ID，升序
func (c *Catalog) tierCardIDs() map[entities.Tier][]entities.CardID {
	out := make(map[entities.Tier][]entities.CardID)
	for id, card := range c.cards {
		out[card.Tier] = append(out[card.Tier], id)
	}
	for _, ids := range out {
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}
	return out
}

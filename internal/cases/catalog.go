package cases

import (
	"math/rand"
	"sort"
)

// Item is one possible reward inside a case tier. Prices are point
// valuations; the actual item price is drawn uniformly in [MinPrice, MaxPrice].
type Item struct {
	Name     string
	Type     string
	Rarity   string
	MinPrice int64
	MaxPrice int64
}

type Case struct {
	Name  string
	Price int64
	Items []Item
}

// Catalog is the fixed set of cases, keyed by price tier. It is built once
// at startup and never mutated; services hold it by value.
type Catalog struct {
	tiers map[int64]Case
}

func NewCatalog(list []Case) Catalog {
	tiers := make(map[int64]Case, len(list))
	for _, c := range list {
		tiers[c.Price] = c
	}
	return Catalog{tiers: tiers}
}

func (c Catalog) Tier(price int64) (Case, bool) {
	tier, ok := c.tiers[price]
	return tier, ok
}

// Prices returns the available tiers in ascending order.
func (c Catalog) Prices() []int64 {
	prices := make([]int64, 0, len(c.tiers))
	for p := range c.tiers {
		prices = append(prices, p)
	}
	sort.Slice(prices, func(i, j int) bool { return prices[i] < prices[j] })
	return prices
}

// Draw picks a reward from the tier: uniform among the tier's items, price
// uniform within the item's range. ok is false for an unknown tier.
func (c Catalog) Draw(price int64, rng *rand.Rand) (item Item, itemPrice int64, ok bool) {
	tier, found := c.tiers[price]
	if !found || len(tier.Items) == 0 {
		return Item{}, 0, false
	}
	item = tier.Items[rng.Intn(len(tier.Items))]
	itemPrice = item.MinPrice
	if item.MaxPrice > item.MinPrice {
		itemPrice += rng.Int63n(item.MaxPrice - item.MinPrice + 1)
	}
	return item, itemPrice, true
}

// Default returns the production catalog.
func Default() Catalog {
	return NewCatalog([]Case{
		{
			Name:  "Базовый кейс",
			Price: 500,
			Items: []Item{
				{Name: "Наклейка | ENCE |", Type: "sticker", Rarity: "common", MinPrice: 100, MaxPrice: 200},
				{Name: "Наклейка | Grayhound", Type: "sticker", Rarity: "common", MinPrice: 100, MaxPrice: 200},
				{Name: "Наклейка | PGL |", Type: "sticker", Rarity: "common", MinPrice: 100, MaxPrice: 250},
			},
		},
		{
			Name:  "Продвинутый кейс",
			Price: 3000,
			Items: []Item{
				{Name: "Наклейка | huNter |", Type: "sticker", Rarity: "uncommon", MinPrice: 300, MaxPrice: 500},
				{Name: "FAMAS | Колония", Type: "weapon", Rarity: "uncommon", MinPrice: 800, MaxPrice: 1200},
				{Name: "UMP-45 | Внедорожник", Type: "weapon", Rarity: "uncommon", MinPrice: 700, MaxPrice: 1100},
				{Name: "Наклейка | XD", Type: "sticker", Rarity: "rare", MinPrice: 1500, MaxPrice: 2000},
			},
		},
		{
			Name:  "Премиум кейс",
			Price: 5000,
			Items: []Item{
				{Name: "Five-SeveN | Хладагент", Type: "weapon", Rarity: "rare", MinPrice: 1500, MaxPrice: 2500},
				{Name: "Капсула с наклейками", Type: "case", Rarity: "rare", MinPrice: 2000, MaxPrice: 3000},
				{Name: "Sticker | From The Deep", Type: "sticker", Rarity: "rare", MinPrice: 2500, MaxPrice: 3500},
				{Name: "MAC-10 | Океанский дракон", Type: "weapon", Rarity: "epic", MinPrice: 4000, MaxPrice: 6000},
			},
		},
		{
			Name:  "Элитный кейс",
			Price: 10000,
			Items: []Item{
				{Name: "Наклейка | Клоунский парик", Type: "sticker", Rarity: "epic", MinPrice: 3500, MaxPrice: 5500},
				{Name: "Наклейка | Высокий полёт", Type: "sticker", Rarity: "epic", MinPrice: 4000, MaxPrice: 6000},
				{Name: "Sticker | From The Deep (Glitter)", Type: "sticker", Rarity: "legendary", MinPrice: 6000, MaxPrice: 9000},
			},
		},
		{
			Name:  "Легендарный кейс",
			Price: 15000,
			Items: []Item{
				{Name: "Наклейка | Гипноглаза", Type: "sticker", Rarity: "legendary", MinPrice: 6000, MaxPrice: 9000},
				{Name: "Наклейка | Радужный путь", Type: "sticker", Rarity: "legendary", MinPrice: 7000, MaxPrice: 10000},
				{Name: "Брелок | Щепотка соли", Type: "collectible", Rarity: "legendary", MinPrice: 8000, MaxPrice: 12000},
			},
		},
	})
}

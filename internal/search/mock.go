package search

import (
	"context"
	"math/rand"
	"strings"

	"github.com/beggab/storechina/internal/models"
)

// Mock serves the built-in demo inventory. It backs tests, seeding, and
// the fallback path when the real marketplace provider is unreachable.
type Mock struct{}

// Inventory returns the demo catalog entries.
func Inventory() []models.Product {
	return []models.Product{
		{
			Name: "SmartWatch Pro", PriceRUB: 1250, OriginalPriceYuan: 100,
			TaobaoItemID: "mock-1", TaobaoURL: "https://item.taobao.com/item.htm?id=mock-1",
			ImageURL: "https://via.placeholder.com/300x300/4A90E2/white?text=SmartWatch",
			Rating:   4.8, Sales: 12500, Store: "Official Store", Category: "electronics",
		},
		{
			Name: "Wireless Headphones", PriceRUB: 890, OriginalPriceYuan: 71.2,
			TaobaoItemID: "mock-2", TaobaoURL: "https://item.taobao.com/item.htm?id=mock-2",
			ImageURL: "https://via.placeholder.com/300x300/50C878/white?text=Headphones",
			Rating:   4.6, Sales: 8900, Store: "TechGadgets", Category: "electronics",
		},
		{
			Name: "Portable Speaker", PriceRUB: 670, OriginalPriceYuan: 53.6,
			TaobaoItemID: "mock-3", TaobaoURL: "https://item.taobao.com/item.htm?id=mock-3",
			ImageURL: "https://via.placeholder.com/300x300/FF6B6B/white?text=Speaker",
			Rating:   4.5, Sales: 5600, Store: "AudioPro", Category: "electronics",
		},
		{
			Name: "Xiaomi Smartphone", PriceRUB: 15400, OriginalPriceYuan: 1232,
			TaobaoItemID: "mock-4", TaobaoURL: "https://item.taobao.com/item.htm?id=mock-4",
			ImageURL: "https://via.placeholder.com/300x300/FFA500/white?text=Xiaomi",
			Rating:   4.7, Sales: 23400, Store: "Xiaomi Official", Category: "electronics",
		},
		{
			Name: "Gaming Laptop", PriceRUB: 45600, OriginalPriceYuan: 3648,
			TaobaoItemID: "mock-5", TaobaoURL: "https://item.taobao.com/item.htm?id=mock-5",
			ImageURL: "https://via.placeholder.com/300x300/9370DB/white?text=Laptop",
			Rating:   4.9, Sales: 1200, Store: "GamingTech", Category: "electronics",
		},
		{
			Name: "Fitness Band", PriceRUB: 560, OriginalPriceYuan: 44.8,
			TaobaoItemID: "mock-6", TaobaoURL: "https://item.taobao.com/item.htm?id=mock-6",
			ImageURL: "https://via.placeholder.com/300x300/20B2AA/white?text=Fitness",
			Rating:   4.4, Sales: 8900, Store: "HealthCare", Category: "electronics",
		},
	}
}

// Search matches the query against product and store names. When nothing
// matches it returns a random sample so the chat always has something to
// show, mirroring the original assistant's behaviour.
func (Mock) Search(ctx context.Context, query string, limit int) ([]models.Product, error) {
	inventory := Inventory()
	q := strings.ToLower(strings.TrimSpace(query))

	var hits []models.Product
	for _, p := range inventory {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Store), q) {
			hits = append(hits, p)
		}
	}

	if len(hits) == 0 {
		n := 4
		if n > len(inventory) {
			n = len(inventory)
		}
		perm := rand.Perm(len(inventory))
		for _, idx := range perm[:n] {
			hits = append(hits, inventory[idx])
		}
	}

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

package cases

import (
	"math/rand"
	"testing"
)

func TestTier(t *testing.T) {
	catalog := Default()

	for _, price := range []int64{500, 3000, 5000, 10000, 15000} {
		tier, ok := catalog.Tier(price)
		if !ok {
			t.Fatalf("Tier(%d) not found", price)
		}
		if tier.Price != price {
			t.Errorf("Tier(%d) price = %d", price, tier.Price)
		}
		if len(tier.Items) == 0 {
			t.Errorf("Tier(%d) has no items", price)
		}
	}

	if _, ok := catalog.Tier(777); ok {
		t.Error("Tier(777) should not exist")
	}
}

func TestPricesSorted(t *testing.T) {
	prices := Default().Prices()
	if len(prices) != 5 {
		t.Fatalf("Prices() returned %d tiers, want 5", len(prices))
	}
	for i := 1; i < len(prices); i++ {
		if prices[i] <= prices[i-1] {
			t.Errorf("prices not ascending: %v", prices)
		}
	}
}

func TestDraw(t *testing.T) {
	catalog := Default()
	rng := rand.New(rand.NewSource(1))

	tier, _ := catalog.Tier(3000)
	names := make(map[string]bool, len(tier.Items))
	ranges := make(map[string][2]int64, len(tier.Items))
	for _, item := range tier.Items {
		names[item.Name] = true
		ranges[item.Name] = [2]int64{item.MinPrice, item.MaxPrice}
	}

	for i := 0; i < 1000; i++ {
		item, price, ok := catalog.Draw(3000, rng)
		if !ok {
			t.Fatal("Draw(3000) failed")
		}
		if !names[item.Name] {
			t.Fatalf("drawn item %q not in tier", item.Name)
		}
		bounds := ranges[item.Name]
		if price < bounds[0] || price > bounds[1] {
			t.Fatalf("item %q price %d outside [%d, %d]", item.Name, price, bounds[0], bounds[1])
		}
	}
}

func TestDrawUnknownTier(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, _, ok := Default().Draw(123, rng); ok {
		t.Error("Draw(123) should fail for unknown tier")
	}
}

func TestDrawFixedPrice(t *testing.T) {
	catalog := NewCatalog([]Case{
		{
			Name:  "test",
			Price: 100,
			Items: []Item{{Name: "only", MinPrice: 50, MaxPrice: 50}},
		},
	})
	rng := rand.New(rand.NewSource(1))

	item, price, ok := catalog.Draw(100, rng)
	if !ok || item.Name != "only" {
		t.Fatalf("Draw = %v, %v, %v", item, price, ok)
	}
	if price != 50 {
		t.Errorf("price = %d, want 50", price)
	}
}

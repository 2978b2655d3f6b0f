package domain

import (
	"math/rand"
	"testing"
)

func TestCartAddIncrementsExistingEntry(t *testing.T) {
	cart := NewCart()
	item := MenuItem{ID: 1, Name: "Lahmacun", Price: 40}
	cart.Add(item)
	entry := cart.Add(item)

	if entry.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", entry.Quantity)
	}
	if cart.Len() != 1 {
		t.Fatalf("expected one entry, got %d", cart.Len())
	}
	if cart.Total() != 80 {
		t.Fatalf("expected total 80, got %v", cart.Total())
	}
}

func TestCartSetQuantityRemovesAtZero(t *testing.T) {
	var cart Cart
	cart.Add(MenuItem{ID: 1, Price: 10})
	cart.Add(MenuItem{ID: 2, Price: 20})

	if !cart.SetQuantity(1, 0) {
		t.Fatal("expected removal to change cart")
	}
	if _, ok := cart.Get(1); ok {
		t.Fatal("expected entry 1 to be removed")
	}
	if cart.SetQuantity(99, 3) {
		t.Fatal("expected unknown item to be ignored")
	}
	entries := cart.Entries()
	if len(entries) != 1 || entries[0].Item.ID != 2 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestCartEntriesKeepInsertionOrder(t *testing.T) {
	cart := NewCart()
	for _, id := range []int{3, 1, 2} {
		cart.Add(MenuItem{ID: id})
	}
	cart.Add(MenuItem{ID: 1})
	got := []int{}
	for _, entry := range cart.Entries() {
		got = append(got, entry.Item.ID)
	}
	if len(got) != 3 || got[0] != 3 || got[1] != 1 || got[2] != 2 {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestCartTotalMatchesSurvivingEntries(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	items := []MenuItem{{ID: 1, Price: 12.5}, {ID: 2, Price: 30}, {ID: 3, Price: 7}}
	cart := NewCart()
	model := map[int]int{}

	for step := 0; step < 500; step++ {
		item := items[rng.Intn(len(items))]
		if rng.Intn(2) == 0 {
			cart.Add(item)
			model[item.ID]++
			continue
		}
		quantity := rng.Intn(5) - 1
		if _, ok := model[item.ID]; !ok {
			cart.SetQuantity(item.ID, quantity)
			continue
		}
		cart.SetQuantity(item.ID, quantity)
		if quantity <= 0 {
			delete(model, item.ID)
		} else {
			model[item.ID] = quantity
		}
	}

	want := 0.0
	for _, item := range items {
		want += item.Price * float64(model[item.ID])
	}
	if cart.Total() != want {
		t.Fatalf("total %v does not match model %v", cart.Total(), want)
	}
	for _, entry := range cart.Entries() {
		if entry.Quantity <= 0 {
			t.Fatalf("entry with non-positive quantity survived: %+v", entry)
		}
		if model[entry.Item.ID] != entry.Quantity {
			t.Fatalf("quantity mismatch for %d: %d vs %d", entry.Item.ID, entry.Quantity, model[entry.Item.ID])
		}
	}
	if cart.Len() != len(model) {
		t.Fatalf("expected %d entries, got %d", len(model), cart.Len())
	}
}

func TestCartCloneIsIndependent(t *testing.T) {
	cart := NewCart()
	cart.Add(MenuItem{ID: 1})
	clone := cart.Clone()
	cart.Add(MenuItem{ID: 1})
	cart.Add(MenuItem{ID: 2})

	entry, _ := clone.Get(1)
	if entry.Quantity != 1 || clone.Len() != 1 {
		t.Fatalf("clone changed with original: %+v", clone.Entries())
	}
}

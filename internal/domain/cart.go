package domain

// Cart maps menu item ids to entries. Entries keep the order in which they
// were first added.
type Cart struct {
	entries map[int]CartEntry
	order   []int
}

// NewCart returns an empty cart.
func NewCart() Cart {
	return Cart{entries: map[int]CartEntry{}}
}

// Add inserts item with quantity 1 or increments an existing entry.
func (c *Cart) Add(item MenuItem) CartEntry {
	if c.entries == nil {
		c.entries = map[int]CartEntry{}
	}
	entry, ok := c.entries[item.ID]
	if !ok {
		entry = CartEntry{Item: item}
		c.order = append(c.order, item.ID)
	}
	entry.Quantity++
	c.entries[item.ID] = entry
	return entry
}

// SetQuantity sets the quantity of an existing entry. A quantity of zero or
// less removes the entry. It reports whether the cart changed.
func (c *Cart) SetQuantity(itemID, quantity int) bool {
	entry, ok := c.entries[itemID]
	if !ok {
		return false
	}
	if quantity <= 0 {
		delete(c.entries, itemID)
		for i, id := range c.order {
			if id == itemID {
				c.order = append(c.order[:i:i], c.order[i+1:]...)
				break
			}
		}
		return true
	}
	entry.Quantity = quantity
	c.entries[itemID] = entry
	return true
}

// Get returns the entry for itemID.
func (c Cart) Get(itemID int) (CartEntry, bool) {
	entry, ok := c.entries[itemID]
	return entry, ok
}

// Entries returns the entries in insertion order.
func (c Cart) Entries() []CartEntry {
	out := make([]CartEntry, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.entries[id])
	}
	return out
}

// Len returns the number of distinct items.
func (c Cart) Len() int {
	return len(c.entries)
}

// IsEmpty reports whether the cart has no entries.
func (c Cart) IsEmpty() bool {
	return len(c.entries) == 0
}

// Total sums price times quantity over all entries.
func (c Cart) Total() float64 {
	total := 0.0
	for _, entry := range c.entries {
		total += entry.Subtotal()
	}
	return total
}

// Clone returns an independent copy.
func (c Cart) Clone() Cart {
	out := Cart{
		entries: make(map[int]CartEntry, len(c.entries)),
		order:   append([]int(nil), c.order...),
	}
	for id, entry := range c.entries {
		out.entries[id] = entry
	}
	return out
}

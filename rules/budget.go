package rules

// Budget tracks the resources committed by the intents of one tick. Every
// affordability check made by the economy and production rules goes through
// it, so a tick never commits more than the stockpile.
type Budget struct {
	resources int
	reserved  int
}

func NewBudget(resources int) *Budget {
	return &Budget{resources: resources}
}

func (b *Budget) Resources() int { return b.resources }
func (b *Budget) Reserved() int  { return b.reserved }

// Available is what remains once this tick's reservations are taken out.
func (b *Budget) Available() int { return b.resources - b.reserved }

// CanAfford reports whether cost fits in what is still available.
func (b *Budget) CanAfford(cost int) bool { return cost <= b.Available() }

// Reserve commits cost if it is affordable.
func (b *Budget) Reserve(cost int) bool {
	if !b.CanAfford(cost) {
		return false
	}
	b.reserved += cost
	return true
}

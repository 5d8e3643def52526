package reconcile

import (
	"github.com/agentstation/restock/pkg/inventory"
)

// Aggregate folds movements into one summary per distinct key.
//
// Keys keep their first-appearance order. Quantities are summed exactly and
// the first non-empty name is carried through. Each summary is labelled with
// source, whose QuantityColumn and NameColumn give the canonical output names.
func Aggregate(source inventory.Source, movements []inventory.Movement) []inventory.Summary {
	summaries := make([]inventory.Summary, 0, len(movements))
	index := make(map[inventory.Key]int, len(movements))

	for _, m := range movements {
		if m.Key.IsZero() {
			continue
		}
		i, ok := index[m.Key]
		if !ok {
			index[m.Key] = len(summaries)
			summaries = append(summaries, inventory.Summary{Source: source, Key: m.Key, Name: m.Name, Quantity: m.Quantity, Rows: 1})
			continue
		}
		s := &summaries[i]
		s.Quantity = s.Quantity.Add(m.Quantity)
		s.Rows++
		if s.Name == "" {
			s.Name = m.Name
		}
	}
	return summaries
}

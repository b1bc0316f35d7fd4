package binding

// RemoveFabric removes every binding owned by fabricIndex, as required when
// a fabric is removed from the node. It returns the number of bindings
// removed; on error, bindings removed before the failure stay removed.
func (t *Table) RemoveFabric(fabricIndex uint8) (int, error) {
	removed := 0
	for it := t.Begin(); !it.Done(); {
		if t.entries[it.index].FabricIndex != fabricIndex {
			it.Next()
			continue
		}
		if err := t.RemoveAt(it); err != nil {
			return removed, err
		}
		removed++
	}

	if removed > 0 && t.log != nil {
		t.log.Infof("removed %d bindings of fabric %d", removed, fabricIndex)
	}
	return removed, nil
}

// FabricEntries returns the bindings of one fabric in list order.
func (t *Table) FabricEntries(fabricIndex uint8) []Entry {
	var result []Entry
	for _, e := range t.All() {
		if e.FabricIndex == fabricIndex {
			result = append(result, e)
		}
	}
	return result
}

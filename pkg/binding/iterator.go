package binding

import "iter"

// Iterator is a forward cursor over the table's list.
//
// An Iterator remembers the slot before the current one so that RemoveAt
// can relink around the current slot. It is invalidated by any mutation
// other than RemoveAt through the same iterator.
type Iterator struct {
	table *Table
	prev  uint8
	index uint8
}

// Begin returns an iterator at the first binding.
func (t *Table) Begin() *Iterator {
	return &Iterator{table: t, prev: NullIndex, index: t.head}
}

// End returns the past-the-end iterator.
func (t *Table) End() *Iterator {
	return &Iterator{table: t, prev: NullIndex, index: NullIndex}
}

// Done reports whether the iterator is past the last binding.
func (it *Iterator) Done() bool {
	return it.index == NullIndex
}

// Index returns the current slot, or NullIndex at the end.
func (it *Iterator) Index() uint8 {
	return it.index
}

// Entry returns a copy of the current binding. ok is false at the end.
func (it *Iterator) Entry() (e Entry, ok bool) {
	if it.Done() {
		return Entry{}, false
	}
	return it.table.entries[it.index].clone(), true
}

// Next advances to the successor. It is a no-op at the end.
func (it *Iterator) Next() {
	if it.Done() {
		return
	}
	it.prev = it.index
	it.index = it.table.next[it.index]
}

// Equal reports whether both iterators are on the same slot of the same table.
func (it *Iterator) Equal(other *Iterator) bool {
	if other == nil {
		return false
	}
	return it.table == other.table && it.index == other.index
}

// All yields slot and entry for every binding in list order. The table must
// not be modified during the iteration; use Begin and RemoveAt for that.
func (t *Table) All() iter.Seq2[uint8, Entry] {
	return func(yield func(uint8, Entry) bool) {
		for it := t.Begin(); !it.Done(); it.Next() {
			e, _ := it.Entry()
			if !yield(it.index, e) {
				return
			}
		}
	}
}

package binding

import (
	"fmt"

	"github.com/pion/logging"

	"github.com/backkem/matter-binding/pkg/storage"
)

// NullIndex terminates the slot list. It is never a valid slot.
const NullIndex uint8 = 0xFF

// Capacity limits.
const (
	// DefaultCapacity is the number of slots when none is configured.
	DefaultCapacity = 64
	// MaxCapacity keeps every slot index below NullIndex.
	MaxCapacity = 254
)

// TableConfig configures the binding table.
type TableConfig struct {
	// Capacity is the fixed number of binding slots.
	// Valid range: 1-254. Default: 64.
	Capacity int

	// Storage persists the table. May be attached later with SetStorage,
	// but must be set before Add, RemoveAt or LoadFromStorage.
	Storage storage.Store

	// OnCleanupError is called when a best-effort record deletion fails:
	// the rollback of a failed Add, or the tombstone of a successful
	// RemoveAt. The failure does not affect the operation's result.
	// Optional.
	OnCleanupError func(index uint8, err error)

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// DefaultTableConfig returns the default table configuration.
func DefaultTableConfig() TableConfig {
	return TableConfig{
		Capacity: DefaultCapacity,
	}
}

// Table is the persistent binding table.
//
// Slots live in a fixed-length array allocated once at construction. The
// occupied slots form a singly-linked list through next, from head to tail,
// in insertion order. The slot index is also the suffix of the slot's
// storage key, so slot numbers are stable for the life of an entry.
//
// Thread Safety: none. The owner must serialize all calls.
type Table struct {
	entries []Entry
	next    []uint8
	head    uint8
	tail    uint8
	size    int

	store          storage.Store
	onCleanupError func(uint8, error)
	log            logging.LeveledLogger
}

// NewTable creates an empty table.
func NewTable(config TableConfig) *Table {
	capacity := config.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if capacity > MaxCapacity {
		capacity = MaxCapacity
	}

	t := &Table{
		entries:        make([]Entry, capacity),
		next:           make([]uint8, capacity),
		store:          config.Storage,
		onCleanupError: config.OnCleanupError,
	}
	if config.LoggerFactory != nil {
		t.log = config.LoggerFactory.NewLogger("binding")
	}
	t.reset()
	return t
}

// SetStorage attaches the storage backend.
func (t *Table) SetStorage(s storage.Store) {
	t.store = s
}

// Capacity returns the number of slots.
func (t *Table) Capacity() int {
	return len(t.entries)
}

// Size returns the number of bindings.
func (t *Table) Size() int {
	return t.size
}

// GetAt returns a copy of the entry in slot index. Free or out-of-range
// slots yield an entry of TypeUnused.
func (t *Table) GetAt(index uint8) Entry {
	if int(index) >= len(t.entries) {
		return Entry{}
	}
	return t.entries[index].clone()
}

// Add appends e to the end of the list.
//
// The new record is persisted with no successor before it is linked in,
// by rewriting either the list-info record (empty list) or the previous
// tail's record. If linking fails, the new record is deleted again and the
// table is unchanged.
//
// Returns ErrInvalidArgument for entries that are not unicast or multicast,
// ErrIncorrectState without storage and ErrTableFull when no slot is free.
func (t *Table) Add(e Entry) error {
	if e.Type != TypeUnicast && e.Type != TypeMulticast {
		return fmt.Errorf("%w: cannot add %v entry", ErrInvalidArgument, e.Type)
	}
	if t.store == nil {
		return ErrIncorrectState
	}

	slot, ok := t.freeSlot()
	if !ok {
		return ErrTableFull
	}

	t.entries[slot] = e.clone()
	if err := t.saveEntry(slot, NullIndex); err != nil {
		t.entries[slot] = Entry{}
		return err
	}

	var err error
	if t.tail == NullIndex {
		err = t.saveListInfo(slot)
	} else {
		err = t.saveEntry(t.tail, slot)
	}
	if err != nil {
		t.discardEntryRecord(slot)
		t.entries[slot] = Entry{}
		return err
	}

	t.next[slot] = NullIndex
	if t.tail == NullIndex {
		t.head = slot
	} else {
		t.next[t.tail] = slot
	}
	t.tail = slot
	t.size++

	if t.log != nil {
		t.log.Debugf("added %v at slot %d (size=%d)", e, slot, t.size)
	}
	return nil
}

// freeSlot returns the highest-numbered free slot. Keeping the last free
// slot (rather than the first) matches the slot numbers the Matter SDK
// assigns, so tables persisted by either stay interchangeable.
func (t *Table) freeSlot() (uint8, bool) {
	slot := NullIndex
	for i := range t.entries {
		if t.entries[i].Type == TypeUnused {
			slot = uint8(i)
		}
	}
	return slot, slot != NullIndex
}

// RemoveAt removes the entry under it and advances it to the removed
// entry's successor. Callers must not call it.Next for the same step.
//
// The predecessor (or the list-info record, when removing the head) is
// rewritten to skip the entry before the entry's own record is deleted.
// If that rewrite fails, nothing changes and it still points at the entry.
// Failure to delete the now unreachable record is only logged.
//
// Any other iterator whose current or previous slot was removed is stale
// and is rejected with ErrInvalidArgument. Restart such a walk from Begin.
func (t *Table) RemoveAt(it *Iterator) error {
	if it == nil || it.table != t || it.index == NullIndex {
		return ErrInvalidArgument
	}
	if !t.linked(it) {
		return fmt.Errorf("%w: stale iterator at slot %d", ErrInvalidArgument, it.index)
	}
	if t.store == nil {
		return ErrIncorrectState
	}

	removed := it.index
	next := t.next[removed]

	if removed != t.head {
		if err := t.saveEntry(it.prev, next); err != nil {
			return err
		}
		t.next[it.prev] = next
	} else {
		if err := t.saveListInfo(next); err != nil {
			return err
		}
		t.head = next
	}
	if removed == t.tail {
		t.tail = it.prev
	}

	t.deleteEntryRecord(removed)
	t.entries[removed] = Entry{}
	t.next[removed] = NullIndex
	t.size--

	it.index = next

	if t.log != nil {
		t.log.Debugf("removed slot %d (size=%d)", removed, t.size)
	}
	return nil
}

// linked reports whether the iterator still describes a live list position.
func (t *Table) linked(it *Iterator) bool {
	if int(it.index) >= len(t.entries) || t.entries[it.index].Type == TypeUnused {
		return false
	}
	if it.prev == NullIndex {
		return t.head == it.index
	}
	return int(it.prev) < len(t.next) && t.next[it.prev] == it.index
}

// LoadFromStorage replaces the in-memory table with the persisted one.
//
// A missing list-info record is reported as an error wrapping
// storage.ErrNotFound; callers decide whether that means "first boot".
// On any failure the table is left empty.
func (t *Table) LoadFromStorage() error {
	if t.store == nil {
		return ErrIncorrectState
	}
	t.reset()

	data, err := t.store.Get(storage.BindingTableKey())
	if err != nil {
		return fmt.Errorf("binding: load list info: %w", err)
	}
	info, err := UnmarshalListInfo(data)
	if err != nil {
		return fmt.Errorf("binding: load list info: %w", err)
	}

	if err := t.loadList(info.Head); err != nil {
		t.reset()
		if t.log != nil {
			t.log.Warnf("discarding persisted bindings: %v", err)
		}
		return err
	}

	if t.log != nil {
		t.log.Infof("loaded %d bindings", t.size)
	}
	return nil
}

func (t *Table) loadList(head uint8) error {
	t.head = head
	for index := head; index != NullIndex; {
		if int(index) >= len(t.entries) {
			return fmt.Errorf("%w: slot %d exceeds capacity %d", ErrInvalidEncoding, index, len(t.entries))
		}
		if t.entries[index].Type != TypeUnused {
			return fmt.Errorf("%w: slot %d linked twice", ErrInvalidEncoding, index)
		}

		data, err := t.store.Get(storage.BindingTableEntryKey(index))
		if err != nil {
			return fmt.Errorf("binding: load entry %d: %w", index, err)
		}
		e, next, err := UnmarshalEntryRecord(data)
		if err != nil {
			return fmt.Errorf("binding: load entry %d: %w", index, err)
		}

		t.entries[index] = e
		t.next[index] = next
		t.tail = index
		t.size++
		index = next
	}
	return nil
}

// reset puts the table in the defined empty state.
func (t *Table) reset() {
	for i := range t.entries {
		t.entries[i] = Entry{}
		t.next[i] = NullIndex
	}
	t.head = NullIndex
	t.tail = NullIndex
	t.size = 0
}

func (t *Table) saveEntry(index, next uint8) error {
	data, err := MarshalEntryRecord(t.entries[index], next)
	if err != nil {
		return err
	}
	if err := t.store.Set(storage.BindingTableEntryKey(index), data); err != nil {
		return fmt.Errorf("binding: save entry %d: %w", index, err)
	}
	return nil
}

func (t *Table) saveListInfo(head uint8) error {
	data, err := MarshalListInfo(head)
	if err != nil {
		return err
	}
	if err := t.store.Set(storage.BindingTableKey(), data); err != nil {
		return fmt.Errorf("binding: save list info: %w", err)
	}
	return nil
}

// discardEntryRecord rolls back the record written by a failed Add.
func (t *Table) discardEntryRecord(index uint8) {
	if err := t.store.Delete(storage.BindingTableEntryKey(index)); err != nil {
		t.cleanupFailed(index, "roll back", err)
	}
}

// deleteEntryRecord tombstones the record of an unlinked slot.
func (t *Table) deleteEntryRecord(index uint8) {
	if err := t.store.Delete(storage.BindingTableEntryKey(index)); err != nil {
		t.cleanupFailed(index, "remove", err)
	}
}

func (t *Table) cleanupFailed(index uint8, action string, err error) {
	if t.log != nil {
		t.log.Errorf("failed to %s binding table entry %d in storage: %v", action, index, err)
	}
	if t.onCleanupError != nil {
		t.onCleanupError(index, err)
	}
}

// Entries returns copies of all bindings in list order.
func (t *Table) Entries() []Entry {
	result := make([]Entry, 0, t.size)
	for it := t.Begin(); !it.Done(); it.Next() {
		e, _ := it.Entry()
		result = append(result, e)
	}
	return result
}

// Check verifies the list invariants: the list from head visits exactly the
// occupied slots, Size of them, ends at tail and has no cycle.
func (t *Table) Check() error {
	seen := make([]bool, len(t.entries))
	count := 0
	last := NullIndex
	for index := t.head; index != NullIndex; index = t.next[index] {
		if int(index) >= len(t.entries) {
			return fmt.Errorf("%w: slot %d out of range", ErrIncorrectState, index)
		}
		if seen[index] {
			return fmt.Errorf("%w: cycle at slot %d", ErrIncorrectState, index)
		}
		if t.entries[index].Type == TypeUnused {
			return fmt.Errorf("%w: free slot %d is linked", ErrIncorrectState, index)
		}
		seen[index] = true
		count++
		last = index
	}

	if count != t.size {
		return fmt.Errorf("%w: %d linked slots, size %d", ErrIncorrectState, count, t.size)
	}
	if last != t.tail {
		return fmt.Errorf("%w: list ends at %d, tail is %d", ErrIncorrectState, last, t.tail)
	}
	for i, e := range t.entries {
		if e.Type != TypeUnused && !seen[i] {
			return fmt.Errorf("%w: occupied slot %d is unreachable", ErrIncorrectState, i)
		}
	}
	return nil
}

// String returns a summary of the binding table.
func (t *Table) String() string {
	return fmt.Sprintf("BindingTable{Size=%d, Capacity=%d, Head=%d, Tail=%d}", t.size, len(t.entries), t.head, t.tail)
}

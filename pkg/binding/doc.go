// Package binding implements the persistent Binding Table of a Matter node.
//
// A binding links a local endpoint to either a remote node and endpoint
// (unicast) or to a group (multicast), scoped to a fabric and optionally to
// a single cluster. The table holds a fixed number of slots and threads the
// occupied ones into a singly-linked list in insertion order. The list is
// mirrored into a storage.Store as one list-info record (format version and
// head slot) plus one TLV record per occupied slot carrying its successor.
//
// Writes are ordered so that the persisted list is always reachable and
// consistent: a new record is written before it is linked in, and a removed
// record is unlinked before it is deleted. A crash between two writes leaves
// at most one unreachable orphan record behind.
//
// The table is not safe for concurrent use; callers serialize access.
//
//	table := binding.NewTable(binding.TableConfig{
//	    Capacity: 16,
//	    Storage:  storage.NewMemoryStore(),
//	})
//	if err := table.LoadFromStorage(); err != nil && !errors.Is(err, storage.ErrNotFound) {
//	    return err
//	}
//	table.Add(binding.NewUnicastEntry(1, 1, 0x1122, 2, nil))
//
//	for it := table.Begin(); !it.Done(); {
//	    e, _ := it.Entry()
//	    if e.FabricIndex == removedFabric {
//	        if err := table.RemoveAt(it); err != nil {
//	            return err
//	        }
//	        continue // RemoveAt already advanced the iterator
//	    }
//	    it.Next()
//	}
package binding

package binding

import (
	"fmt"

	"github.com/backkem/matter-binding/pkg/tlv"
)

// StorageVersion is the format version written to the list-info record.
// Records with any other version are rejected rather than migrated.
const StorageVersion uint32 = 1

// TLV context tags of the list-info record.
const (
	tagStorageVersion = 1
	tagHead           = 2
)

// TLV context tags of an entry record.
const (
	tagFabricIndex    = 1
	tagLocalEndpoint  = 2
	tagCluster        = 3
	tagRemoteEndpoint = 4
	tagNodeID         = 5
	tagGroupID        = 6
	tagNextEntry      = 7
)

// Upper bounds on encoded record sizes, used to size buffers.
const (
	entryRecordMaxSize = 2 + // structure + end
		3 + // fabric index
		4 + // local endpoint
		6 + // cluster
		4 + // remote endpoint
		10 + // node ID
		3 // next
	listInfoMaxSize = 2 + 6 + 3
)

// ListInfo is the decoded list-info record.
type ListInfo struct {
	Version uint32
	Head    uint8
}

// MarshalListInfo encodes the list-info record for head.
func MarshalListInfo(head uint8) ([]byte, error) {
	w := tlv.NewWriter(listInfoMaxSize)
	if err := w.StartStructure(tlv.Anonymous()); err != nil {
		return nil, err
	}
	if err := w.PutUint(tlv.ContextTag(tagStorageVersion), uint64(StorageVersion)); err != nil {
		return nil, err
	}
	if err := w.PutUint(tlv.ContextTag(tagHead), uint64(head)); err != nil {
		return nil, err
	}
	if err := w.EndContainer(); err != nil {
		return nil, err
	}
	return w.Finish()
}

// UnmarshalListInfo decodes a list-info record.
//
// If the stored version is not StorageVersion, the returned ListInfo carries
// the stored version and the error wraps ErrVersionMismatch.
func UnmarshalListInfo(data []byte) (ListInfo, error) {
	var info ListInfo
	r := tlv.NewReader(data)

	if err := enterRecord(r); err != nil {
		return info, err
	}

	if err := r.NextTagged(tlv.ContextTag(tagStorageVersion)); err != nil {
		return info, decodeError("storage version", err)
	}
	version, err := r.Uint32()
	if err != nil {
		return info, decodeError("storage version", err)
	}
	info.Version = version
	if version != StorageVersion {
		return info, fmt.Errorf("%w: stored %d, expected %d", ErrVersionMismatch, version, StorageVersion)
	}

	if err := r.NextTagged(tlv.ContextTag(tagHead)); err != nil {
		return info, decodeError("head", err)
	}
	if info.Head, err = r.Uint8(); err != nil {
		return info, decodeError("head", err)
	}

	if err := r.ExitContainer(); err != nil {
		return info, decodeError("list info", err)
	}
	return info, nil
}

// MarshalEntryRecord encodes e together with its successor slot.
// Field order is fixed: fabric index, local endpoint, optional cluster,
// then the unicast or multicast payload, then the successor.
func MarshalEntryRecord(e Entry, next uint8) ([]byte, error) {
	if e.Type != TypeUnicast && e.Type != TypeMulticast {
		return nil, fmt.Errorf("%w: cannot encode %v entry", ErrInvalidArgument, e.Type)
	}

	w := tlv.NewWriter(entryRecordMaxSize)
	if err := w.StartStructure(tlv.Anonymous()); err != nil {
		return nil, err
	}
	if err := w.PutUint(tlv.ContextTag(tagFabricIndex), uint64(e.FabricIndex)); err != nil {
		return nil, err
	}
	if err := w.PutUint(tlv.ContextTag(tagLocalEndpoint), uint64(e.LocalEndpoint)); err != nil {
		return nil, err
	}
	if e.ClusterID != nil {
		if err := w.PutUint(tlv.ContextTag(tagCluster), uint64(*e.ClusterID)); err != nil {
			return nil, err
		}
	}

	if e.Type == TypeUnicast {
		if err := w.PutUint(tlv.ContextTag(tagRemoteEndpoint), uint64(e.RemoteEndpoint)); err != nil {
			return nil, err
		}
		if err := w.PutUint(tlv.ContextTag(tagNodeID), e.NodeID); err != nil {
			return nil, err
		}
	} else {
		if err := w.PutUint(tlv.ContextTag(tagGroupID), uint64(e.GroupID)); err != nil {
			return nil, err
		}
	}

	if err := w.PutUint(tlv.ContextTag(tagNextEntry), uint64(next)); err != nil {
		return nil, err
	}
	if err := w.EndContainer(); err != nil {
		return nil, err
	}
	return w.Finish()
}

// UnmarshalEntryRecord decodes an entry record, returning the entry and its
// successor slot. Whether the entry is unicast or multicast is decided by
// the tag that follows the optional cluster field.
func UnmarshalEntryRecord(data []byte) (Entry, uint8, error) {
	var e Entry
	r := tlv.NewReader(data)

	if err := enterRecord(r); err != nil {
		return e, NullIndex, err
	}

	var err error
	if err = r.NextTagged(tlv.ContextTag(tagFabricIndex)); err != nil {
		return e, NullIndex, decodeError("fabric index", err)
	}
	if e.FabricIndex, err = r.Uint8(); err != nil {
		return e, NullIndex, decodeError("fabric index", err)
	}

	if err = r.NextTagged(tlv.ContextTag(tagLocalEndpoint)); err != nil {
		return e, NullIndex, decodeError("local endpoint", err)
	}
	if e.LocalEndpoint, err = r.Uint16(); err != nil {
		return e, NullIndex, decodeError("local endpoint", err)
	}

	if err = r.Next(); err != nil {
		return e, NullIndex, decodeError("binding target", err)
	}
	if r.Tag() == tlv.ContextTag(tagCluster) {
		cluster, err := r.Uint32()
		if err != nil {
			return e, NullIndex, decodeError("cluster", err)
		}
		e.ClusterID = &cluster
		if err = r.Next(); err != nil {
			return e, NullIndex, decodeError("binding target", err)
		}
	}

	switch r.Tag() {
	case tlv.ContextTag(tagRemoteEndpoint):
		e.Type = TypeUnicast
		if e.RemoteEndpoint, err = r.Uint16(); err != nil {
			return e, NullIndex, decodeError("remote endpoint", err)
		}
		if err = r.NextTagged(tlv.ContextTag(tagNodeID)); err != nil {
			return e, NullIndex, decodeError("node ID", err)
		}
		if e.NodeID, err = r.Uint(); err != nil {
			return e, NullIndex, decodeError("node ID", err)
		}
	case tlv.ContextTag(tagGroupID):
		e.Type = TypeMulticast
		if e.GroupID, err = r.Uint16(); err != nil {
			return e, NullIndex, decodeError("group ID", err)
		}
	default:
		return e, NullIndex, fmt.Errorf("%w: unexpected tag %v, want remote endpoint or group ID", ErrInvalidEncoding, r.Tag())
	}

	if err = r.NextTagged(tlv.ContextTag(tagNextEntry)); err != nil {
		return e, NullIndex, decodeError("next entry", err)
	}
	next, err := r.Uint8()
	if err != nil {
		return e, NullIndex, decodeError("next entry", err)
	}

	if err := r.ExitContainer(); err != nil {
		return e, NullIndex, decodeError("entry", err)
	}
	return e, next, nil
}

// enterRecord positions r inside the anonymous top-level structure.
func enterRecord(r *tlv.Reader) error {
	if err := r.NextTagged(tlv.Anonymous()); err != nil {
		return decodeError("record", err)
	}
	if r.Type() != tlv.ElementTypeStruct {
		return fmt.Errorf("%w: expected structure, got %v", ErrInvalidEncoding, r.Type())
	}
	if err := r.EnterContainer(); err != nil {
		return decodeError("record", err)
	}
	return nil
}

func decodeError(field string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInvalidEncoding, field, err)
}

package binding

import (
	"fmt"
	"strings"
)

// Type discriminates the payload of an Entry.
type Type uint8

const (
	// TypeUnused marks a free slot. It is never persisted.
	TypeUnused Type = 0
	// TypeUnicast targets a remote node and endpoint.
	TypeUnicast Type = 1
	// TypeMulticast targets a group.
	TypeMulticast Type = 2
)

func (t Type) String() string {
	switch t {
	case TypeUnused:
		return "Unused"
	case TypeUnicast:
		return "Unicast"
	case TypeMulticast:
		return "Multicast"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Fabric index bounds (Matter Core §7.5.2). 0 is unassigned.
const (
	FabricIndexMin uint8 = 1
	FabricIndexMax uint8 = 254
)

// Entry is one binding.
// Matter Core §9.6.5.1 (TargetStruct)
//
// Type selects the payload: RemoteEndpoint and NodeID for TypeUnicast,
// GroupID for TypeMulticast. The other payload fields are ignored.
type Entry struct {
	Type          Type
	FabricIndex   uint8
	LocalEndpoint uint16
	ClusterID     *uint32 // nil = all clusters

	RemoteEndpoint uint16
	NodeID         uint64

	GroupID uint16
}

// NewUnicastEntry creates a binding to endpoint remote on node.
// cluster may be nil to bind every cluster.
func NewUnicastEntry(fabricIndex uint8, local uint16, node uint64, remote uint16, cluster *uint32) Entry {
	return Entry{
		Type:           TypeUnicast,
		FabricIndex:    fabricIndex,
		LocalEndpoint:  local,
		ClusterID:      cloneCluster(cluster),
		RemoteEndpoint: remote,
		NodeID:         node,
	}
}

// NewMulticastEntry creates a binding to group.
// cluster may be nil to bind every cluster.
func NewMulticastEntry(fabricIndex uint8, local uint16, group uint16, cluster *uint32) Entry {
	return Entry{
		Type:          TypeMulticast,
		FabricIndex:   fabricIndex,
		LocalEndpoint: local,
		ClusterID:     cloneCluster(cluster),
		GroupID:       group,
	}
}

// Cluster returns a pointer to id, for use as an Entry's ClusterID.
func Cluster(id uint32) *uint32 {
	return &id
}

func cloneCluster(c *uint32) *uint32 {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}

// HasCluster reports whether the binding is restricted to one cluster.
func (e Entry) HasCluster() bool {
	return e.ClusterID != nil
}

// Validate checks that the entry can be stored as a binding.
func (e Entry) Validate() error {
	if e.FabricIndex < FabricIndexMin || e.FabricIndex > FabricIndexMax {
		return ErrInvalidFabricIndex
	}
	switch e.Type {
	case TypeUnicast:
		if e.NodeID == 0 {
			return ErrMissingNodeID
		}
	case TypeMulticast:
		if e.GroupID == 0 {
			return ErrMissingGroupID
		}
	default:
		return ErrInvalidType
	}
	return nil
}

// Equal compares the fields meaningful for the entry's type.
func (e Entry) Equal(o Entry) bool {
	if e.Type != o.Type || e.FabricIndex != o.FabricIndex || e.LocalEndpoint != o.LocalEndpoint {
		return false
	}
	if e.HasCluster() != o.HasCluster() || (e.HasCluster() && *e.ClusterID != *o.ClusterID) {
		return false
	}
	switch e.Type {
	case TypeUnicast:
		return e.NodeID == o.NodeID && e.RemoteEndpoint == o.RemoteEndpoint
	case TypeMulticast:
		return e.GroupID == o.GroupID
	}
	return true
}

// clone returns a copy that shares no memory with e.
func (e Entry) clone() Entry {
	e.ClusterID = cloneCluster(e.ClusterID)
	return e
}

func (e Entry) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s{fabric=%d local=%d", e.Type, e.FabricIndex, e.LocalEndpoint)
	if e.HasCluster() {
		fmt.Fprintf(&b, " cluster=0x%04X", *e.ClusterID)
	}
	switch e.Type {
	case TypeUnicast:
		fmt.Fprintf(&b, " node=0x%016X remote=%d", e.NodeID, e.RemoteEndpoint)
	case TypeMulticast:
		fmt.Fprintf(&b, " group=0x%04X", e.GroupID)
	}
	b.WriteString("}")
	return b.String()
}

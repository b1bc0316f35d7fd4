package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestType_String(t *testing.T) {
	assert.Equal(t, "Unused", TypeUnused.String())
	assert.Equal(t, "Unicast", TypeUnicast.String())
	assert.Equal(t, "Multicast", TypeMulticast.String())
}

func TestEntry_Validate(t *testing.T) {
	testCases := []struct {
		name  string
		entry Entry
		err   error
	}{
		{"unicast", NewUnicastEntry(1, 1, 0x1122, 2, nil), nil},
		{"multicast", NewMulticastEntry(254, 1, 5, Cluster(6)), nil},
		{"fabric zero", NewUnicastEntry(0, 1, 0x1122, 2, nil), ErrInvalidFabricIndex},
		{"fabric 255", NewMulticastEntry(255, 1, 5, nil), ErrInvalidFabricIndex},
		{"unused", Entry{FabricIndex: 1}, ErrInvalidType},
		{"unknown type", Entry{Type: Type(9), FabricIndex: 1}, ErrInvalidType},
		{"no node", NewUnicastEntry(1, 1, 0, 2, nil), ErrMissingNodeID},
		{"no group", NewMulticastEntry(1, 1, 0, nil), ErrMissingGroupID},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.entry.Validate()
			if tc.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.err)
			}
		})
	}
}

func TestEntry_Equal(t *testing.T) {
	base := NewUnicastEntry(1, 1, 0x1122, 2, Cluster(6))

	assert.True(t, base.Equal(NewUnicastEntry(1, 1, 0x1122, 2, Cluster(6))))
	assert.False(t, base.Equal(NewUnicastEntry(1, 1, 0x1122, 2, nil)))
	assert.False(t, base.Equal(NewUnicastEntry(1, 1, 0x1122, 2, Cluster(8))))
	assert.False(t, base.Equal(NewUnicastEntry(1, 1, 0x1123, 2, Cluster(6))))
	assert.False(t, base.Equal(NewUnicastEntry(2, 1, 0x1122, 2, Cluster(6))))

	// Payload fields of the other type are ignored.
	withGroup := base
	withGroup.GroupID = 9
	assert.True(t, base.Equal(withGroup))

	group := NewMulticastEntry(1, 1, 5, nil)
	withNode := group
	withNode.NodeID = 0x42
	assert.True(t, group.Equal(withNode))
	assert.False(t, group.Equal(NewMulticastEntry(1, 1, 6, nil)))
	assert.False(t, group.Equal(base))
}

func TestEntry_ConstructorsCopyCluster(t *testing.T) {
	cluster := Cluster(6)
	e := NewMulticastEntry(1, 1, 5, cluster)
	*cluster = 8
	assert.Equal(t, uint32(6), *e.ClusterID)
}

func TestEntry_String(t *testing.T) {
	assert.Equal(t,
		"Unicast{fabric=1 local=1 cluster=0x0006 node=0x0000000000001122 remote=2}",
		NewUnicastEntry(1, 1, 0x1122, 2, Cluster(6)).String())
	assert.Equal(t,
		"Multicast{fabric=2 local=3 group=0x0005}",
		NewMulticastEntry(2, 3, 5, nil).String())
}

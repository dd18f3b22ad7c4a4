package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watcheth/beaconledger/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.db")
	st, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestSyncProgressRoundTrip(t *testing.T) {
	st := newTestStore(t)

	_, ok, err := st.SyncProgress()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.SetSyncProgress(64))
	slot, ok, err := st.SyncProgress()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, types.Slot(64), slot)
}

func TestSlotAndEpochMarkers(t *testing.T) {
	st := newTestStore(t)

	ok, err := st.IsSlotSynched(5)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.MarkSlotSynched(5))
	ok, err = st.IsSlotSynched(5)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = st.IsEpochStateSynched(1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.MarkEpochStateSynched(1))
	ok, err = st.IsEpochStateSynched(1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEBBSourceSlotRoundTrip(t *testing.T) {
	st := newTestStore(t)

	_, ok, err := st.EBBSourceSlot(2)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.SetEBBSourceSlot(2, 63))
	slot, ok, err := st.EBBSourceSlot(2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, types.Slot(63), slot)
}

func TestBlockRoundTrip(t *testing.T) {
	st := newTestStore(t)
	root := types.Root{0xaa}

	require.NoError(t, st.SetBlockRoot(10, root))
	got, ok, err := st.BlockRootBySlot(10)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, root, got)

	block := &types.Block{
		Slot:       10,
		ParentRoot: types.Root{0x01},
		StateRoot:  types.Root{0x02},
		Attestations: []types.Attestation{
			{SlotCommittee: 9, CommitteeIndex: 0, AggregationBitfield: []byte{0b101}, Target: types.Checkpoint{Epoch: 0, Root: types.Root{0x01}}},
		},
	}
	require.NoError(t, st.SetBlock(root, block))
	gotBlock, ok, err := st.Block(root)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, block, gotBlock)

	_, ok, err = st.Block(types.Root{0xff})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChainRoundTrip(t *testing.T) {
	st := newTestStore(t)
	root := types.Root{0x03}
	chain := []types.Root{{0x01}, {0x02}, root}

	require.NoError(t, st.SetChain(root, chain))
	got, ok, err := st.Chain(root)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, chain, got)
}

func TestFinalityCheckpointsRoundTrip(t *testing.T) {
	st := newTestStore(t)
	root := types.Root{0x04}
	fc := &types.FinalityCheckpoints{
		Finalized: types.Checkpoint{Epoch: 3, Root: types.Root{0x05}},
	}

	require.NoError(t, st.SetFinalityCheckpoints(root, fc))
	got, ok, err := st.FinalityCheckpoints(root)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, fc, got)
}

func TestCommitteesRoundTrip(t *testing.T) {
	st := newTestStore(t)
	root := types.Root{0x06}
	committees := []types.CommitteeAssignment{
		{Slot: 10, Index: 0, Validators: []types.ValidatorIndex{1, 2, 3}},
	}

	require.NoError(t, st.SetCommittees(root, committees))
	got, ok, err := st.Committees(root)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, committees, got)
}

package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/watcheth/beaconledger/internal/types"
)

func testSpec() Spec {
	return Spec{SlotsPerEpoch: 32, SecondsPerSlot: 12, GenesisUnixtime: 1606824023}
}

func TestSlotEpochConversions(t *testing.T) {
	s := testSpec()

	assert.Equal(t, types.Epoch(0), s.SlotToEpoch(0))
	assert.Equal(t, types.Epoch(0), s.SlotToEpoch(31))
	assert.Equal(t, types.Epoch(1), s.SlotToEpoch(32))
	assert.Equal(t, types.Epoch(2), s.SlotToEpoch(64))

	assert.Equal(t, types.Slot(0), s.EpochToSlot(0))
	assert.Equal(t, types.Slot(32), s.EpochToSlot(1))
	assert.Equal(t, types.Slot(64), s.EpochToSlot(2))
}

func TestIsEpochBoundarySlot(t *testing.T) {
	s := testSpec()

	assert.True(t, s.IsEpochBoundarySlot(0))
	assert.True(t, s.IsEpochBoundarySlot(32))
	assert.False(t, s.IsEpochBoundarySlot(31))
	assert.False(t, s.IsEpochBoundarySlot(33))
}

func TestMostRecentEpochBoundarySlotForSlot(t *testing.T) {
	s := testSpec()

	assert.Equal(t, types.Slot(0), s.MostRecentEpochBoundarySlotForSlot(0))
	assert.Equal(t, types.Slot(0), s.MostRecentEpochBoundarySlotForSlot(31))
	assert.Equal(t, types.Slot(32), s.MostRecentEpochBoundarySlotForSlot(32))
	assert.Equal(t, types.Slot(32), s.MostRecentEpochBoundarySlotForSlot(63))
}

func TestUnixtimeToSlot(t *testing.T) {
	s := testSpec()

	assert.Equal(t, types.Slot(0), s.UnixtimeToSlot(s.GenesisUnixtime))
	assert.Equal(t, types.Slot(0), s.UnixtimeToSlot(s.GenesisUnixtime-100))
	assert.Equal(t, types.Slot(1), s.UnixtimeToSlot(s.GenesisUnixtime+12))
	assert.Equal(t, types.Slot(10), s.UnixtimeToSlot(s.GenesisUnixtime+120))
}

func TestIsPrefixOf(t *testing.T) {
	r1, r2, r3 := types.Root{1}, types.Root{2}, types.Root{3}

	assert.True(t, IsPrefixOf([]types.Root{}, []types.Root{r1, r2}))
	assert.True(t, IsPrefixOf([]types.Root{r1}, []types.Root{r1, r2}))
	assert.True(t, IsPrefixOf([]types.Root{r1, r2}, []types.Root{r1, r2}))
	assert.False(t, IsPrefixOf([]types.Root{r1, r2}, []types.Root{r1}))
	assert.False(t, IsPrefixOf([]types.Root{r1, r3}, []types.Root{r1, r2}))
}

// Package clock implements the pure slot/epoch arithmetic of the
// confirmation-rule evaluator and chain archiver (spec §4.1). Every
// function here is total: it never errors and never touches I/O.
package clock

import "github.com/watcheth/beaconledger/internal/types"

// DefaultStabilityGapSlots is GAP_LATEST_SLOT_NOW_SLOT_CANONICAL_CHAIN_STABILITY:
// the minimum wall-clock distance, in slots, below which the canonical
// chain returned by the consensus API is considered unstable (reorgs
// possible). Two epochs is the conventional finality-delay window.
const DefaultStabilityGapSlots = 2 * 32

// Spec bundles the chain constants needed for slot/epoch conversions. It
// plays the same role as the teacher's ChainConfig, but as a value type
// so every pure function below can hang off it without touching a
// network client.
type Spec struct {
	SlotsPerEpoch   uint64
	SecondsPerSlot  uint64
	GenesisUnixtime int64
}

// SlotToEpoch computes slot_to_epoch(s) = s / SLOTS_PER_EPOCH.
func (s Spec) SlotToEpoch(slot types.Slot) types.Epoch {
	return types.Epoch(uint64(slot) / s.SlotsPerEpoch)
}

// EpochToSlot computes epoch_to_slot(e) = e * SLOTS_PER_EPOCH.
func (s Spec) EpochToSlot(epoch types.Epoch) types.Slot {
	return types.Slot(uint64(epoch) * s.SlotsPerEpoch)
}

// IsEpochBoundarySlot reports whether slot is an epoch boundary, i.e.
// slot mod SLOTS_PER_EPOCH == 0.
func (s Spec) IsEpochBoundarySlot(slot types.Slot) bool {
	return uint64(slot)%s.SlotsPerEpoch == 0
}

// MostRecentEpochBoundarySlotForSlot computes
// epoch_to_slot(slot_to_epoch(s)), the nearest epoch boundary at or
// before s.
func (s Spec) MostRecentEpochBoundarySlotForSlot(slot types.Slot) types.Slot {
	return s.EpochToSlot(s.SlotToEpoch(slot))
}

// UnixtimeToSlot computes (t - GENESIS_UNIXTIME) / SECONDS_PER_SLOT. It
// returns slot 0 for any t at or before genesis rather than failing,
// since callers only use it to derive an upper safety bound.
func (s Spec) UnixtimeToSlot(t int64) types.Slot {
	if t <= s.GenesisUnixtime || s.SecondsPerSlot == 0 {
		return 0
	}
	return types.Slot(uint64(t-s.GenesisUnixtime) / s.SecondsPerSlot)
}

// IsPrefixOf reports whether a is a prefix of b: a.len() <= b.len() and
// a[i] == b[i] for all i < a.len().
func IsPrefixOf(a, b []types.Root) bool {
	if len(a) > len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

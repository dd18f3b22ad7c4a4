package store

import (
	"fmt"

	"github.com/watcheth/beaconledger/internal/types"
)

// The store's key-space is pushed through this single file (spec §9
// re-architecture point "store schema as sum-typed keys"): every other
// package reaches the underlying byte-oriented KV only through these
// constructors, never by concatenating strings itself.

func keySyncProgress() []byte {
	return []byte("sync_progress")
}

func keySlotSynched(s types.Slot) []byte {
	return []byte(fmt.Sprintf("slot_%d_synched", uint64(s)))
}

func keyEpochStateSynched(e types.Epoch) []byte {
	return []byte(fmt.Sprintf("epoch_%d_state_synched", uint64(e)))
}

func keyEBBSourceSlot(e types.Epoch) []byte {
	return []byte(fmt.Sprintf("ebb_%d_source_slot", uint64(e)))
}

func keyBlockBySlot(s types.Slot) []byte {
	return []byte(fmt.Sprintf("block_slot_%d", uint64(s)))
}

func keyBlockByRoot(r types.Root) []byte {
	return []byte(fmt.Sprintf("block_root_%s", r))
}

func keyChain(r types.Root) []byte {
	return []byte(fmt.Sprintf("chain_%s", r))
}

func keyStateFinalityCheckpoints(r types.Root) []byte {
	return []byte(fmt.Sprintf("state_%s_finality_checkpoints", r))
}

func keyStateCommittees(r types.Root) []byte {
	return []byte(fmt.Sprintf("state_%s_committees", r))
}

// Package archiver implements the chain archiver (spec §4.3): an
// idempotent, resumable synchronizer that pulls canonical blocks,
// finality checkpoints and committee assignments for a slot range from
// the consensus-API adapter and materializes them into the store.
package archiver

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/watcheth/beaconledger/internal/api"
	"github.com/watcheth/beaconledger/internal/clock"
	"github.com/watcheth/beaconledger/internal/logger"
	"github.com/watcheth/beaconledger/internal/types"
)

// Store is the subset of the persisted data model (spec §3) the
// archiver writes through. *store.Store satisfies it structurally.
type Store interface {
	IsSlotSynched(slot types.Slot) (bool, error)
	MarkSlotSynched(slot types.Slot) error
	IsEpochStateSynched(epoch types.Epoch) (bool, error)
	MarkEpochStateSynched(epoch types.Epoch) error
	EBBSourceSlot(epoch types.Epoch) (types.Slot, bool, error)
	SetEBBSourceSlot(epoch types.Epoch, slot types.Slot) error
	BlockRootBySlot(slot types.Slot) (types.Root, bool, error)
	SetBlockRoot(slot types.Slot, root types.Root) error
	Block(root types.Root) (*types.Block, bool, error)
	SetBlock(root types.Root, block *types.Block) error
	Chain(root types.Root) ([]types.Root, bool, error)
	SetChain(root types.Root, chain []types.Root) error
	FinalityCheckpoints(root types.Root) (*types.FinalityCheckpoints, bool, error)
	SetFinalityCheckpoints(root types.Root, fc *types.FinalityCheckpoints) error
	Committees(root types.Root) ([]types.CommitteeAssignment, bool, error)
	SetCommittees(root types.Root, committees []types.CommitteeAssignment) error
	SetSyncProgress(slot types.Slot) error
}

// Archiver drives the per-slot procedure of spec §4.3 over a Store
// using a Client to reach the consensus API.
type Archiver struct {
	client api.Client
	store  Store
	spec   clock.Spec

	lastNonEmptySlot types.Slot
	haveNonEmpty     bool
}

// New builds an Archiver for spec (SLOTS_PER_EPOCH etc.), driving client
// and writing to store.
func New(client api.Client, store Store, spec clock.Spec) *Archiver {
	return &Archiver{client: client, store: store, spec: spec}
}

// Run archives [minSlot, maxSlot] after applying the entry-precondition
// coercions of spec §4.3: both bounds are pulled down to the nearest
// epoch boundary, maxSlot is additionally capped below
// now_slot − GAP_LATEST_SLOT_NOW_SLOT_CANONICAL_CHAIN_STABILITY, then
// bumped forward by one full epoch so the run includes the
// epoch-boundary block that closes the last analyzed epoch.
func (a *Archiver) Run(ctx context.Context, minSlot, maxSlot types.Slot) error {
	minSlot = a.spec.MostRecentEpochBoundarySlotForSlot(minSlot)

	nowSlot := a.spec.UnixtimeToSlot(time.Now().Unix())
	if nowSlot >= clock.DefaultStabilityGapSlots {
		safeUpperBound := nowSlot - clock.DefaultStabilityGapSlots
		if maxSlot > safeUpperBound {
			logger.Warn("max_slot %d is within the chain-stability gap of now_slot %d; clamping to %d", maxSlot, nowSlot, safeUpperBound)
			maxSlot = safeUpperBound
		}
	}
	if coerced := a.spec.MostRecentEpochBoundarySlotForSlot(maxSlot); coerced != maxSlot {
		logger.Warn("max_slot %d is not an epoch boundary; coercing down to %d", maxSlot, coerced)
		maxSlot = coerced
	}
	maxSlot += types.Slot(a.spec.SlotsPerEpoch)

	for s := minSlot; s <= maxSlot; s++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.archiveSlot(ctx, s); err != nil {
			return errors.Wrapf(err, "archive slot %d", s)
		}
	}

	return a.store.SetSyncProgress(maxSlot)
}

func (a *Archiver) archiveSlot(ctx context.Context, s types.Slot) error {
	synched, err := a.store.IsSlotSynched(s)
	if err != nil {
		return errors.Wrap(err, "check slot synched marker")
	}
	if synched {
		a.restoreLastNonEmptySlotIfNeeded(s)
		return nil
	}

	root, ok, err := a.client.BlockRootBySlot(ctx, s)
	if err != nil {
		return errors.Wrap(err, "fetch block root")
	}

	epoch := a.spec.SlotToEpoch(s)
	isBoundary := a.spec.IsEpochBoundarySlot(s)

	if !ok {
		if isBoundary && a.haveNonEmpty {
			if err := a.store.SetEBBSourceSlot(epoch, a.lastNonEmptySlot); err != nil {
				return errors.Wrap(err, "set EBB source slot for empty boundary")
			}
		}
		return a.store.MarkSlotSynched(s)
	}

	if err := a.store.SetBlockRoot(s, root); err != nil {
		return errors.Wrap(err, "persist block root")
	}
	a.lastNonEmptySlot = s
	a.haveNonEmpty = true
	if isBoundary {
		if err := a.store.SetEBBSourceSlot(epoch, s); err != nil {
			return errors.Wrap(err, "set EBB source slot")
		}
	}

	blk, err := a.client.BlockByRoot(ctx, root)
	if err != nil {
		return errors.Wrap(err, "fetch block")
	}
	if err := a.store.SetBlock(root, blk); err != nil {
		return errors.Wrap(err, "persist block")
	}
	if err := a.constructChain(root, blk); err != nil {
		return errors.Wrap(err, "construct chain")
	}

	stateSynched, err := a.store.IsEpochStateSynched(epoch)
	if err != nil {
		return errors.Wrap(err, "check epoch state synched marker")
	}
	if !stateSynched {
		if err := a.syncEpochState(ctx, s, epoch, blk); err != nil {
			return err
		}
	}

	return a.store.MarkSlotSynched(s)
}

// restoreLastNonEmptySlotIfNeeded keeps the in-memory
// last-non-empty-slot tracker correct across a resumed run: if s was
// already archived non-empty, later empty boundary slots still need it.
func (a *Archiver) restoreLastNonEmptySlotIfNeeded(s types.Slot) {
	if _, ok, err := a.store.BlockRootBySlot(s); err == nil && ok {
		a.lastNonEmptySlot = s
		a.haveNonEmpty = true
	}
}

func (a *Archiver) syncEpochState(ctx context.Context, s types.Slot, epoch types.Epoch, blk *types.Block) error {
	stateRoot, err := a.client.StateRootBySlot(ctx, s)
	if err != nil {
		return errors.Wrap(err, "fetch state root")
	}
	if stateRoot != blk.StateRoot {
		return errors.Errorf("state root mismatch at slot %d: block declares %s, endpoint returned %s", s, blk.StateRoot, stateRoot)
	}

	fc, err := a.client.FinalityCheckpoints(ctx, s)
	if err != nil {
		return errors.Wrap(err, "fetch finality checkpoints")
	}
	if err := a.store.SetFinalityCheckpoints(blk.StateRoot, fc); err != nil {
		return errors.Wrap(err, "persist finality checkpoints")
	}

	committees, err := a.client.Committees(ctx, s)
	if err != nil {
		return errors.Wrap(err, "fetch committees")
	}
	if err := a.store.SetCommittees(blk.StateRoot, committees); err != nil {
		return errors.Wrap(err, "persist committees")
	}

	confirmRoot, err := a.client.StateRootBySlot(ctx, s)
	if err != nil {
		return errors.Wrap(err, "re-fetch state root")
	}
	if confirmRoot != blk.StateRoot {
		return errors.Errorf("state root mismatch on re-check at slot %d: block declares %s, endpoint returned %s", s, blk.StateRoot, confirmRoot)
	}

	return a.store.MarkEpochStateSynched(epoch)
}

// constructChain builds chain_{root} = chain_{blk.ParentRoot} ++ [root]
// (spec §4.3, resolving Open Question 1 per §9: the archiver always
// constructs chains rather than leaving this path disabled). Genesis's
// parent is the zero root, whose chain is the single-element
// [GenesisRoot] by definition.
func (a *Archiver) constructChain(root types.Root, blk *types.Block) error {
	var parentChain []types.Root
	if blk.ParentRoot.IsZero() {
		parentChain = []types.Root{types.GenesisRoot}
	} else {
		chain, ok, err := a.store.Chain(blk.ParentRoot)
		if err != nil {
			return errors.Wrap(err, "read parent chain")
		}
		if !ok {
			return errors.Errorf("parent chain for %s (parent %s) not yet archived", root, blk.ParentRoot)
		}
		parentChain = chain
	}

	chain := make([]types.Root, 0, len(parentChain)+1)
	chain = append(chain, parentChain...)
	chain = append(chain, root)
	return a.store.SetChain(root, chain)
}

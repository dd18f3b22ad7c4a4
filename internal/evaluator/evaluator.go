// Package evaluator implements the confirmation-rule evaluator (spec
// §4.4): a deterministic, offline replayer over a previously-archived
// store that advances each configured quorum's confirmed tip and emits
// the resulting ledger stream.
package evaluator

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/watcheth/beaconledger/internal/clock"
	"github.com/watcheth/beaconledger/internal/ledger"
	"github.com/watcheth/beaconledger/internal/types"
)

// Store is the read-only subset of the persisted data model (spec §3)
// the evaluator needs. *store.Store satisfies it structurally.
type Store interface {
	SyncProgress() (types.Slot, bool, error)
	BlockRootBySlot(slot types.Slot) (types.Root, bool, error)
	Block(root types.Root) (*types.Block, bool, error)
	Chain(root types.Root) ([]types.Root, bool, error)
	FinalityCheckpoints(root types.Root) (*types.FinalityCheckpoints, bool, error)
	Committees(root types.Root) ([]types.CommitteeAssignment, bool, error)
}

// Run executes the full epoch loop of spec §4.4 against st, emitting one
// LEDGER line per rule to w for the genesis state and every successful
// confirmation advance, through epoch slot_to_epoch(maxSlot).
func Run(w io.Writer, st Store, quorums []float64, maxSlot types.Slot, spec clock.Spec) error {
	progress, ok, err := st.SyncProgress()
	if err != nil {
		return errors.Wrap(err, "read sync progress")
	}
	if !ok || progress < maxSlot {
		return fmt.Errorf("sync is not complete: sync_progress=%d, max_slot=%d", progress, maxSlot)
	}

	rules := make([]*RuleState, len(quorums))
	for i, q := range quorums {
		rules[i] = NewRuleState(q)
		if err := ledger.Emit(w, ledger.Record{Slot: 0, Quorum: q, Tip: rules[i].Tip, TipSlot: rules[i].TipSlot}); err != nil {
			return errors.Wrap(err, "emit genesis ledger record")
		}
	}

	lastEpoch := spec.SlotToEpoch(maxSlot)
	for e := types.Epoch(1); e <= lastEpoch; e++ {
		if err := runEpoch(e, w, st, rules, spec); err != nil {
			return err
		}
	}
	return nil
}

// runEpoch performs one iteration of the epoch loop in spec §4.4 steps
// 1-9, for the epoch boundary ending at slot epoch_to_slot(e).
func runEpoch(e types.Epoch, w io.Writer, st Store, rules []*RuleState, spec clock.Spec) error {
	slotE := spec.EpochToSlot(e)
	slotEm1 := spec.EpochToSlot(e - 1)

	blkrootE, okE, err := st.BlockRootBySlot(slotE)
	if err != nil {
		return errors.Wrapf(err, "read block root at slot %d", slotE)
	}
	blkrootEm1, okEm1, err := st.BlockRootBySlot(slotEm1)
	if err != nil {
		return errors.Wrapf(err, "read block root at slot %d", slotEm1)
	}
	if !okE || !okEm1 {
		// Empty epoch-boundary slot: skip per spec §9 Open Question 2.
		return nil
	}

	blkEm1, ok, err := st.Block(blkrootEm1)
	if err != nil {
		return errors.Wrapf(err, "read block %s", blkrootEm1)
	}
	if !ok {
		return fmt.Errorf("missing block %s for epoch boundary at slot %d", blkrootEm1, slotEm1)
	}

	chainE, err := resolveChain(st, blkrootE)
	if err != nil {
		return errors.Wrapf(err, "read chain to %s", blkrootE)
	}
	chainEm1, err := resolveChain(st, blkrootEm1)
	if err != nil {
		return errors.Wrapf(err, "read chain to %s", blkrootEm1)
	}
	if !clock.IsPrefixOf(chainEm1, chainE) {
		return fmt.Errorf("chain to %s is not a prefix of chain to %s at epoch %d", blkrootEm1, blkrootE, uint64(e))
	}

	committees, ok, err := st.Committees(blkEm1.StateRoot)
	if err != nil {
		return errors.Wrapf(err, "read committees for state %s", blkEm1.StateRoot)
	}
	if !ok {
		return fmt.Errorf("missing committees for state %s", blkEm1.StateRoot)
	}

	blkroots := chainE[len(chainEm1)-1:]
	blks := make([]*types.Block, 0, len(blkroots))
	for _, root := range blkroots {
		if root == types.GenesisRoot {
			continue
		}
		blk, ok, err := st.Block(root)
		if err != nil {
			return errors.Wrapf(err, "read block %s", root)
		}
		if !ok {
			return fmt.Errorf("missing block %s referenced by chain to %s", root, blkrootE)
		}
		blks = append(blks, blk)
	}

	fc, ok, err := st.FinalityCheckpoints(blkEm1.StateRoot)
	if err != nil {
		return errors.Wrapf(err, "read finality checkpoints for state %s", blkEm1.StateRoot)
	}
	if !ok {
		return fmt.Errorf("missing finality checkpoints for state %s", blkEm1.StateRoot)
	}

	targetRoot := fc.Finalized.Root
	if targetRoot.IsZero() {
		targetRoot = types.GenesisRoot
	}
	targetSlot, err := resolveBlockSlot(st, targetRoot)
	if err != nil {
		return errors.Wrapf(err, "resolve target block %s", targetRoot)
	}
	chainTipNew, err := resolveChain(st, targetRoot)
	if err != nil {
		return errors.Wrapf(err, "read chain to %s", targetRoot)
	}

	for _, rule := range rules {
		met := countVotesForConfirmation(slotEm1, slotE, blkrootEm1, committees, blks, rule.Quorum)
		if !met {
			continue
		}

		chainTipOld, err := resolveChain(st, rule.Tip)
		if err != nil {
			return errors.Wrapf(err, "read chain to rule tip %s", rule.Tip)
		}
		if !clock.IsPrefixOf(chainTipOld, chainTipNew) {
			return fmt.Errorf("rule tip %s is not an ancestor of new target %s at epoch %d", rule.Tip, targetRoot, uint64(e))
		}

		rule.Advance(targetRoot, targetSlot)
		if err := ledger.Emit(w, ledger.Record{Slot: slotE, Quorum: rule.Quorum, Tip: rule.Tip, TipSlot: rule.TipSlot}); err != nil {
			return errors.Wrap(err, "emit ledger record")
		}
	}

	return nil
}

func resolveChain(st Store, root types.Root) ([]types.Root, error) {
	if root == types.GenesisRoot {
		return []types.Root{types.GenesisRoot}, nil
	}
	chain, ok, err := st.Chain(root)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("missing chain for %s", root)
	}
	return chain, nil
}

func resolveBlockSlot(st Store, root types.Root) (types.Slot, error) {
	if root == types.GenesisRoot {
		return 0, nil
	}
	blk, ok, err := st.Block(root)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("missing block for %s", root)
	}
	return blk.Slot, nil
}

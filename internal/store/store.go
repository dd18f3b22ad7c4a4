// Package store persists the archiver's and evaluator's shared data
// model (spec §3) in an embedded go.etcd.io/bbolt database. Every value
// is JSON-encoded and treated as an opaque blob outside this package;
// callers only ever see the typed accessors below.
package store

import (
	"encoding/json"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/watcheth/beaconledger/internal/types"
)

var bucketName = []byte("beaconledger")

// Store wraps a single bbolt database file under the schema of spec §3.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if necessary) the KV store at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "open store at %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create root bucket")
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) getJSON(key []byte, v any) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketName).Get(key)
		if raw == nil {
			return nil
		}
		found = true
		return json.Unmarshal(raw, v)
	})
	return found, err
}

func (s *Store) putJSON(key []byte, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(key, raw)
	})
}

func (s *Store) has(key []byte) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		found = tx.Bucket(bucketName).Get(key) != nil
		return nil
	})
	return found, err
}

func (s *Store) mark(key []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(key, []byte{1})
	})
}

// SyncProgress returns the highest slot fully archived, if any.
func (s *Store) SyncProgress() (types.Slot, bool, error) {
	var v uint64
	ok, err := s.getJSON(keySyncProgress(), &v)
	return types.Slot(v), ok, err
}

// SetSyncProgress records the highest slot fully archived.
func (s *Store) SetSyncProgress(slot types.Slot) error {
	return s.putJSON(keySyncProgress(), uint64(slot))
}

// IsSlotSynched reports whether slot_{s}_synched is set.
func (s *Store) IsSlotSynched(slot types.Slot) (bool, error) {
	return s.has(keySlotSynched(slot))
}

// MarkSlotSynched sets slot_{s}_synched.
func (s *Store) MarkSlotSynched(slot types.Slot) error {
	return s.mark(keySlotSynched(slot))
}

// IsEpochStateSynched reports whether epoch_{e}_state_synched is set.
func (s *Store) IsEpochStateSynched(epoch types.Epoch) (bool, error) {
	return s.has(keyEpochStateSynched(epoch))
}

// MarkEpochStateSynched sets epoch_{e}_state_synched.
func (s *Store) MarkEpochStateSynched(epoch types.Epoch) error {
	return s.mark(keyEpochStateSynched(epoch))
}

// EBBSourceSlot returns the slot from which epoch e's boundary block was
// drawn, if recorded.
func (s *Store) EBBSourceSlot(epoch types.Epoch) (types.Slot, bool, error) {
	var v uint64
	ok, err := s.getJSON(keyEBBSourceSlot(epoch), &v)
	return types.Slot(v), ok, err
}

// SetEBBSourceSlot records the slot from which epoch e's boundary block
// was drawn.
func (s *Store) SetEBBSourceSlot(epoch types.Epoch, slot types.Slot) error {
	return s.putJSON(keyEBBSourceSlot(epoch), uint64(slot))
}

// BlockRootBySlot returns the root of the canonical block at slot s, if
// the slot was non-empty.
func (s *Store) BlockRootBySlot(slot types.Slot) (types.Root, bool, error) {
	var r types.Root
	ok, err := s.getJSON(keyBlockBySlot(slot), &r)
	return r, ok, err
}

// SetBlockRoot records the root of the canonical block at slot s.
func (s *Store) SetBlockRoot(slot types.Slot, root types.Root) error {
	return s.putJSON(keyBlockBySlot(slot), root)
}

// Block returns the full block identified by root, if archived.
func (s *Store) Block(root types.Root) (*types.Block, bool, error) {
	var b types.Block
	ok, err := s.getJSON(keyBlockByRoot(root), &b)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &b, true, nil
}

// SetBlock archives the block identified by root.
func (s *Store) SetBlock(root types.Root, block *types.Block) error {
	return s.putJSON(keyBlockByRoot(root), block)
}

// Chain returns the ordered, prefix-closed list of roots from genesis to
// root inclusive, if constructed.
func (s *Store) Chain(root types.Root) ([]types.Root, bool, error) {
	var chain []types.Root
	ok, err := s.getJSON(keyChain(root), &chain)
	return chain, ok, err
}

// SetChain records the chain of roots ending at root.
func (s *Store) SetChain(root types.Root, chain []types.Root) error {
	return s.putJSON(keyChain(root), chain)
}

// FinalityCheckpoints returns the finality checkpoints of the beacon
// state identified by root, if archived.
func (s *Store) FinalityCheckpoints(root types.Root) (*types.FinalityCheckpoints, bool, error) {
	var fc types.FinalityCheckpoints
	ok, err := s.getJSON(keyStateFinalityCheckpoints(root), &fc)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &fc, true, nil
}

// SetFinalityCheckpoints archives the finality checkpoints of the beacon
// state identified by root.
func (s *Store) SetFinalityCheckpoints(root types.Root, fc *types.FinalityCheckpoints) error {
	return s.putJSON(keyStateFinalityCheckpoints(root), fc)
}

// Committees returns the committee assignments active at the beacon
// state identified by root, if archived.
func (s *Store) Committees(root types.Root) ([]types.CommitteeAssignment, bool, error) {
	var committees []types.CommitteeAssignment
	ok, err := s.getJSON(keyStateCommittees(root), &committees)
	return committees, ok, err
}

// SetCommittees archives the committee assignments active at the beacon
// state identified by root.
func (s *Store) SetCommittees(root types.Root, committees []types.CommitteeAssignment) error {
	return s.putJSON(keyStateCommittees(root), committees)
}

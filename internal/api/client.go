// Package api implements the consensus-API adapter of spec §4.2: five
// request operations over the standard beacon-chain HTTP v1/v2 API,
// serialized through a ratelimit.Limiter and retried the way the
// teacher's internal/consensus.Client retries transient failures.
package api

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/watcheth/beaconledger/internal/common"
	"github.com/watcheth/beaconledger/internal/logger"
	"github.com/watcheth/beaconledger/internal/ratelimit"
	"github.com/watcheth/beaconledger/internal/types"
)

// Client is the consensus-API adapter of spec §4.2.
type Client interface {
	// BlockRootBySlot returns the canonical block root at s, or
	// ok=false if the slot is empty.
	BlockRootBySlot(ctx context.Context, s types.Slot) (root types.Root, ok bool, err error)
	// BlockByRoot returns the full block identified by root.
	BlockByRoot(ctx context.Context, root types.Root) (*types.Block, error)
	// StateRootBySlot returns the root of the beacon state as of slot s.
	StateRootBySlot(ctx context.Context, s types.Slot) (types.Root, error)
	// FinalityCheckpoints returns the finality checkpoints of the
	// beacon state as of slot s.
	FinalityCheckpoints(ctx context.Context, s types.Slot) (*types.FinalityCheckpoints, error)
	// Committees returns the committee assignments active at slot s.
	Committees(ctx context.Context, s types.Slot) ([]types.CommitteeAssignment, error)
}

// HTTPClient is the default Client, a thin JSON-over-HTTP adapter in the
// style of the teacher's internal/consensus.ConsensusClient.
type HTTPClient struct {
	endpoint   string
	httpClient *http.Client
	limiter    ratelimit.Limiter
}

// NewHTTPClient builds an adapter against the given beacon-node base URL,
// serializing every request through limiter.
func NewHTTPClient(endpoint string, limiter ratelimit.Limiter) *HTTPClient {
	if limiter == nil {
		limiter = ratelimit.Unlimited{}
	}
	return &HTTPClient{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		httpClient: common.NewHTTPClient(0),
		limiter:    limiter,
	}
}

const (
	maxRetries = 3
	baseDelay  = 100 * time.Millisecond
)

// errNotFound is the sentinel error doGet returns for a 404 response,
// which callers distinguish from a genuine transport/status failure
// wherever the API contract treats "not found" as an expected absence.
var errNotFound = errors.New("not found")

func (c *HTTPClient) doGet(ctx context.Context, path string) ([]byte, error) {
	url := c.endpoint + path
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := baseDelay * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "build request for %s", path)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = errors.Wrapf(err, "request %s", path)
			logger.Debug("request failed (attempt %d/%d) for %s: %v", attempt+1, maxRetries, url, err)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, errNotFound
		}
		if resp.StatusCode != http.StatusOK {
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, path)
			}
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, path)
			logger.Debug("server error (attempt %d/%d) for %s: %v", attempt+1, maxRetries, url, lastErr)
			continue
		}
		if readErr != nil {
			lastErr = errors.Wrapf(readErr, "read response body for %s", path)
			continue
		}
		return body, nil
	}
	return nil, errors.Wrapf(lastErr, "exhausted %d attempts for %s", maxRetries, path)
}

func (c *HTTPClient) BlockRootBySlot(ctx context.Context, s types.Slot) (types.Root, bool, error) {
	body, err := c.doGet(ctx, fmt.Sprintf("/eth/v1/beacon/headers?slot=%d", uint64(s)))
	if errors.Is(err, errNotFound) {
		return types.Root{}, false, nil
	}
	if err != nil {
		return types.Root{}, false, errors.Wrapf(err, "get block root at slot %d", s)
	}

	var resp headersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return types.Root{}, false, errors.Wrapf(err, "decode headers response for slot %d", s)
	}
	if len(resp.Data) == 0 {
		return types.Root{}, false, nil
	}
	root, err := types.RootFromHex(resp.Data[0].Root)
	if err != nil {
		return types.Root{}, false, errors.Wrapf(err, "parse block root at slot %d", s)
	}
	return root, true, nil
}

func (c *HTTPClient) BlockByRoot(ctx context.Context, root types.Root) (*types.Block, error) {
	body, err := c.doGet(ctx, fmt.Sprintf("/eth/v2/beacon/blocks/%s", root))
	if err != nil {
		return nil, errors.Wrapf(err, "get block %s", root)
	}

	var resp blockResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrapf(err, "decode block response for %s", root)
	}
	msg := resp.Data.Message

	slot, err := parseUint(msg.Slot)
	if err != nil {
		return nil, errors.Wrapf(err, "parse slot for block %s", root)
	}
	proposerIndex, err := parseUint(msg.ProposerIndex)
	if err != nil {
		return nil, errors.Wrapf(err, "parse proposer_index for block %s", root)
	}
	parentRoot, err := types.RootFromHex(msg.ParentRoot)
	if err != nil {
		return nil, errors.Wrapf(err, "parse parent_root for block %s", root)
	}
	stateRoot, err := types.RootFromHex(msg.StateRoot)
	if err != nil {
		return nil, errors.Wrapf(err, "parse state_root for block %s", root)
	}

	attestations := make([]types.Attestation, 0, len(msg.Body.Attestations))
	for i, a := range msg.Body.Attestations {
		attSlot, err := parseUint(a.Data.Slot)
		if err != nil {
			return nil, errors.Wrapf(err, "parse attestation[%d].data.slot for block %s", i, root)
		}
		attIndex, err := parseUint(a.Data.Index)
		if err != nil {
			return nil, errors.Wrapf(err, "parse attestation[%d].data.index for block %s", i, root)
		}
		targetEpoch, err := parseUint(a.Data.Target.Epoch)
		if err != nil {
			return nil, errors.Wrapf(err, "parse attestation[%d].data.target.epoch for block %s", i, root)
		}
		targetRoot, err := types.RootFromHex(a.Data.Target.Root)
		if err != nil {
			return nil, errors.Wrapf(err, "parse attestation[%d].data.target.root for block %s", i, root)
		}
		bits, err := hex.DecodeString(strings.TrimPrefix(a.AggregationBits, "0x"))
		if err != nil {
			return nil, errors.Wrapf(err, "parse attestation[%d].aggregation_bits for block %s", i, root)
		}
		attestations = append(attestations, types.Attestation{
			SlotCommittee:       types.Slot(attSlot),
			CommitteeIndex:      types.CommitteeIndex(attIndex),
			AggregationBitfield: bits,
			Target: types.Checkpoint{
				Epoch: types.Epoch(targetEpoch),
				Root:  targetRoot,
			},
		})
	}

	return &types.Block{
		Slot:          types.Slot(slot),
		ProposerIndex: types.ValidatorIndex(proposerIndex),
		ParentRoot:    parentRoot,
		StateRoot:     stateRoot,
		Attestations:  attestations,
	}, nil
}

func (c *HTTPClient) StateRootBySlot(ctx context.Context, s types.Slot) (types.Root, error) {
	body, err := c.doGet(ctx, fmt.Sprintf("/eth/v1/beacon/states/%d/root", uint64(s)))
	if err != nil {
		return types.Root{}, errors.Wrapf(err, "get state root at slot %d", s)
	}
	var resp stateRootResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return types.Root{}, errors.Wrapf(err, "decode state root response for slot %d", s)
	}
	root, err := types.RootFromHex(resp.Data.Root)
	if err != nil {
		return types.Root{}, errors.Wrapf(err, "parse state root at slot %d", s)
	}
	return root, nil
}

func (c *HTTPClient) FinalityCheckpoints(ctx context.Context, s types.Slot) (*types.FinalityCheckpoints, error) {
	body, err := c.doGet(ctx, fmt.Sprintf("/eth/v1/beacon/states/%d/finality_checkpoints", uint64(s)))
	if err != nil {
		return nil, errors.Wrapf(err, "get finality checkpoints at slot %d", s)
	}
	var resp finalityCheckpointsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrapf(err, "decode finality checkpoints response for slot %d", s)
	}

	parse := func(dto checkpointDTO) (types.Checkpoint, error) {
		epoch, err := parseUint(dto.Epoch)
		if err != nil {
			return types.Checkpoint{}, err
		}
		root, err := types.RootFromHex(dto.Root)
		if err != nil {
			return types.Checkpoint{}, err
		}
		return types.Checkpoint{Epoch: types.Epoch(epoch), Root: root}, nil
	}

	previousJustified, err := parse(resp.Data.PreviousJustified)
	if err != nil {
		return nil, errors.Wrapf(err, "parse previous_justified at slot %d", s)
	}
	currentJustified, err := parse(resp.Data.CurrentJustified)
	if err != nil {
		return nil, errors.Wrapf(err, "parse current_justified at slot %d", s)
	}
	finalized, err := parse(resp.Data.Finalized)
	if err != nil {
		return nil, errors.Wrapf(err, "parse finalized at slot %d", s)
	}

	return &types.FinalityCheckpoints{
		PreviousJustified: previousJustified,
		CurrentJustified:  currentJustified,
		Finalized:         finalized,
	}, nil
}

func (c *HTTPClient) Committees(ctx context.Context, s types.Slot) ([]types.CommitteeAssignment, error) {
	body, err := c.doGet(ctx, fmt.Sprintf("/eth/v1/beacon/states/%d/committees", uint64(s)))
	if err != nil {
		return nil, errors.Wrapf(err, "get committees at slot %d", s)
	}
	var resp committeesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrapf(err, "decode committees response for slot %d", s)
	}

	committees := make([]types.CommitteeAssignment, 0, len(resp.Data))
	for i, c := range resp.Data {
		slot, err := parseUint(c.Slot)
		if err != nil {
			return nil, errors.Wrapf(err, "parse committee[%d].slot at slot %d", i, s)
		}
		index, err := parseUint(c.Index)
		if err != nil {
			return nil, errors.Wrapf(err, "parse committee[%d].index at slot %d", i, s)
		}
		validators := make([]types.ValidatorIndex, len(c.Validators))
		for j, v := range c.Validators {
			vi, err := parseUint(v)
			if err != nil {
				return nil, errors.Wrapf(err, "parse committee[%d].validators[%d] at slot %d", i, j, s)
			}
			validators[j] = types.ValidatorIndex(vi)
		}
		committees = append(committees, types.CommitteeAssignment{
			Slot:       types.Slot(slot),
			Index:      types.CommitteeIndex(index),
			Validators: validators,
		})
	}
	return committees, nil
}

func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

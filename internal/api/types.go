package api

// Wire response envelopes for the five consensus-API operations of spec
// §4.2 / §6. These mirror the teacher's internal/consensus response
// structs (string-encoded integers, nested "data" envelopes) rather than
// attestantio/go-eth2-client's provider types, since the adapter here
// drives its own retry/rate-limit discipline on top of plain net/http.

type headersResponse struct {
	Data []struct {
		Root   string `json:"root"`
		Header struct {
			Message struct {
				Slot          string `json:"slot"`
				ProposerIndex string `json:"proposer_index"`
				ParentRoot    string `json:"parent_root"`
				StateRoot     string `json:"state_root"`
			} `json:"message"`
		} `json:"header"`
	} `json:"data"`
}

type blockResponse struct {
	Data struct {
		Message struct {
			Slot          string `json:"slot"`
			ProposerIndex string `json:"proposer_index"`
			ParentRoot    string `json:"parent_root"`
			StateRoot     string `json:"state_root"`
			Body          struct {
				Attestations []struct {
					AggregationBits string `json:"aggregation_bits"`
					Data            struct {
						Slot   string `json:"slot"`
						Index  string `json:"index"`
						Target struct {
							Epoch string `json:"epoch"`
							Root  string `json:"root"`
						} `json:"target"`
					} `json:"data"`
				} `json:"attestations"`
			} `json:"body"`
		} `json:"message"`
	} `json:"data"`
}

type stateRootResponse struct {
	Data struct {
		Root string `json:"root"`
	} `json:"data"`
}

type finalityCheckpointsResponse struct {
	Data struct {
		PreviousJustified checkpointDTO `json:"previous_justified"`
		CurrentJustified  checkpointDTO `json:"current_justified"`
		Finalized         checkpointDTO `json:"finalized"`
	} `json:"data"`
}

type checkpointDTO struct {
	Epoch string `json:"epoch"`
	Root  string `json:"root"`
}

type committeesResponse struct {
	Data []struct {
		Index      string   `json:"index"`
		Slot       string   `json:"slot"`
		Validators []string `json:"validators"`
	} `json:"data"`
}

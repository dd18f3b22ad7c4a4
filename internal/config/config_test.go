// Copyright © 2025 Attestant Limited.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitGetInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval string
		expected time.Duration
	}{
		{name: "valid duration string", interval: "5s", expected: 5 * time.Second},
		{name: "valid duration with minutes", interval: "2m30s", expected: 2*time.Minute + 30*time.Second},
		{name: "invalid duration string returns default", interval: "invalid", expected: time.Second},
		{name: "empty duration string returns default", interval: "", expected: time.Second},
		{name: "milliseconds", interval: "500ms", expected: 500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := RateLimit{Interval: tt.interval}
			assert.Equal(t, tt.expected, rl.GetInterval())
		})
	}
}

func TestRateLimitGetTokens(t *testing.T) {
	tests := []struct {
		name     string
		tokens   int
		expected int
	}{
		{name: "positive tokens kept as-is", tokens: 5, expected: 5},
		{name: "zero tokens defaults to one", tokens: 0, expected: 1},
		{name: "negative tokens defaults to one", tokens: -3, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := RateLimit{Tokens: tt.tokens}
			assert.Equal(t, tt.expected, rl.GetTokens())
		})
	}
}

func TestConfigGetDBPath(t *testing.T) {
	assert.Equal(t, "./beaconledger.db", (&Config{}).GetDBPath())
	assert.Equal(t, "/data/chain.db", (&Config{DBPath: "/data/chain.db"}).GetDBPath())
}

func TestConfigGetQuorums(t *testing.T) {
	assert.Equal(t, []float64{2.0 / 3.0}, (&Config{}).GetQuorums())
	assert.Equal(t, []float64{0.51, 0.9}, (&Config{Quorum: []float64{0.51, 0.9}}).GetQuorums())
}

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

import "time"

// Config is the mapstructure-tagged root of beaconledger.yml / env
// overrides, per spec §6 External Interfaces.
type Config struct {
	DBPath    string    `mapstructure:"db_path"`
	RPCURL    string    `mapstructure:"rpc_url"`
	MinSlot   uint64    `mapstructure:"min_slot"`
	MaxSlot   uint64    `mapstructure:"max_slot"`
	Quorum    []float64 `mapstructure:"quorum"`
	RateLimit RateLimit `mapstructure:"rate_limit"`
}

// RateLimit holds the token-bucket parameters for the archiver's HTTP
// adapter (spec §4.2 Transport discipline).
type RateLimit struct {
	Tokens   int    `mapstructure:"tokens"`
	Interval string `mapstructure:"interval"`
}

// GetInterval parses Interval, falling back to a conservative default if
// it is empty or malformed rather than failing config load outright.
func (r RateLimit) GetInterval() time.Duration {
	duration, err := time.ParseDuration(r.Interval)
	if err != nil {
		return time.Second
	}
	return duration
}

// GetTokens returns Tokens, defaulting to a single in-flight request when
// unset.
func (r RateLimit) GetTokens() int {
	if r.Tokens <= 0 {
		return 1
	}
	return r.Tokens
}

// GetDBPath defaults to a local directory when unset.
func (c *Config) GetDBPath() string {
	if c.DBPath == "" {
		return "./beaconledger.db"
	}
	return c.DBPath
}

// GetQuorums defaults to the single quorum fraction 2/3 when unset.
func (c *Config) GetQuorums() []float64 {
	if len(c.Quorum) == 0 {
		return []float64{2.0 / 3.0}
	}
	return c.Quorum
}

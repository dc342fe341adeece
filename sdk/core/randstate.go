// Copyright 2025 Zintix Labs
//
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

package core

import "github.com/zintix-labs/enrichlab/errs"

const (
	// Lehmer 全週期乘數與模數 (2^31 - 1)。
	lehmerMultiplier int64 = 1259650050
	lehmerModulus    int64 = 2147483647

	// SeedMin / SeedMax 為 RandomState 合法種子範圍。
	// 0 與 modulus 本身是 Lehmer 走訪的不動點，必須排除。
	SeedMin int64 = 1
	SeedMax int64 = lehmerModulus - 1
)

// RandomState 是呼叫端持有的種子狀態。
//
// 設計拆成兩層：
//   - 種子走訪（seed walk）：每個 trial 固定走一步 Lehmer，
//     seed <- seed * 1259650050 mod (2^31 - 1)。
//     乘數是模數的原根，因此走訪為全週期（不重複、不落入 0）。
//   - 子串流（substream）：trial 內所有取樣由「走步前」的 seed
//     派生出的 SplitMix64 供應。
//
// 這讓「P 個 trial 之後的 seed」成為 (初始 seed, P) 的純函數，
// 與每個 trial 實際消耗多少亂數完全無關。
type RandomState struct {
	seed int64
}

// NewRandomState 以指定 seed 建立 RandomState。
// seed 必須落在 [SeedMin, SeedMax]，否則回傳 Warn 級錯誤。
func NewRandomState(seed int64) (*RandomState, error) {
	if seed < SeedMin || seed > SeedMax {
		return nil, errs.Warnf("seed must be in [%d, %d], got %d", SeedMin, SeedMax, seed)
	}
	return &RandomState{seed: seed}, nil
}

// Seed 回傳當前種子。
func (rs *RandomState) Seed() int64 {
	return rs.seed
}

// Substream 由當前種子派生一條 SplitMix64 子串流，不推進種子。
func (rs *RandomState) Substream() *SplitMix64 {
	return Substream(rs.seed)
}

// NextSubstream 由當前種子派生子串流，然後把種子走一步。
// 每個 permutation trial 呼叫一次。
func (rs *RandomState) NextSubstream() *SplitMix64 {
	sub := Substream(rs.seed)
	rs.advance()
	return sub
}

// Advance 只走一步種子，不派生串流。
func (rs *RandomState) Advance() {
	rs.advance()
}

func (rs *RandomState) advance() {
	// seed < 2^31 且乘數 < 2^31，乘積必小於 2^62，int64 不會溢位。
	rs.seed = (rs.seed * lehmerMultiplier) % lehmerModulus
}

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

package enrichlab

import (
	"math"

	"github.com/zintix-labs/enrichlab/spec"
)

// Result 是一次 enrichment 分析的最終紀錄。
//
// 建立後不再修改。SetID / SetRank 為可空欄位：
//   - SetID 在 sample set 沒有對外識別編號時保持 nil。
//   - SetRank 在跨 set 排名尚未指派時保持 nil。
//
// 數值欄位使用哨兵而非指標：未計算的 ES / NES 為 NaN，ESRank 為 -1。
type Result struct {
	SetID   *spec.SetID
	SetRank *int
	ES      float64
	ESRank  int
	NES     float64
}

// DefaultResult 回傳「尚未分析」的 Result：
// 可空欄位未設、ES / NES 為 NaN、ESRank 為 -1。
func DefaultResult() *Result {
	return &Result{
		ES:     math.NaN(),
		ESRank: -1,
		NES:    math.NaN(),
	}
}

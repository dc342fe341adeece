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
	"io"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/enrichlab/sdk/calc"
	"github.com/zintix-labs/enrichlab/sdk/core"
	"github.com/zintix-labs/enrichlab/stats"
)

// permute 跑 P 個 permutation trial，回傳 null 分布。
//
// 每個 trial：
//  1. 由 rng 派生子串流並推進種子一步。
//  2. 複製真實的排名後標記序列，Fisher-Yates 洗亂。
//  3. 以相同權重重算 running-sum，收入 ES。
//
// 洗亂不改變成員數量，但加權走訪下成員可能全部落在零權重位置，
// 使該組權重總和為 0。這種 trial 記 ES = 0（落入正 pool，與零值
// 收池規則一致），保證兩個 pool 合計恰為 P 個值。
func (a *Analyzer) permute(membRanked []int, wHit []float64, wMiss []float64, rng *core.RandomState, showpb bool) *stats.NullDist {
	perms := a.cfg.Perms
	nd := stats.NewNullDist(perms)

	shuffled := make([]int, len(membRanked))

	bar := pb.StartNew(perms)
	if !showpb {
		bar.SetWriter(io.Discard)
	}
	for t := 0; t < perms; t++ {
		c := core.New(rng.NextSubstream())
		copy(shuffled, membRanked)
		c.ShuffleInts(shuffled)

		wr, err := calc.RunningSum(shuffled, wHit, wMiss)
		if err != nil {
			// 權重總和為 0 的 trial：走訪無法歸一化，ES 記 0。
			nd.Add(0)
			bar.Increment()
			continue
		}
		nd.Add(wr.ES)
		bar.Increment()
	}
	bar.Finish()

	return nd
}

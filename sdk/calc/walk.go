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

package calc

import "math"

// WalkResult 是一次 running-sum 走訪的結果。
type WalkResult struct {
	// ES 為走訪過程中絕對值最大的 running-sum 值，保留正負號。
	ES float64
	// ESRank 為該極值出現的排名位置（0-based）。
	ESRank int
}

// RunningSum 對「已排名」的成員標記序列做加權 Kolmogorov-Smirnov 式走訪。
//
// labels[i] 為排名第 i 位樣本的成員標記（1 = 成員，0 = 非成員）。
// wHit / wMiss 為各位置的步進權重；傳 nil 代表等權（經典 unweighted 統計量）。
//
// 規則：
//   - 成員步進 +w/totalHit，非成員步進 -w/totalMiss，
//     兩組各自以其權重總和歸一化，走完整條序列時 running sum 回到 0（數值誤差內）。
//   - ES 取絕對值嚴格最大者；同絕對值時保留最早出現的位置。
//   - 任一組為空、或任一組權重總和為 0，回傳 ErrDegenerateSet。
//   - 權重長度與 labels 不一致回傳 ErrInvalidInput。
func RunningSum(labels []int, wHit []float64, wMiss []float64) (WalkResult, error) {
	n := len(labels)
	if n == 0 {
		return WalkResult{ESRank: -1}, invalidInputf("walk: empty labels")
	}
	if wHit != nil && len(wHit) != n {
		return WalkResult{ESRank: -1}, invalidInputf("walk: hit weights length mismatch: labels=%d weights=%d", n, len(wHit))
	}
	if wMiss != nil && len(wMiss) != n {
		return WalkResult{ESRank: -1}, invalidInputf("walk: miss weights length mismatch: labels=%d weights=%d", n, len(wMiss))
	}

	var totalHit, totalMiss float64
	var nHit, nMiss int
	for i, l := range labels {
		if l != 0 {
			nHit++
			if wHit != nil {
				totalHit += wHit[i]
			}
		} else {
			nMiss++
			if wMiss != nil {
				totalMiss += wMiss[i]
			}
		}
	}
	if nHit == 0 || nMiss == 0 {
		return WalkResult{ESRank: -1}, degeneratef("walk: set is degenerate: members=%d nonmembers=%d", nHit, nMiss)
	}
	if wHit == nil {
		totalHit = float64(nHit)
	}
	if wMiss == nil {
		totalMiss = float64(nMiss)
	}
	if totalHit <= 0 || totalMiss <= 0 {
		return WalkResult{ESRank: -1}, degeneratef("walk: weight totals must be > 0: hit=%v miss=%v", totalHit, totalMiss)
	}

	var sum, es float64
	rank := -1
	for i, l := range labels {
		if l != 0 {
			step := 1.0
			if wHit != nil {
				step = wHit[i]
			}
			sum += step / totalHit
		} else {
			step := 1.0
			if wMiss != nil {
				step = wMiss[i]
			}
			sum -= step / totalMiss
		}
		// 嚴格大於：同絕對值時保留最早出現的極值位置。
		if math.Abs(sum) > math.Abs(es) {
			es = sum
			rank = i
		}
	}
	return WalkResult{ES: es, ESRank: rank}, nil
}

// Weights 以 |metric|^exponent 產生走訪權重。
// exponent == 0 回傳 nil，代表等權走訪。
func Weights(metric []float64, exponent float64) []float64 {
	if exponent == 0 {
		return nil
	}
	w := make([]float64, len(metric))
	for i, m := range metric {
		w[i] = math.Pow(math.Abs(m), exponent)
	}
	return w
}

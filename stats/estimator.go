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

package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// 信賴區間
type CI struct {
	Lo float64 `json:"Lo"`
	Hi float64 `json:"Hi"`
}

// PointStat 點估計 回傳 估計值 以及信賴區間
type PointStat struct {
	Hat float64 `json:"Hat"`
	CI  CI      `json:"CI"`
}

// PoolSummary 描述單一 null pool 的分布。
type PoolSummary struct {
	N    int     `json:"N"`
	Mean float64 `json:"Mean"`
	Std  float64 `json:"Std"`
}

// NullSummary 描述正負兩個 null pool。
type NullSummary struct {
	Pos PoolSummary `json:"Pos"`
	Neg PoolSummary `json:"Neg"`
}

// Significance 為 observed NES 的經驗顯著性估計。
//
// 經驗 p-value = 同號 null NES 中，絕對值 >= |observed NES| 的比例（K/N）。
type Significance struct {
	PValue PointStat `json:"PValue"`
	K      int       `json:"K"`
	N      int       `json:"N"`
}

// SummarizeNull 以 gonum 計算兩個 pool 的平均與標準差。
func SummarizeNull(nd *NullDist) NullSummary {
	return NullSummary{
		Pos: summarizePool(nd.Pos),
		Neg: summarizePool(nd.Neg),
	}
}

func summarizePool(vals []float64) PoolSummary {
	s := PoolSummary{N: len(vals)}
	if len(vals) == 0 {
		return s
	}
	s.Mean = stat.Mean(vals, nil)
	if len(vals) > 1 {
		s.Std = stat.StdDev(vals, nil)
	}
	return s
}

// EstimateSignificance 以同號 null NES 估計經驗 p-value，
// 並附上 Clopper-Pearson 精確信賴區間。
//
// observed NES 為 NaN（normalization 失敗）時，Hat 為 NaN、CI 為 [0,1]。
func EstimateSignificance(obsNES float64, nullNES []float64, confidence float64) Significance {
	if math.IsNaN(obsNES) {
		return Significance{PValue: PointStat{Hat: math.NaN(), CI: CI{Lo: 0, Hi: 1}}}
	}

	mag := math.Abs(obsNES)
	k, n := 0, 0
	for _, v := range nullNES {
		if (obsNES >= 0) != (v >= 0) {
			continue
		}
		n++
		if math.Abs(v) >= mag {
			k++
		}
	}
	hat, ci := proportionCICP(k, n, confidence)
	return Significance{
		PValue: PointStat{Hat: hat, CI: ci},
		K:      k,
		N:      n,
	}
}

// Clopper–Pearson exact CI for binomial proportion (k successes out of n)
func proportionCICP(k int, n int, confidence float64) (pHat float64, ci CI) {
	if n == 0 {
		return 0, CI{0, 1}
	}
	alpha := 1 - confidence
	pHat = float64(k) / float64(n)

	// Beta PPF 映射，處理邊界
	if k == 0 {
		ci.Lo = 0
	} else {
		b := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
		ci.Lo = b.Quantile(alpha / 2)
	}
	if k == n {
		ci.Hi = 1
	} else {
		b := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
		ci.Hi = b.Quantile(1 - alpha/2)
	}
	return
}

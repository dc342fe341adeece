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

// Package calc 提供 enrichment 計算的純函數核心：
// 排名（normalized ranking）與 running-sum 走訪。
//
// 本包不持有任何狀態、不碰亂數，所有函數對相同輸入回傳位元級相同的結果。
package calc

import (
	"errors"
	"math"
	"sort"

	"github.com/zintix-labs/enrichlab/errs"
)

// 哨兵錯誤。對外以 errors.Is 判斷類別，訊息細節由 errs.E 承載。
var (
	// ErrInvalidInput 輸入長度不一致、空輸入或非法 size factor。
	ErrInvalidInput = errors.New("invalid input")
	// ErrDegenerateSet 成員組或非成員組為空，走訪無法歸一化。
	ErrDegenerateSet = errors.New("degenerate set")
)

func invalidInputf(format string, a ...any) *errs.E {
	e := errs.Warnf(format, a...)
	e.Cause = ErrInvalidInput
	return e
}

func degeneratef(format string, a ...any) *errs.E {
	e := errs.Warnf(format, a...)
	e.Cause = ErrDegenerateSet
	return e
}

// RankDesc 以 observation[i]/sizeFactor[i] 由大到小排序，回傳索引順序。
// 同分以原始索引由小到大決勝，保證排序穩定可重現。
//
// 規則：
//   - len(obs) 必須等於 len(sizeFactor) 且不得為空。
//   - 所有 size factor 必須 > 0（除以零或負值沒有意義）。
//   - 輸入不被修改。
func RankDesc(obs []float64, sizeFactor []float64) ([]int, error) {
	n := len(obs)
	if n == 0 {
		return nil, invalidInputf("rank: empty observations")
	}
	if len(sizeFactor) != n {
		return nil, invalidInputf("rank: length mismatch: obs=%d size_factor=%d", n, len(sizeFactor))
	}

	metric := make([]float64, n)
	for i := range obs {
		sf := sizeFactor[i]
		if sf <= 0 || math.IsNaN(sf) {
			return nil, invalidInputf("rank: size factor must be > 0 at index %d, got %v", i, sf)
		}
		metric[i] = obs[i] / sf
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if metric[ia] != metric[ib] {
			return metric[ia] > metric[ib]
		}
		return ia < ib
	})
	return order, nil
}

// NormalizedMetric 回傳 obs[i]/sizeFactor[i]（不排序）。
// 與 RankDesc 相同的輸入檢查。
func NormalizedMetric(obs []float64, sizeFactor []float64) ([]float64, error) {
	n := len(obs)
	if n == 0 {
		return nil, invalidInputf("metric: empty observations")
	}
	if len(sizeFactor) != n {
		return nil, invalidInputf("metric: length mismatch: obs=%d size_factor=%d", n, len(sizeFactor))
	}
	out := make([]float64, n)
	for i := range obs {
		sf := sizeFactor[i]
		if sf <= 0 || math.IsNaN(sf) {
			return nil, invalidInputf("metric: size factor must be > 0 at index %d, got %v", i, sf)
		}
		out[i] = obs[i] / sf
	}
	return out, nil
}

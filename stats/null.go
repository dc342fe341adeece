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
	"errors"
	"math"

	"github.com/zintix-labs/enrichlab/errs"
	"gonum.org/v1/gonum/stat"
)

// ErrEmptyNullPool 表示 normalization 需要的同號 null pool 為空。
var ErrEmptyNullPool = errors.New("empty null pool")

func emptyPoolf(format string, a ...any) *errs.E {
	e := errs.Warnf(format, a...)
	e.Cause = ErrEmptyNullPool
	return e
}

// NullDist 收集 permutation trial 的 enrichment score。
//
// Vals 保留 trial 原始順序；Pos / Neg 為依正負號拆開的兩個 pool。
// 剛好等於 0 的 ES 歸入正 pool（es >= 0 → Pos），這是固定約定。
type NullDist struct {
	Vals []float64 `json:"Vals"`
	Pos  []float64 `json:"Pos"`
	Neg  []float64 `json:"Neg"`
}

// NewNullDist 以預期 trial 數建立 NullDist。
func NewNullDist(perms int) *NullDist {
	if perms < 0 {
		perms = 0
	}
	return &NullDist{
		Vals: make([]float64, 0, perms),
		Pos:  make([]float64, 0, perms),
		Neg:  make([]float64, 0, perms),
	}
}

// Add 收入一個 trial ES。
func (nd *NullDist) Add(es float64) {
	nd.Vals = append(nd.Vals, es)
	if es >= 0 {
		nd.Pos = append(nd.Pos, es)
	} else {
		nd.Neg = append(nd.Neg, es)
	}
}

// Len 回傳已收入的 trial 數。
func (nd *NullDist) Len() int {
	return len(nd.Vals)
}

// Normalize 把 observed ES 與每個 null ES 轉成 NES。
//
// 約定：
//   - NES = ES / |mean(同號 pool)|。
//   - 每個 null ES 以「它自己所屬 pool」的平均歸一化，平均包含它本身，
//     不做 leave-one-out 修正。
//   - observed ES 同號 pool 為空（或 pool 平均為 0）時，
//     回傳 NaN 與 ErrEmptyNullPool 類別的錯誤，永不 panic。
//
// 回傳值依序為：observed NES、與 Vals 同順序的 null NES、錯誤。
func (nd *NullDist) Normalize(obsES float64) (float64, []float64, error) {
	meanPos := math.NaN()
	meanNeg := math.NaN()
	if len(nd.Pos) > 0 {
		meanPos = stat.Mean(nd.Pos, nil)
	}
	if len(nd.Neg) > 0 {
		meanNeg = stat.Mean(nd.Neg, nil)
	}

	scale := func(es float64) float64 {
		if es >= 0 {
			return es / math.Abs(meanPos)
		}
		return es / math.Abs(meanNeg)
	}

	if obsES >= 0 {
		if len(nd.Pos) == 0 {
			return math.NaN(), nil, emptyPoolf("normalize: positive null pool is empty (perms=%d)", nd.Len())
		}
		if meanPos == 0 {
			return math.NaN(), nil, emptyPoolf("normalize: positive null pool mean is zero")
		}
	} else {
		if len(nd.Neg) == 0 {
			return math.NaN(), nil, emptyPoolf("normalize: negative null pool is empty (perms=%d)", nd.Len())
		}
	}

	nullNES := make([]float64, len(nd.Vals))
	for i, es := range nd.Vals {
		nullNES[i] = scale(es)
	}
	return scale(obsES), nullNES, nil
}

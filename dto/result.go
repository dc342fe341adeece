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

// Package dto 定義對外（HTTP）的序列化結構，
// 隔離引擎內部型別與網路協議。
package dto

import (
	"math"

	"github.com/zintix-labs/enrichlab"
	"github.com/zintix-labs/enrichlab/errs"
	"github.com/zintix-labs/enrichlab/stats"
)

// ResultDTO 為對外輸出的 Result 序列化結構。
//
// JSON 無法承載 NaN，因此數值欄位採用指標：
// 未計算的 ES / NES 輸出為 null，ESRank 維持 -1 哨兵。
type ResultDTO struct {
	SetID   *int64   `json:"set_id,omitempty"`   // sample set 對外編號（未指定時省略）
	SetRank *int     `json:"set_rank,omitempty"` // 跨 set 排名（未指派時省略）
	ES      *float64 `json:"es"`                 // enrichment score
	ESRank  int      `json:"es_rank"`            // ES 出現的排名位置（-1 = 未計算）
	NES     *float64 `json:"nes"`                // normalized enrichment score
}

// EnrichResponse 為 /v1/enrich 的完整回應。
type EnrichResponse struct {
	Result  ResultDTO            `json:"result"`
	Summary *stats.SummaryReport `json:"summary,omitempty"`
	NullNES []float64            `json:"null_nes,omitempty"`
	Pool    *stats.NullSummary   `json:"pool,omitempty"`
}

// NewResultDTO 將引擎的 Result 轉為序列化結構。
func NewResultDTO(res *enrichlab.Result) (ResultDTO, error) {
	if res == nil {
		return ResultDTO{}, errs.NewWarn("result is nil")
	}

	dto := ResultDTO{
		ES:     finitePtr(res.ES),
		ESRank: res.ESRank,
		NES:    finitePtr(res.NES),
	}
	if res.SetID != nil {
		id := int64(*res.SetID)
		dto.SetID = &id
	}
	if res.SetRank != nil {
		rank := *res.SetRank
		dto.SetRank = &rank
	}
	return dto, nil
}

// NewEnrichResponse 組裝完整回應。rep 可為 nil（部分結果）。
func NewEnrichResponse(res *enrichlab.Result, rep *stats.RunReport) (*EnrichResponse, error) {
	r, err := NewResultDTO(res)
	if err != nil {
		return nil, err
	}
	out := &EnrichResponse{Result: r}
	if rep != nil {
		rep.Done()
		out.Summary = rep.Summary
		out.NullNES = rep.Null.NES
		pool := rep.Null.Pool
		out.Pool = &pool
	}
	return out, nil
}

func finitePtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

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

// Package enrichlab 提供 sample set enrichment 分析引擎的「組裝入口（assembler）」。
//
// 你可以把 Enrichlab 視為一個「可被後端/批次工具使用的分析 runtime」，它把下列地基組裝在一起：
//  1. AnalysisConfig：分析設定（permutation 次數、走訪權重指數）。
//  2. RandomState：呼叫端持有的種子狀態，保證可重現（reproducible）與可審計（auditable）。
//  3. 純函數核心（sdk/calc）：排名與 running-sum 走訪。
//
// 分析流程（一次 Run）：
//   - Ranking：樣本依 observation/size_factor 由大到小排名。
//   - Observed walk：對真實成員標記做 running-sum，取得 enrichment score（ES）。
//   - Permutation：P 個 trial，每個 trial 洗亂成員標記重算 ES，累積 null 分布。
//   - Normalization：ES 除以同號 null pool 平均的絕對值，得到 NES；
//     null 分布本身也以相同規則轉成 null NES。
//   - Significance：同號 null NES 的經驗 p-value（stats 層）。
//
// 設計重點：
//   - 種子走訪與取樣分離：每個 trial 固定推進一步種子，trial 內的取樣
//     來自由該種子派生的子串流。P 個 trial 後的種子只取決於初始種子與 P。
//   - Enrichlab 本身不綁定任何「檔案路徑」概念：向量與設定由呼叫端注入。
//
// 典型使用情境：
//   - 後端服務（HTTP）：由 server 套件接收向量，交給 Analyzer 執行並回傳 DTO。
//   - 批次分析：對多個 sample set 依序建立 Analyzer 執行。
package enrichlab

import (
	"crypto/rand"
	"math/big"

	"github.com/zintix-labs/enrichlab/errs"
	"github.com/zintix-labs/enrichlab/sdk/calc"
	"github.com/zintix-labs/enrichlab/sdk/core"
	"github.com/zintix-labs/enrichlab/spec"
	"github.com/zintix-labs/enrichlab/stats"
)

// Analyzer 是「組裝器（assembler）」：持有一份分析設定，
// 對注入的向量執行完整的 enrichment 流程。
//
// Analyzer 不持有亂數狀態；RandomState 由呼叫端建立並傳入 Run，
// 這讓同一個 Analyzer 可以安全地被多次使用，而種子生命週期完全可追溯。
type Analyzer struct {
	cfg *spec.AnalysisConfig
}

// New 建立一個 Analyzer。cfg 為 nil 時使用套件預設設定。
func New(cfg *spec.AnalysisConfig) (*Analyzer, error) {
	if cfg == nil {
		cfg = spec.DefaultAnalysisConfig()
	}
	if cfg.Perms < 0 {
		return nil, errs.NewWarn("perms must be >= 0")
	}
	return &Analyzer{cfg: cfg}, nil
}

// Config 回傳持有的設定。
func (a *Analyzer) Config() *spec.AnalysisConfig {
	return a.cfg
}

// Run 對一組向量執行完整分析。
//
// 參數：
//   - obs / sizeFactor：每個樣本的觀測值與歸一化因子，長度必須一致。
//   - membership：每個樣本的成員標記（1 = 屬於 sample set）。
//   - rng：呼叫端持有的種子狀態；Run 會推進它 P 步。
//   - showpb：是否顯示 permutation 進度條。
//
// 回傳：
//   - Result：不可變的最終紀錄。normalization 失敗時 NES 為 NaN，
//     同時回傳 ErrEmptyNullPool 類別的錯誤（Result 仍帶有 observed ES）。
//   - RunReport：完整報告（null NES、pool 摘要、顯著性）。失敗時為 nil。
func (a *Analyzer) Run(obs []float64, sizeFactor []float64, membership []int, rng *core.RandomState, showpb bool) (*Result, *stats.RunReport, error) {
	if rng == nil {
		return nil, nil, errs.NewWarn("random state required")
	}
	if len(membership) != len(obs) {
		return nil, nil, errs.NewWarn("membership length must match observations")
	}

	metric, err := calc.NormalizedMetric(obs, sizeFactor)
	if err != nil {
		return nil, nil, err
	}
	order, err := calc.RankDesc(obs, sizeFactor)
	if err != nil {
		return nil, nil, err
	}

	n := len(order)
	metricRanked := make([]float64, n)
	membRanked := make([]int, n)
	members := 0
	for pos, idx := range order {
		metricRanked[pos] = metric[idx]
		membRanked[pos] = membership[idx]
		if membership[idx] != 0 {
			members++
		}
	}

	// 權重是位置的函數：permutation 洗亂的是標記，不是權重。
	wHit := calc.Weights(metricRanked, a.cfg.WeightHit)
	wMiss := calc.Weights(metricRanked, a.cfg.WeightMiss)

	obsWalk, err := calc.RunningSum(membRanked, wHit, wMiss)
	if err != nil {
		return nil, nil, err
	}

	initSeed := rng.Seed()
	nd := a.permute(membRanked, wHit, wMiss, rng, showpb)
	finalSeed := rng.Seed()

	res := DefaultResult()
	res.ES = obsWalk.ES
	res.ESRank = obsWalk.ESRank
	if a.cfg.SetID != 0 {
		id := a.cfg.SetID
		res.SetID = &id
	}

	nes, nullNES, err := nd.Normalize(obsWalk.ES)
	if err != nil {
		// NES 維持 NaN，observed ES 仍然有效。
		return res, nil, err
	}
	res.NES = nes

	sum := &stats.SummaryReport{
		SetName:    a.cfg.SetName,
		SetID:      a.cfg.SetID,
		Samples:    n,
		Members:    members,
		NonMembers: n - members,
		Perms:      a.cfg.Perms,
		InitSeed:   initSeed,
		FinalSeed:  finalSeed,
		ES:         obsWalk.ES,
		ESRank:     obsWalk.ESRank,
		NES:        nes,
	}
	report := stats.NewRunReport(sum, nullNES, nd)
	report.Done()

	return res, report, nil
}

// MintSeed 以 crypto/rand 產生一個落在合法範圍的初始種子。
// 呼叫端沒有指定種子時使用。
func MintSeed() (int64, error) {
	span := big.NewInt(core.SeedMax - core.SeedMin + 1)
	v, err := rand.Int(rand.Reader, span)
	if err != nil {
		return 0, errs.Wrap(err, "mint seed failed")
	}
	return core.SeedMin + v.Int64(), nil
}

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

package dto

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/zintix-labs/enrichlab/errs"
	"github.com/zintix-labs/enrichlab/spec"
)

type EnrichRequest struct {
	SetName     string     `json:"set_name"`               // sample set 名稱
	SetID       spec.SetID `json:"set_id,omitempty"`       // sample set 對外編號（0 = 未指定）
	Perms       *int       `json:"perms,omitempty"`        // permutation 次數（缺省走預設）
	WeightHit   *float64   `json:"weight_hit,omitempty"`   // 成員步長指數（缺省走預設）
	WeightMiss  *float64   `json:"weight_miss,omitempty"`  // 非成員步長指數（缺省走預設）
	Seed        *int64     `json:"seed,omitempty"`         // 初始種子（缺省由服務端鑄造）
	Obs         []float64  `json:"obs"`                    // 每個樣本的觀測值
	SizeFactors []float64  `json:"size_factors,omitempty"` // 歸一化因子（缺省全 1）
	Membership  []int      `json:"membership"`             // 成員標記（1 = 屬於 sample set）
}

// DecodeEnrichRequest 把 HTTP 請求解碼成 EnrichRequest。
//
// 支援：
//   - GET：從 query string 讀取參數，向量以逗號分隔
//     （set/set_id/perms/weight_hit/weight_miss/seed/obs/size_factors/membership）。
//     GET 只建議用於小向量的測試；正式呼叫請走 POST。
//   - POST：從 JSON body 反序列化。
//
// 這裡只負責解碼與基本型別轉換，不做分析合法性校驗；
// 長度一致性與 size factor 正值檢查由引擎層決定。
//
// POST 對 body 做大小限制（預設 8MiB），並開啟 DisallowUnknownFields()
// 對未知欄位嚴格拒絕，避免靜默丟資料。
func DecodeEnrichRequest(r *http.Request) (*EnrichRequest, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}

	req := new(EnrichRequest)

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req.SetName = q.Get("set")

		if s := q.Get("set_id"); s != "" {
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, errs.NewWarn(fmt.Sprintf("invalid set_id: %v", err))
			}
			req.SetID = spec.SetID(v)
		}

		if s := q.Get("perms"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return nil, errs.NewWarn(fmt.Sprintf("invalid perms: %v", err))
			}
			req.Perms = &v
		}

		if s := q.Get("weight_hit"); s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, errs.NewWarn(fmt.Sprintf("invalid weight_hit: %v", err))
			}
			req.WeightHit = &v
		}

		if s := q.Get("weight_miss"); s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, errs.NewWarn(fmt.Sprintf("invalid weight_miss: %v", err))
			}
			req.WeightMiss = &v
		}

		if s := q.Get("seed"); s != "" {
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, errs.NewWarn(fmt.Sprintf("invalid seed: %v", err))
			}
			req.Seed = &v
		}

		if s := q.Get("obs"); s != "" {
			vs, err := splitFloats(s)
			if err != nil {
				return nil, errs.NewWarn(fmt.Sprintf("invalid obs: %v", err))
			}
			req.Obs = vs
		}

		if s := q.Get("size_factors"); s != "" {
			vs, err := splitFloats(s)
			if err != nil {
				return nil, errs.NewWarn(fmt.Sprintf("invalid size_factors: %v", err))
			}
			req.SizeFactors = vs
		}

		if s := q.Get("membership"); s != "" {
			vs, err := splitInts(s)
			if err != nil {
				return nil, errs.NewWarn(fmt.Sprintf("invalid membership: %v", err))
			}
			req.Membership = vs
		}

		return req, nil

	case http.MethodPost:
		// 向量可能很大，但仍需擋住異常 body（預設 8MiB）
		const maxBody = 8 << 20
		body := io.LimitReader(r.Body, maxBody)
		dec := json.NewDecoder(body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(req); err != nil {
			return nil, errs.NewWarn(fmt.Sprintf("invalid json: %v", err))
		}
		return req, nil

	default:
		return nil, errs.NewWarn("method not allowed")
	}
}

// Config 以套件預設為底，疊上請求中有提供的欄位。
func (er *EnrichRequest) Config() *spec.AnalysisConfig {
	cfg := spec.DefaultAnalysisConfig()
	cfg.SetName = er.SetName
	cfg.SetID = er.SetID
	if er.Perms != nil {
		cfg.Perms = *er.Perms
	}
	if er.WeightHit != nil {
		cfg.WeightHit = *er.WeightHit
	}
	if er.WeightMiss != nil {
		cfg.WeightMiss = *er.WeightMiss
	}
	return cfg
}

// Vectors 回傳分析輸入向量。size factor 缺省時補全 1。
func (er *EnrichRequest) Vectors() (obs []float64, sizeFactor []float64, membership []int, err error) {
	if len(er.Obs) == 0 {
		return nil, nil, nil, errs.NewWarn("obs is required")
	}
	if len(er.Membership) == 0 {
		return nil, nil, nil, errs.NewWarn("membership is required")
	}

	sf := er.SizeFactors
	if len(sf) == 0 {
		sf = make([]float64, len(er.Obs))
		for i := range sf {
			sf[i] = 1.0
		}
	}
	return er.Obs, sf, er.Membership, nil
}

func splitFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func splitInts(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

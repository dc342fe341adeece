package v1

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/zintix-labs/enrichlab"
	"github.com/zintix-labs/enrichlab/dto"
	"github.com/zintix-labs/enrichlab/errs"
	"github.com/zintix-labs/enrichlab/sdk/core"
	"github.com/zintix-labs/enrichlab/server/httperr"
	"github.com/zintix-labs/enrichlab/server/svrcfg"
	"github.com/zintix-labs/enrichlab/stats"
)

type EnrichHandler struct {
	cfg *svrcfg.SvrCfg
}

func NewEnrichHandler(sCfg *svrcfg.SvrCfg) (*EnrichHandler, error) {
	if sCfg == nil {
		return nil, errs.NewFatal("server config is required")
	}
	return &EnrichHandler{cfg: sCfg}, nil
}

// Enrich 執行一次 enrichment 分析。
//
// 輸入：GET query string（小向量測試用）或 POST JSON body（見 dto.EnrichRequest）。
// 輸出格式由 query 參數 format 決定：json（預設）/ yaml / table。
// seed 缺省時由服務端鑄造，並一律回寫在 summary 中供重現。
func (eh *EnrichHandler) Enrich(w http.ResponseWriter, q *http.Request) {
	req, err := dto.DecodeEnrichRequest(q)
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	obs, sf, memb, err := req.Vectors()
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	// 業務檢驗
	if len(obs) > eh.cfg.MaxSamples {
		httperr.Errs(w, errs.Warnf("samples must be <= %d", eh.cfg.MaxSamples))
		return
	}
	cfg := req.Config()
	if cfg.Perms > eh.cfg.MaxPerms {
		httperr.Errs(w, errs.Warnf("perms must be <= %d", eh.cfg.MaxPerms))
		return
	}

	seed := int64(0)
	if req.Seed != nil {
		seed = *req.Seed
	} else {
		s, err := enrichlab.MintSeed()
		if err != nil {
			httperr.Errs(w, errs.NewFatal("seed generate failed"))
			return
		}
		seed = s
	}
	rng, err := core.NewRandomState(seed)
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	a, err := enrichlab.New(cfg)
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	res, rep, err := a.Run(obs, sf, memb, rng, false)
	if err != nil {
		// 這裡的錯誤來自引擎 尊重錯誤分級
		httperr.Errs(w, errs.Wrap(err, fmt.Sprintf("enrich err: %s", cfg.SetName)))
		httperr.Log(eh.cfg.Log, "enrich failed", err)
		return
	}

	switch q.URL.Query().Get("format") {
	case "", "json":
		resp, err := dto.NewEnrichResponse(res, rep)
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	case "yaml":
		w.Header().Set("Content-Type", "application/yaml")
		if err := rep.WriteWith(w, &stats.YAMLRunReportRender{}); err != nil {
			httperr.Log(eh.cfg.Log, "render yaml failed", err)
		}
	case "table":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := rep.WriteWith(w, &stats.TableRunReportRender{}); err != nil {
			httperr.Log(eh.cfg.Log, "render table failed", err)
		}
	default:
		httperr.Errs(w, errs.NewWarn("format must be json, yaml or table"))
	}
}

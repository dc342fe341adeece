package spec

import (
	"fmt"
	"math"

	"github.com/zintix-labs/enrichlab/errs"
)

// DefaultPerms 為未指定時的 permutation 次數。
const DefaultPerms = 1000

// AnalysisConfig 包含執行一次 enrichment 分析所需的所有高階設定。
type AnalysisConfig struct {
	SetName string `yaml:"set_name"    json:"set_name"`
	SetID   SetID  `yaml:"set_id"      json:"set_id"`
	// Perms 為 permutation 次數 P。0 代表只算 observed 統計量。
	Perms int `yaml:"perms"       json:"perms"`
	// WeightHit / WeightMiss 為走訪權重指數：步進權重 = |rank metric|^exponent。
	// 0 代表等權走訪（經典 unweighted 統計量）。
	WeightHit  float64 `yaml:"weight_hit"  json:"weight_hit"`
	WeightMiss float64 `yaml:"weight_miss" json:"weight_miss"`
}

// DefaultAnalysisConfig 回傳預設設定：P = DefaultPerms、等權走訪。
func DefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		Perms:      DefaultPerms,
		WeightHit:  0,
		WeightMiss: 0,
	}
}

// init
func (ac *AnalysisConfig) init() error {
	return ac.valid()
}

// valid 執行最基本的設定檔檢查，如需更多驗證可在此擴充。
func (ac *AnalysisConfig) valid() error {
	if ac.Perms < 0 {
		return errs.NewWarn(fmt.Sprintf("set_name: %s err:perms must be >= 0, got %d", ac.SetName, ac.Perms))
	}
	if math.IsNaN(ac.WeightHit) || math.IsInf(ac.WeightHit, 0) {
		return errs.NewWarn(fmt.Sprintf("set_name: %s err:weight_hit must be finite", ac.SetName))
	}
	if math.IsNaN(ac.WeightMiss) || math.IsInf(ac.WeightMiss, 0) {
		return errs.NewWarn(fmt.Sprintf("set_name: %s err:weight_miss must be finite", ac.SetName))
	}
	if ac.WeightHit < 0 || ac.WeightMiss < 0 {
		return errs.NewWarn(fmt.Sprintf("set_name: %s err:weight exponents must be >= 0", ac.SetName))
	}
	return nil
}

package spec

import (
	"encoding/json"

	"github.com/zintix-labs/enrichlab/errs"
	"gopkg.in/yaml.v3"
)

// GetAnalysisConfigByYAML
// 會讀取 YAML 設定、初始化並執行基本檢查後回傳。
func GetAnalysisConfigByYAML(data []byte) (*AnalysisConfig, error) {
	ac := DefaultAnalysisConfig()
	if err := yaml.Unmarshal(data, ac); err != nil {
		return nil, errs.Wrap(err, "failed to unmarshall yaml")
	}

	// 設定檔初始化
	if err := ac.init(); err != nil {
		return nil, errs.Wrap(err, "analysis config initialized err")
	}

	return ac, nil
}

// GetAnalysisConfigByJSON
// 會讀取 Json 設定、初始化並執行基本檢查後回傳
func GetAnalysisConfigByJSON(data []byte) (*AnalysisConfig, error) {
	ac := DefaultAnalysisConfig()
	if err := json.Unmarshal(data, ac); err != nil {
		return nil, errs.Wrap(err, "can not unmarshall json byte")
	}

	// 設定檔初始化
	if err := ac.init(); err != nil {
		return nil, errs.Wrap(err, "analysis config initialized err")
	}

	return ac, nil
}

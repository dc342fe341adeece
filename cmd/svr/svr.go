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

package main

import (
	"os"
	"strconv"

	"github.com/zintix-labs/enrichlab/sdk/perf"
	"github.com/zintix-labs/enrichlab/server"
	"github.com/zintix-labs/enrichlab/server/logger"
	"github.com/zintix-labs/enrichlab/server/svrcfg"
)

// 服務端啟動入口。設定走環境變數：
//
//	ENRICHLAB_LOG_MODE    ModeDev | ModeProd | ModeSilence（預設 ModeDev）
//	ENRICHLAB_MAX_PERMS   單次請求的 permutation 上限
//	ENRICHLAB_MAX_SAMPLES 單次請求的樣本數上限
//	ENRICHLAB_PPROF       cpu | heap（收集整段服務生命週期的 profile）
func main() {
	cfg := loadConfigFromEnv()
	perf.RunPProf(func() { server.Run(cfg) }, os.Getenv("ENRICHLAB_PPROF"))
}

func loadConfigFromEnv() *svrcfg.SvrCfg {
	log, _ := logger.NewAsync(4096, normLogMode(os.Getenv("ENRICHLAB_LOG_MODE")))

	return &svrcfg.SvrCfg{
		Log:        log,
		MaxPerms:   envInt("ENRICHLAB_MAX_PERMS"),
		MaxSamples: envInt("ENRICHLAB_MAX_SAMPLES"),
	}
}

func envInt(key string) int {
	s := os.Getenv(key)
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func normLogMode(s string) logger.LogMode {
	switch s {
	case "ModeProd":
		return logger.ModeProd
	case "ModeSilence":
		return logger.ModeSilence
	default:
		return logger.ModeDev
	}
}

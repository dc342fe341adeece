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

package svrcfg

import (
	"log/slog"

	"github.com/zintix-labs/enrichlab/errs"
	"github.com/zintix-labs/enrichlab/server/logger"
)

type SvrCfg struct {
	Log        *slog.Logger
	MaxPerms   int // 單次請求允許的 permutation 上限
	MaxSamples int // 單次請求允許的樣本數上限
}

func (sc *SvrCfg) Vaild() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.NewFatal("nil default log handler: async handler is nil")
		}
	} else {
		// 保持安靜、合法
		sc.Log, _ = logger.NewAsync(1024, logger.ModeDev)
	}

	// 1 <= MaxPerms <= 1,000,000
	// for 資源管理
	if sc.MaxPerms <= 0 {
		sc.MaxPerms = 100000
	}
	sc.MaxPerms = min(1000000, sc.MaxPerms)

	// 1 <= MaxSamples <= 1,000,000
	if sc.MaxSamples <= 0 {
		sc.MaxSamples = 100000
	}
	sc.MaxSamples = min(1000000, sc.MaxSamples)
	return nil
}

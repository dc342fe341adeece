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

// Package perf 提供最小的 pprof 外掛：把一段執行包進 profiling 收集。
// 大量 permutation 的熱路徑分析、以及 PGO 的 blueprint 收集都從這裡走。
package perf

import (
	"os"
	"runtime"
	"runtime/pprof"
)

const pprofDir = "build/profiling" // pprof檔案寫入路徑

// RunPProf 依 mode 決定收集哪種 profile 再執行 exe。
// 未知 mode 與空字串都直接執行，不收集。
func RunPProf(exe func(), mode string) {
	_ = os.MkdirAll(pprofDir, 0o755)

	switch mode {
	case "cpu":
		PProfCPU(exe)
	case "heap":
		PProfHeap(exe)
	default:
		exe()
	}
}

// PProfCPU 在 exe() 執行期間收集 CPU profile。
// 輸出檔：build/profiling/cpu.pprof
func PProfCPU(exe func()) {
	_ = os.MkdirAll(pprofDir, 0o755)

	f, err := os.Create(pprofDir + "/cpu.pprof")
	if err != nil {
		panic("failed to create cpu.pprof : " + err.Error())
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		panic("failed to start pprof : " + err.Error())
	}
	defer pprof.StopCPUProfile()

	exe()
}

// PProfHeap 在 exe() 執行完後寫出一次 Heap Snapshot（in-use memory）。
// 寫出前先 runtime.GC()，讓 Live Objects 視圖比較準確。
// 輸出檔：build/profiling/heap.pprof
func PProfHeap(exe func()) {
	exe()

	_ = os.MkdirAll(pprofDir, 0o755)
	runtime.GC()

	f, err := os.Create(pprofDir + "/heap.pprof")
	if err != nil {
		panic("failed to create heap.pprof : " + err.Error())
	}
	defer f.Close()

	if err := pprof.WriteHeapProfile(f); err != nil {
		panic("failed to write heap profile : " + err.Error())
	}
}

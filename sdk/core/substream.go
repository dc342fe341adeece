package core

import (
	"math"

	"github.com/zintix-labs/enrichlab/errs"
)

const (
	splitmixGamma = 0x9e3779b97f4a7c15
	splitmixMixA  = 0xbf58476d1ce4e5b9
	splitmixMixB  = 0x94d049bb133111eb

	splitmixFloatUnit = 1.0 / (1 << 53)
)

// SplitMix64 為 64-bit 狀態、64-bit 輸出的 SplitMix 產生器。
//
// 介面設計對齊 core.PRNG，便於在 core.Core 中互換。
// 狀態就是一個 uint64，因此「由 seed 派生子串流」是純函數：
// 相同 seed 必然得到相同輸出序列，這是 permutation 重算合約的基礎。
type SplitMix64 struct {
	state uint64
}

// Substream 以指定 seed 建立新的 SplitMix64。
func Substream(seed int64) *SplitMix64 {
	return &SplitMix64{state: uint64(seed)}
}

//---------------------------------------
// 回傳介面方法
//---------------------------------------

// Uint64 回傳非負整數uint64亂數
func (r *SplitMix64) Uint64() uint64 {
	return r.next()
}

// UintN 產出[0,n) 的uint整數，若 max == 0 回傳 0
func (r *SplitMix64) UintN(max uint) uint {
	if max == 0 {
		return 0
	}
	return uint(r.randBelowUint64(uint64(max)))
}

// IntN 回傳 [0,n) 的亂數；若 n <= 0 回傳 -1。
func (r *SplitMix64) IntN(max int) int {
	if max <= 0 {
		return -1
	}
	return int(r.randBelowUint64(uint64(max)))
}

// Float64 回傳 [0,1) 的浮點亂數（53-bit 精度）。
func (r *SplitMix64) Float64() float64 {
	return float64(r.next()>>11) * splitmixFloatUnit
}

// Int64 返回一個"非負"的int64亂數(63 bits)
func (r *SplitMix64) Int64() int64 {
	return int64(r.next() &^ (1 << 63))
}

// Restore 依序列化狀態還原內部狀態。
func (r *SplitMix64) Restore(data []byte) error {
	if len(data) != 8 {
		return errs.NewWarn("splitmix snapshot must be 8 bytes")
	}
	var v uint64
	for _, b := range data {
		v = (v << 8) | uint64(b)
	}
	r.state = v
	return nil
}

// Snapshot 取得當下內部狀態
func (r *SplitMix64) Snapshot() ([]byte, error) {
	b := make([]byte, 0, 8)
	b = AppendUint64(b, r.state)
	return b, nil
}

//---------------------------------------
// 內部方法
//---------------------------------------

func (r *SplitMix64) next() uint64 {
	r.state += splitmixGamma
	z := r.state
	z = (z ^ (z >> 30)) * splitmixMixA
	z = (z ^ (z >> 27)) * splitmixMixB
	return z ^ (z >> 31)
}

func (r *SplitMix64) randBelowUint64(bound uint64) uint64 {
	if bound == 0 {
		return 0
	}
	threshold := (math.MaxUint64 - bound + 1) % bound
	for {
		v := r.next()
		if v >= threshold {
			return v % bound
		}
	}
}

func AppendUint64(b []byte, v uint64) []byte {
	return append(b,
		byte(v>>56),
		byte(v>>48),
		byte(v>>40),
		byte(v>>32),
		byte(v>>24),
		byte(v>>16),
		byte(v>>8),
		byte(v),
	)
}

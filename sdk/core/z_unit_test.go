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

package core

import (
	"slices"
	"testing"
)

func TestSubstreamKnownVector(t *testing.T) {
	// SplitMix64 reference sequence for seed 1.
	s := Substream(1)
	if got := s.Uint64(); got != 0x910a2dec89025cc1 {
		t.Fatalf("unexpected first output: %#x", got)
	}
}

func TestCoreDeterminism(t *testing.T) {
	c1 := New(Default().New(7))
	c2 := New(Default().New(7))
	for i := 0; i < 5; i++ {
		if c1.Uint64() != c2.Uint64() {
			t.Fatalf("Uint64 mismatch at %d", i)
		}
	}
	if c1.IntN(10) != c2.IntN(10) {
		t.Fatalf("IntN mismatch")
	}
	if c1.UintN(10) != c2.UintN(10) {
		t.Fatalf("UintN mismatch")
	}
	if c1.Float64() != c2.Float64() {
		t.Fatalf("Float64 mismatch")
	}
}

func TestCorePickAndShuffle(t *testing.T) {
	c := New(Default().New(9))
	if got := c.Pick(nil); got != -1 {
		t.Fatalf("expected -1 for empty pick, got %d", got)
	}

	src := []int{1, 2, 3, 4}
	c.ShuffleInts(src)
	if len(src) != 4 {
		t.Fatalf("unexpected length after shuffle")
	}
	want := []int{1, 2, 3, 4}
	got := slices.Clone(src)
	slices.Sort(want)
	slices.Sort(got)
	if !slices.Equal(want, got) {
		t.Fatalf("shuffle changed elements: %v", src)
	}
}

func TestSubstreamBoundedDraws(t *testing.T) {
	s := Substream(3)
	if got := s.IntN(0); got != -1 {
		t.Fatalf("IntN(0) should be -1, got %d", got)
	}
	if got := s.UintN(0); got != 0 {
		t.Fatalf("UintN(0) should be 0, got %d", got)
	}
	for i := 0; i < 1000; i++ {
		if v := s.IntN(7); v < 0 || v >= 7 {
			t.Fatalf("IntN(7) out of range: %d", v)
		}
		if f := s.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %v", f)
		}
	}
}

func TestSubstreamSnapshotRestore(t *testing.T) {
	s := Substream(99)
	s.Uint64()
	snap, err := s.Snapshot()
	if err != nil {
		t.Fatalf("snapshot err: %v", err)
	}
	want := s.Uint64()

	r := Substream(0)
	if err := r.Restore(snap); err != nil {
		t.Fatalf("restore err: %v", err)
	}
	if got := r.Uint64(); got != want {
		t.Fatalf("restored stream diverged: got %d want %d", got, want)
	}

	if err := r.Restore([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error for short snapshot")
	}
}

func TestRandomStateSeedWalk(t *testing.T) {
	rs, err := NewRandomState(42)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	rs.NextSubstream()
	if got := rs.Seed(); got != 1365694572 {
		t.Fatalf("seed after one step: got %d want 1365694572", got)
	}

	// Substream derivation must not move the seed.
	before := rs.Seed()
	rs.Substream()
	if rs.Seed() != before {
		t.Fatalf("Substream moved the seed")
	}
}

func TestRandomStateSeedRange(t *testing.T) {
	for _, bad := range []int64{0, -1, 2147483647, 1 << 40} {
		if _, err := NewRandomState(bad); err == nil {
			t.Fatalf("expected error for seed %d", bad)
		}
	}
	for _, ok := range []int64{SeedMin, SeedMax, 235908223} {
		if _, err := NewRandomState(ok); err != nil {
			t.Fatalf("unexpected error for seed %d: %v", ok, err)
		}
	}
}

func TestRandomStateSubstreamIsPureFunctionOfSeed(t *testing.T) {
	a, _ := NewRandomState(777)
	b, _ := NewRandomState(777)

	sa := a.NextSubstream()
	// Consume a different amount of randomness on each walk; the seed
	// trajectory must be identical regardless.
	for i := 0; i < 100; i++ {
		sa.Uint64()
	}
	b.NextSubstream()

	if a.Seed() != b.Seed() {
		t.Fatalf("seed walk depends on draw count: %d vs %d", a.Seed(), b.Seed())
	}
}

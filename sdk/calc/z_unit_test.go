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

package calc

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestRankDesc(t *testing.T) {
	order, err := RankDesc([]float64{5, 3, 8, 8, 1}, []float64{1, 1, 2, 1, 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// metric: 5, 3, 4, 8, 1
	if want := []int{3, 0, 2, 1, 4}; !slices.Equal(order, want) {
		t.Fatalf("order: got %v want %v", order, want)
	}
}

func TestRankDescTieBreaksByIndex(t *testing.T) {
	order, err := RankDesc([]float64{4, 2, 4}, []float64{1, 1, 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if want := []int{0, 2, 1}; !slices.Equal(order, want) {
		t.Fatalf("tie order: got %v want %v", order, want)
	}
}

func TestRankDescInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		obs  []float64
		sf   []float64
	}{
		{"empty", nil, nil},
		{"length mismatch", []float64{1, 2}, []float64{1}},
		{"zero size factor", []float64{1, 2}, []float64{1, 0}},
		{"negative size factor", []float64{1, 2}, []float64{1, -3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := RankDesc(tc.obs, tc.sf); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestRankDescDoesNotMutateInput(t *testing.T) {
	obs := []float64{3, 1, 2}
	sf := []float64{1, 1, 1}
	if _, err := RankDesc(obs, sf); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !slices.Equal(obs, []float64{3, 1, 2}) || !slices.Equal(sf, []float64{1, 1, 1}) {
		t.Fatalf("input mutated: obs=%v sf=%v", obs, sf)
	}
}

func TestNormalizedMetric(t *testing.T) {
	got, err := NormalizedMetric([]float64{5, 3, 8}, []float64{1, 1, 2})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if want := []float64{5, 3, 4}; !slices.Equal(got, want) {
		t.Fatalf("metric: got %v want %v", got, want)
	}

	if _, err := NormalizedMetric([]float64{1, 2}, []float64{1, 0}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := NormalizedMetric(nil, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRunningSumBasic(t *testing.T) {
	// 2 members out of 6, both in the top ranks.
	wr, err := RunningSum([]int{1, 0, 1, 0, 0, 0}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if math.Abs(wr.ES-0.75) > 1e-12 {
		t.Fatalf("ES: got %v want 0.75", wr.ES)
	}
	if wr.ESRank != 2 {
		t.Fatalf("ESRank: got %d want 2", wr.ESRank)
	}
}

func TestRunningSumSingleMember(t *testing.T) {
	wr, err := RunningSum([]int{0, 0, 1, 0}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if math.Abs(wr.ES-(-2.0/3.0)) > 1e-12 {
		t.Fatalf("ES: got %v want %v", wr.ES, -2.0/3.0)
	}
	if wr.ESRank != 1 {
		t.Fatalf("ESRank: got %d want 1", wr.ESRank)
	}
}

func TestRunningSumDegenerate(t *testing.T) {
	if _, err := RunningSum([]int{1, 1, 1}, nil, nil); !errors.Is(err, ErrDegenerateSet) {
		t.Fatalf("all members: expected ErrDegenerateSet, got %v", err)
	}
	if _, err := RunningSum([]int{0, 0, 0}, nil, nil); !errors.Is(err, ErrDegenerateSet) {
		t.Fatalf("no members: expected ErrDegenerateSet, got %v", err)
	}
	if _, err := RunningSum(nil, nil, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty: expected ErrInvalidInput, got %v", err)
	}
}

func TestRunningSumReturnsToZero(t *testing.T) {
	labels := []int{1, 0, 0, 1, 1, 0, 1, 0, 0, 0, 1, 0}
	weights := []float64{3, 1, 2, 5, 1, 1, 4, 2, 1, 1, 2, 3}

	for _, tc := range []struct {
		name        string
		wHit, wMiss []float64
	}{
		{"unweighted", nil, nil},
		{"weighted", weights, weights},
		{"hit weighted only", weights, nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var sum float64
			nHit, nMiss := 0, 0
			var totHit, totMiss float64
			for i, l := range labels {
				if l != 0 {
					nHit++
					if tc.wHit != nil {
						totHit += tc.wHit[i]
					}
				} else {
					nMiss++
					if tc.wMiss != nil {
						totMiss += tc.wMiss[i]
					}
				}
			}
			if tc.wHit == nil {
				totHit = float64(nHit)
			}
			if tc.wMiss == nil {
				totMiss = float64(nMiss)
			}
			for i, l := range labels {
				if l != 0 {
					step := 1.0
					if tc.wHit != nil {
						step = tc.wHit[i]
					}
					sum += step / totHit
				} else {
					step := 1.0
					if tc.wMiss != nil {
						step = tc.wMiss[i]
					}
					sum -= step / totMiss
				}
			}
			if math.Abs(sum) > 1e-9 {
				t.Fatalf("walk does not return to zero: %v", sum)
			}
			// The exported walk must agree with the reference loop's
			// invariant and stay finite.
			wr, err := RunningSum(labels, tc.wHit, tc.wMiss)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if math.IsNaN(wr.ES) || math.IsInf(wr.ES, 0) {
				t.Fatalf("non-finite ES: %v", wr.ES)
			}
		})
	}
}

func TestRunningSumIdempotent(t *testing.T) {
	labels := []int{0, 1, 1, 0, 1, 0, 0, 1, 0}
	a, err := RunningSum(labels, nil, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	b, err := RunningSum(labels, nil, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a != b {
		t.Fatalf("results differ: %+v vs %+v", a, b)
	}
}

func TestRunningSumEarliestRankOnMagnitudeTie(t *testing.T) {
	// Walk: +0.5, -0.5 (sum 0), +0.5, -0.5 (sum 0).
	// |sum| hits 0.5 at ranks 0 and 2; the first one must win.
	wr, err := RunningSum([]int{1, 0, 1, 0}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if wr.ESRank != 0 {
		t.Fatalf("expected earliest rank 0, got %d", wr.ESRank)
	}
	if math.Abs(wr.ES-0.5) > 1e-12 {
		t.Fatalf("ES: got %v want 0.5", wr.ES)
	}
}

func TestRunningSumWeightLengthMismatch(t *testing.T) {
	if _, err := RunningSum([]int{1, 0}, []float64{1}, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := RunningSum([]int{1, 0}, nil, []float64{1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestWeights(t *testing.T) {
	if w := Weights([]float64{1, 2, 3}, 0); w != nil {
		t.Fatalf("exponent 0 should return nil, got %v", w)
	}
	w := Weights([]float64{-2, 3}, 1)
	if w[0] != 2 || w[1] != 3 {
		t.Fatalf("exponent 1 should be |metric|, got %v", w)
	}
	w = Weights([]float64{4}, 0.5)
	if math.Abs(w[0]-2) > 1e-12 {
		t.Fatalf("exponent 0.5 of 4 should be 2, got %v", w[0])
	}
}

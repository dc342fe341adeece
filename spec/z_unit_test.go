package spec

import (
	"testing"
)

func TestDefaultAnalysisConfig(t *testing.T) {
	ac := DefaultAnalysisConfig()
	if ac.Perms != DefaultPerms {
		t.Fatalf("default perms: got %d want %d", ac.Perms, DefaultPerms)
	}
	if ac.WeightHit != 0 || ac.WeightMiss != 0 {
		t.Fatalf("default weights should be 0: hit=%v miss=%v", ac.WeightHit, ac.WeightMiss)
	}
	if err := ac.valid(); err != nil {
		t.Fatalf("default config must be valid: %v", err)
	}
}

func TestGetAnalysisConfigByYAML(t *testing.T) {
	raw := []byte("set_name: demo\nset_id: 7\nperms: 245\nweight_hit: 1.0\n")
	ac, err := GetAnalysisConfigByYAML(raw)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ac.SetName != "demo" || ac.SetID != 7 || ac.Perms != 245 {
		t.Fatalf("unexpected config: %+v", ac)
	}
	if ac.WeightHit != 1.0 || ac.WeightMiss != 0 {
		t.Fatalf("weights not applied: %+v", ac)
	}
}

func TestGetAnalysisConfigByJSON(t *testing.T) {
	raw := []byte(`{"set_name":"demo","perms":10,"weight_miss":0.5}`)
	ac, err := GetAnalysisConfigByJSON(raw)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ac.SetName != "demo" || ac.Perms != 10 || ac.WeightMiss != 0.5 {
		t.Fatalf("unexpected config: %+v", ac)
	}
}

func TestAnalysisConfigValid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"negative perms", "perms: -1\n"},
		{"negative weight", "weight_hit: -2\n"},
		{"broken yaml", "perms: [\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := GetAnalysisConfigByYAML([]byte(tc.raw)); err == nil {
				t.Fatalf("expected error for %q", tc.raw)
			}
		})
	}
}

func TestGetAnalysisConfigDefaultsPreserved(t *testing.T) {
	// A config that omits perms keeps the package default.
	ac, err := GetAnalysisConfigByYAML([]byte("set_name: x\n"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ac.Perms != DefaultPerms {
		t.Fatalf("omitted perms should default to %d, got %d", DefaultPerms, ac.Perms)
	}
}

package settings

import (
	"testing"

	"fuzzql/internal/randgen"
)

func TestFirstSettingPicksOneToThreeDistinctEntries(t *testing.T) {
	rng := randgen.New(1)
	for i := 0; i < 100; i++ {
		picked, values := FirstSetting(rng)
		if len(picked) < 1 || len(picked) > 3 {
			t.Fatalf("picked %d settings, want 1..3", len(picked))
		}
		if len(values) != len(picked) {
			t.Fatalf("values/picked length mismatch: %d vs %d", len(values), len(picked))
		}
		seen := map[int]bool{}
		for _, idx := range picked {
			if seen[idx] {
				t.Fatal("FirstSetting returned a duplicate index")
			}
			seen[idx] = true
		}
	}
}

func TestSecondSettingAlwaysDiffersFromFirst(t *testing.T) {
	rng := randgen.New(2)
	for i := 0; i < 200; i++ {
		picked, first := FirstSetting(rng)
		second := SecondSetting(picked, first)
		if len(second) != len(picked) {
			t.Fatalf("second length %d, want %d", len(second), len(picked))
		}
		for j := range picked {
			if second[j] == first[j] {
				t.Fatalf("second value equals first for setting %s", Registry[picked[j]].Name)
			}
		}
	}
}

func TestRenderSettingsClauseFormatsAssignments(t *testing.T) {
	picked := []int{0, 1}
	values := []string{"default", "1"}
	got := RenderSettingsClause(picked, values)
	want := "SETTINGS join_algorithm = default, max_threads = 1"
	if got != want {
		t.Fatalf("RenderSettingsClause = %q, want %q", got, want)
	}
}

func TestRenderSettingsClauseEmptyWhenNoneChosen(t *testing.T) {
	if got := RenderSettingsClause(nil, nil); got != "" {
		t.Fatalf("RenderSettingsClause(nil, nil) = %q, want empty", got)
	}
}

func TestRegistryEntriesHaveTwoCandidates(t *testing.T) {
	for _, s := range Registry {
		if len(s.Candidates) != 2 {
			t.Fatalf("setting %s has %d candidates, want 2", s.Name, len(s.Candidates))
		}
		if s.Candidates[0] == s.Candidates[1] {
			t.Fatalf("setting %s has identical candidate values", s.Name)
		}
	}
}

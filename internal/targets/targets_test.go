package targets

import "testing"

func TestDefault_ReturnsFreshSlice(t *testing.T) {
	a := Default()
	a[0].Key = "mutated"

	if got := Default()[0].Key; got == "mutated" {
		t.Error("Default() shares state between calls")
	}
}

func TestDefault_AliasesPresent(t *testing.T) {
	for _, target := range Default() {
		if target.Key == "" {
			t.Error("target with empty key")
		}
		if len(target.Match) == 0 {
			t.Errorf("target %q has no aliases", target.Key)
		}
		for _, alias := range target.Match {
			if alias == "" {
				t.Errorf("target %q has an empty alias", target.Key)
			}
		}
	}
}

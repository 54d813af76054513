package pow

import "testing"

func TestSelectedVariantIsResolvedOnce(t *testing.T) {
	v := SelectedVariant()
	if v == "" {
		t.Fatal("SelectedVariant must never be empty")
	}
	if SelectedVariant() != v {
		t.Fatal("SelectedVariant must be stable across calls")
	}
}

package utils

import "testing"

func TestRecipeKey_StableAcrossOrder(t *testing.T) {
	a := RecipeKey(map[string]int{"Chicken": 1, "Carrots": 2}, "Simmer")
	b := RecipeKey(map[string]int{"Carrots": 2, "Chicken": 1}, "simmer")
	if a != b {
		t.Errorf("expected equal keys, got %s and %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected hex sha256, got %d chars", len(a))
	}
}

func TestRecipeKey_Distinguishes(t *testing.T) {
	base := RecipeKey(map[string]int{"Chicken": 1}, "Simmer")
	cases := map[string]string{
		"quantity": RecipeKey(map[string]int{"Chicken": 2}, "Simmer"),
		"method":   RecipeKey(map[string]int{"Chicken": 1}, "Boil"),
		"extra":    RecipeKey(map[string]int{"Chicken": 1, "Peas": 1}, "Simmer"),
	}
	for name, key := range cases {
		if key == base {
			t.Errorf("%s: expected a different key", name)
		}
	}
}

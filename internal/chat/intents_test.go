package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trknhr/cooktime/internal/catalog"
)

func TestParse_Keywords(t *testing.T) {
	cat := catalog.Default()

	tests := []struct {
		msg  string
		kind Kind
		item string
	}{
		{"Hello there", Greeting, ""},
		{"hi!", Greeting, ""},
		{"goodbye", Farewell, ""},
		{"help", Help, ""},
		{"how to use this?", Help, ""},
		{"what can you do", About, ""},
		{"How long will it take?", PredictTime, ""},
		{"what's the cooking time", PredictTime, ""},
		{"predict", PredictTime, ""},
		{"give me a tip", Tip, ""},
		{"any advice for potatoes?", IngredientTip, "Potatoes"},
		{"potato tip", IngredientTip, "Potatoes"},
		{"coconut milk tips", IngredientTip, "Coconut Milk"},
		{"tips on milk", IngredientTip, "Milk"},
		{"how to cook rice", Instructions, "rice"},
		{"I'm cooking eggs tonight", Instructions, "eggs"},
		{"cook a stew", Unknown, ""},
		{"cook stew", Instructions, "stew"},
		{"the weather is nice", Unknown, ""},
		{"", Unknown, ""},
		// whole-word matching: "chicken" must not trigger "hi"
		{"chicken", Unknown, ""},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got := Parse(tt.msg, cat)
			assert.Equal(t, tt.kind, got.Kind, "kind of %q", tt.msg)
			assert.Equal(t, tt.item, got.Item)
			assert.NoError(t, got.Err)
		})
	}
}

func TestParse_Commands(t *testing.T) {
	cat := catalog.Default()

	tests := []struct {
		msg  string
		kind Kind
		item string
		qty  int
	}{
		{"add chicken", AddIngredient, "chicken", 1},
		{"add 2 carrots", AddIngredient, "carrots", 2},
		{"add carrots 3", AddIngredient, "carrots", 3},
		{"Add coconut milk", AddIngredient, "coconut milk", 1},
		{"add Eggs=4", AddIngredient, "Eggs", 4},
		{"remove chicken", RemoveIngredient, "chicken", 0},
		{"rm coconut milk", RemoveIngredient, "coconut milk", 0},
		{"method boil", SetMethod, "boil", 0},
		{"use fry", SetMethod, "fry", 0},
		{"clear", ClearRecipe, "", 0},
		{"show", ShowRecipe, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got := Parse(tt.msg, cat)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.item, got.Item)
			assert.Equal(t, tt.qty, got.Quantity)
			assert.NoError(t, got.Err)
		})
	}
}

func TestParse_CommandErrors(t *testing.T) {
	cat := catalog.Default()

	got := Parse("add", cat)
	assert.Equal(t, AddIngredient, got.Kind)
	assert.ErrorIs(t, got.Err, ErrMissingItem)

	got = Parse("remove", cat)
	assert.ErrorIs(t, got.Err, ErrMissingItem)

	got = Parse("add chicken=lots", cat)
	assert.Error(t, got.Err)
}

func TestParseItem(t *testing.T) {
	name, qty, err := ParseItem("Chicken=2")
	assert.NoError(t, err)
	assert.Equal(t, "Chicken", name)
	assert.Equal(t, 2, qty)

	name, qty, err = ParseItem("Tofu")
	assert.NoError(t, err)
	assert.Equal(t, "Tofu", name)
	assert.Equal(t, 1, qty)

	_, _, err = ParseItem("=3")
	assert.ErrorIs(t, err, ErrMissingItem)

	_, _, err = ParseItem("Peas=x")
	assert.Error(t, err)
}

package chat

import "github.com/trknhr/cooktime/internal/feature"

const assistantName = "Chef's Assistant"

const welcomeLine = "Welcome to Chef's Assistant! I can help predict cooking times based on ingredients and cooking methods. Add ingredients and I'll give you an estimate."

const defaultTip = "Remember to taste as you go for the best results!"

var greetingLines = []string{
	"Hello! What are we cooking today?",
	"Hi there! Tell me what's going in the pot and I'll estimate the time.",
	"Hey! Ready when you are. Add a few ingredients to get started.",
}

var farewellLines = []string{
	"Goodbye! Enjoy your meal.",
	"Bye! Happy cooking.",
	"See you next time. Don't let it boil over!",
}

var fallbackLines = []string{
	"I'm not sure I understood. Type help to see what I can do.",
	"Sorry, I didn't catch that. Try \"add 2 carrots\" or \"how long\".",
	"I only know about cooking times, tips and a few recipes. Type help for the list.",
}

const helpText = `Here's how I can help:
  add 2 chicken      add an ingredient (quantity defaults to 1)
  remove chicken     take an ingredient out
  method boil        choose simmer, boil or fry
  show               list the current recipe
  clear              start over
  how long?          estimate the cooking time
  tip                get a cooking tip
  carrots tip        get a tip for one ingredient
  how to cook rice   get basic instructions`

const aboutText = "I'm Chef's Assistant. I learned cooking times from a small set of recipes, and I use that to estimate how long your combination of ingredients and method will take. I can also share tips and basic instructions."

var ingredientTips = map[string]string{
	"Carrots":      "Cut carrots into even pieces so they finish at the same time.",
	"Potatoes":     "Start potatoes in cold water so they cook evenly through.",
	"Onions":       "Sweat onions slowly over low heat to bring out their sweetness.",
	"Chicken":      "Chicken is done when the juices run clear; don't rush it.",
	"Eggs":         "Cool boiled eggs in ice water right away to stop the cooking.",
	"Fish":         "Fish cooks fast. Pull it as soon as it flakes easily.",
	"Water":        "Salt the water once it boils, not before.",
	"Broth":        "Taste the broth before seasoning, store-bought is often salty.",
	"Milk":         "Keep milk below a boil to stop it from scorching or splitting.",
	"Coconut Milk": "Shake coconut milk well and add it toward the end for a silky sauce.",
	"Cream":        "Stir cream in off the heat to keep sauces from breaking.",
	"Tofu":         "Press tofu for 15 minutes so it browns instead of steaming.",
	"Peas":         "Add peas in the last few minutes to keep them bright green.",
	"Tomatoes":     "Cook tomatoes a little longer to mellow their acidity.",
}

var methodTips = map[feature.Method]string{
	feature.Simmer: "Keep a simmer gentle, with small bubbles just breaking the surface.",
	feature.Boil:   "Bring the water to a full rolling boil before adding ingredients.",
	feature.Fry:    "Heat the oil until it shimmers before anything goes in the pan.",
}

type instruction struct {
	food string
	text string
}

var cookingInstructions = []instruction{
	{"rice", "Rinse 1 cup of rice, add 2 cups of water, bring to a boil, then cover and simmer on low for 18 minutes. Rest 5 minutes before fluffing."},
	{"pasta", "Boil plenty of salted water, add the pasta, stir, and cook until al dente, usually 8 to 12 minutes. Save a cup of pasta water for the sauce."},
	{"eggs", "For hard-boiled eggs, lower them into boiling water for 10 minutes, then move them to ice water."},
	{"chicken", "Sear chicken pieces until golden, then simmer in liquid for about 30 minutes until cooked through."},
	{"fish", "Pat the fish dry, season, and pan-fry skin side down for 3 to 4 minutes, then flip for 1 to 2 minutes."},
	{"potatoes", "Cut potatoes into even chunks, start them in cold salted water, and simmer for 15 to 20 minutes until tender."},
	{"tofu", "Press the tofu, cut it into cubes, and fry in hot oil until golden on all sides, about 8 minutes."},
	{"stew", "Brown the meat, soften onions and carrots, add liquid and potatoes, then simmer covered for 40 minutes or more."},
	{"soup", "Soften aromatics, add broth and vegetables, and simmer until everything is tender, about 20 to 30 minutes."},
}

func instructionFoods() []string {
	foods := make([]string, len(cookingInstructions))
	for i, in := range cookingInstructions {
		foods[i] = in.food
	}
	return foods
}

func instructionsFor(food string) (string, bool) {
	for _, in := range cookingInstructions {
		if in.food == food {
			return in.text, true
		}
	}
	return "", false
}

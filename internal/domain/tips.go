package domain

import "math/rand/v2"

var hydrationTips = []string{
	"Drink a glass of water after you wake up.",
	"Sip water regularly instead of chugging.",
	"Keep a water bottle near your study or work desk.",
	"Drink one glass of water with every meal.",
	"Thirst is a late sign, drink before you feel thirsty.",
	"Water helps with focus, mood, and energy.",
	"Add lemon or cucumber slices for taste.",
	"Eat water-rich foods like watermelon and cucumber.",
}

// Tips returns a copy of all hydration tips.
func Tips() []string {
	return append([]string(nil), hydrationTips...)
}

// RandomTip picks one hydration tip.
func RandomTip() string {
	return hydrationTips[rand.IntN(len(hydrationTips))]
}

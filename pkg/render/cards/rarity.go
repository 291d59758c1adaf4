package cards

// rarity maps bonus values to the color of the bar at the top of a card.
var rarity = map[int]string{
	1: "grey",
	2: "green",
	3: "blue",
	4: "#DA70D6",
	5: "yellow",
}

// RarityColor returns the bar color for a bonus value, or black for
// values outside 1..5.
func RarityColor(bonus int) string {
	if c, ok := rarity[bonus]; ok {
		return c
	}
	return "black"
}

type difficultyBand struct {
	from, to int // [from, to)
	name     string
}

var difficulty = []difficultyBand{
	{1, 5, "Lehký"},
	{5, 10, "Střední"},
	{10, 15, "Těžké"},
	{15, 20, "Smrtící"},
	{20, 30, "Brutální"},
	{30, 35, "Ničitel světů"},
}

// Difficulty names the difficulty band of a monster level. Levels outside
// 1..34 have no band and yield "".
func Difficulty(level int) string {
	for _, b := range difficulty {
		if level >= b.from && level < b.to {
			return b.name
		}
	}
	return ""
}

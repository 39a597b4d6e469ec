package engine

// Rank is a level-threshold entry in the rank table.
type Rank struct {
	MinLevel int
	Title    string
}

// LevelRanks is ordered by MinLevel ascending; the resolver picks the last
// entry whose threshold the level meets.
var LevelRanks = []Rank{
	{MinLevel: 1, Title: "Peasant"},
	{MinLevel: 3, Title: "Squire"},
	{MinLevel: 5, Title: "Knight"},
	{MinLevel: 8, Title: "Baron"},
	{MinLevel: 12, Title: "Duke"},
	{MinLevel: 16, Title: "Warlord"},
	{MinLevel: 20, Title: "Legend"},
}

// Specializations labels the dominant category.
var Specializations = map[Category]string{
	CategoryPhysical:     "Warrior",
	CategoryIntellect:    "Sage",
	CategoryHealth:       "Warden",
	CategoryProfessional: "Guildmaster",
}

// BalancedSpecialization is used when no category clearly dominates.
const BalancedSpecialization = "Pathfinder"

// BalancedTolerance is the maximum spread (exclusive) between the dominant
// category and every other for the profile to count as balanced.
const BalancedTolerance = 15

// Title is the narrative reading of derived stats.
type Title struct {
	Rank           string
	Specialization string
}

func (t Title) String() string {
	return t.Rank + " " + t.Specialization
}

// ResolveTitle maps derived stats to a rank and specialization. It has no
// side effects and must be recomputed whenever stats change.
func ResolveTitle(stats UserStats) Title {
	rank := LevelRanks[0].Title
	for _, r := range LevelRanks {
		if stats.Level >= r.MinLevel {
			rank = r.Title
		}
	}

	dominant := Categories[0]
	for _, c := range Categories[1:] {
		if stats.Score(c) > stats.Score(dominant) {
			dominant = c
		}
	}

	balanced := true
	for _, c := range Categories {
		if stats.Score(dominant)-stats.Score(c) >= BalancedTolerance {
			balanced = false
			break
		}
	}

	spec := Specializations[dominant]
	if balanced {
		spec = BalancedSpecialization
	}
	return Title{Rank: rank, Specialization: spec}
}

package game

// duckNames is the pool of display names handed out to joiners.
var duckNames = []string{
	"Quackers McGillicuddy",
	"Sir Paddington",
	"Waddles Von Flippers",
	"Captain Quackbeard",
	"Duchess Featherbutt",
	"Professor Mallard",
	"Squeaky McSplash",
	"Admiral Duckworth",
	"Lady Quackalot",
	"Baron Von Waddle",
	"Sir Flapsalot",
	"Puddles the Great",
	"Count Quackula",
	"Commodore Splash",
	"Princess Peep",
	"Duke Duckington",
	"Sir Honks-a-Lot",
	"Captain Featherbottom",
	"Madame Quacksworth",
	"General Gobbles",
	"Lord Splashington",
	"Dame Duckface",
	"Sir Squeaks",
	"Admiral Paddlefoot",
	"Baroness Billsworth",
	"Commander Quack",
	"Lady Webfoot",
	"Earl of Pondshire",
	"Sir Rubber Ducky",
	"Captain Mallardface",
}

// assignName hands out a display name: the preferred name if it is
// free, otherwise a random unused pool name. If the pool somehow runs
// dry the usage set resets and any pool name goes.
func (m *Match) assignName(preferred string) string {
	if preferred != "" {
		if _, taken := m.usedNames[preferred]; !taken {
			m.usedNames[preferred] = struct{}{}
			return preferred
		}
	}

	available := make([]string, 0, len(duckNames))
	for _, n := range duckNames {
		if _, taken := m.usedNames[n]; !taken {
			available = append(available, n)
		}
	}

	if len(available) == 0 {
		m.usedNames = make(map[string]struct{})
		name := duckNames[m.rng.Intn(len(duckNames))]
		m.usedNames[name] = struct{}{}
		return name
	}

	name := available[m.rng.Intn(len(available))]
	m.usedNames[name] = struct{}{}
	return name
}

// releaseName returns a name to the pool when its player leaves.
func (m *Match) releaseName(name string) {
	delete(m.usedNames, name)
}

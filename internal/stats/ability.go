package stats

import "strings"

// Ability names one of the scores a balancer tracks.
type Ability string

const (
	Strength     Ability = "STRENGTH"
	Dexterity    Ability = "DEXTERITY"
	Constitution Ability = "CONSTITUTION"
	Intelligence Ability = "INTELLIGENCE"
	Wisdom       Ability = "WISDOM"
	Charisma     Ability = "CHARISMA"
)

// NumAbilities is the size of every stat set.
const NumAbilities = 6

// DefaultOrder returns the six abilities in the order stat lists are read.
func DefaultOrder() []Ability {
	return []Ability{Strength, Constitution, Dexterity, Intelligence, Wisdom, Charisma}
}

// Abbrev returns the first three letters upper-cased, e.g. "STR".
func (a Ability) Abbrev() string {
	r := []rune(strings.ToUpper(string(a)))
	if len(r) > 3 {
		r = r[:3]
	}
	return string(r)
}

func (a Ability) String() string {
	return string(a)
}

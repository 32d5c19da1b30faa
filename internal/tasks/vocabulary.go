package tasks

// Keyword tables and extraction patterns used by the parser. They live here,
// separate from the parsing logic, so tests can enumerate them exhaustively
// and so vocabulary changes never touch control flow.

// skillNames is the canonical OSRS skill vocabulary. Skill level requirements
// are only accepted when the skill name appears here.
var skillNames = map[string]struct{}{
	"attack":       {},
	"defence":      {},
	"strength":     {},
	"hitpoints":    {},
	"ranged":       {},
	"prayer":       {},
	"magic":        {},
	"cooking":      {},
	"woodcutting":  {},
	"fletching":    {},
	"fishing":      {},
	"firemaking":   {},
	"crafting":     {},
	"smithing":     {},
	"mining":       {},
	"herblore":     {},
	"agility":      {},
	"thieving":     {},
	"slayer":       {},
	"farming":      {},
	"runecraft":    {},
	"hunter":       {},
	"construction": {},
}

// combatKeywords classify a description as combat when any of them appears as
// a whole word. Checked before every other category: a description that mixes
// combat and skilling vocabulary always resolves to combat. That ordering is
// a deliberate tie-break, not an accident.
var combatKeywords = map[string]struct{}{
	"fight":   {},
	"kill":    {},
	"attack":  {},
	"combat":  {},
	"battle":  {},
	"pvp":     {},
	"pvm":     {},
	"monster": {},
	"boss":    {},
	"dragon":  {},
	"demon":   {},
	"giant":   {},
	"warrior": {},
}

// skillingKeywords classify a description as skilling, second in priority.
var skillingKeywords = map[string]struct{}{
	"mine":       {},
	"cut":        {},
	"fish":       {},
	"cook":       {},
	"craft":      {},
	"smith":      {},
	"make":       {},
	"create":     {},
	"train":      {},
	"level":      {},
	"xp":         {},
	"experience": {},
	"skill":      {},
}

// tradingPhrases and explorationPhrases are matched as substrings, in order,
// after the word-set categories.
var tradingPhrases = []string{"buy", "sell", "trade", "exchange"}

var explorationPhrases = []string{"explore", "find", "locate", "go to"}

// advancedKeywords and intermediateKeywords drive difficulty classification.
// Substring matching, advanced first.
var advancedKeywords = []string{"boss", "raid", "advanced", "expert", "high level", "difficult"}

var intermediateKeywords = []string{"medium", "moderate", "some", "several"}

// locationNames recognizes well known place names so "kill 10 goblins in
// lumbridge" records lumbridge as the objective's location.
var locationNames = map[string]struct{}{
	"lumbridge":  {},
	"varrock":    {},
	"falador":    {},
	"camelot":    {},
	"ardougne":   {},
	"yanille":    {},
	"draynor":    {},
	"edge":       {},
	"edgeville":  {},
	"wilderness": {},
	"taverly":    {},
	"burthorpe":  {},
}

// Objective extraction patterns. Two shapes are recognized:
//
//	"<verb> <quantity> <target>"        e.g. "kill 10 goblins"
//	"<quantity> <target> <verb-past>"   e.g. "50 iron ore mined"
//
// The verb vocabularies are fixed; anything else falls through to the single
// synthetic objective.
const (
	verbQuantityTargetPattern = `(kill|mine|cut|cook|craft|make|get|obtain)\s+(\d+)\s+([a-z\s]+)`
	quantityTargetVerbPattern = `(\d+)\s+([a-z\s]+?)\s+(killed|mined|cut|cooked|crafted|made)`
)

// Requirement extraction patterns.
const (
	skillLevelPattern = `(\d+)\s+([a-z]+)\s+(?:level|skill)`
	itemNeedPattern   = `(?:need|require|bring|have)\s+([a-z\s]+?)(?:\s+(?:and|or|,)|$)`
)

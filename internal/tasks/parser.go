package tasks

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/naton1/taskforge/api/schemas"
	"go.uber.org/zap"
)

// Parser converts free text task descriptions into structured Tasks using
// fixed keyword tables and extraction patterns. Parsing is a total function:
// malformed or nonsensical input degrades to the unknown/beginner/fallback
// path instead of returning an error.
type Parser struct {
	verbQuantityTarget *regexp.Regexp
	quantityTargetVerb *regexp.Regexp
	skillLevel         *regexp.Regexp
	itemNeed           *regexp.Regexp
	log                *zap.Logger
}

// NewParser creates a parser with its patterns compiled up front.
func NewParser(logger *zap.Logger) *Parser {
	return &Parser{
		verbQuantityTarget: regexp.MustCompile(verbQuantityTargetPattern),
		quantityTargetVerb: regexp.MustCompile(quantityTargetVerbPattern),
		skillLevel:         regexp.MustCompile(skillLevelPattern),
		itemNeed:           regexp.MustCompile(itemNeedPattern),
		log:                logger.Named("taskparser"),
	}
}

// Parse analyzes a natural language description and returns a Task. The input
// is lower-cased and trimmed before any matching; the stored Description is
// the normalized form.
func (p *Parser) Parse(description string) *schemas.Task {
	description = strings.ToLower(strings.TrimSpace(description))

	category := p.determineCategory(description)
	objectives := p.extractObjectives(description)
	difficulty := p.determineDifficulty(description, objectives)
	requirements := p.extractRequirements(description)
	name := generateTaskName(description)

	task := &schemas.Task{
		ID:           uuid.NewString(),
		Name:         name,
		Description:  description,
		Category:     category,
		Difficulty:   difficulty,
		Objectives:   objectives,
		Requirements: requirements,
		RewardXP:     map[string]int{},
		RewardItems:  []string{},
	}

	p.log.Debug("Parsed task description",
		zap.String("task_id", task.ID),
		zap.String("category", string(category)),
		zap.String("difficulty", string(difficulty)),
		zap.Int("objectives", len(objectives)))
	return task
}

// determineCategory applies the category rules in strict priority order.
// First match wins; a description with no cues at all is unknown.
func (p *Parser) determineCategory(description string) schemas.TaskCategory {
	words := map[string]struct{}{}
	for _, w := range strings.Fields(description) {
		words[w] = struct{}{}
	}

	if intersects(words, combatKeywords) {
		return schemas.CategoryCombat
	}
	if intersects(words, skillingKeywords) {
		return schemas.CategorySkilling
	}
	if strings.Contains(description, "quest") {
		return schemas.CategoryQuesting
	}
	if containsAny(description, tradingPhrases) {
		return schemas.CategoryTrading
	}
	if containsAny(description, explorationPhrases) {
		return schemas.CategoryExploration
	}
	if strings.Contains(description, "pvp") ||
		(strings.Contains(description, "player") && strings.Contains(description, "kill")) {
		return schemas.CategoryPVP
	}
	return schemas.CategoryUnknown
}

// extractObjectives finds "verb quantity target" and "quantity target
// verb-past" shapes. When nothing matches it emits exactly one synthetic
// objective covering the entire description.
func (p *Parser) extractObjectives(description string) []schemas.TaskObjective {
	var objectives []schemas.TaskObjective

	for _, m := range p.verbQuantityTarget.FindAllStringSubmatch(description, -1) {
		verb, quantity, target := m[1], m[2], m[3]
		objectives = append(objectives, newObjective(
			strings.TrimSpace(verb+" "+quantity+" "+target), quantity, target))
	}
	for _, m := range p.quantityTargetVerb.FindAllStringSubmatch(description, -1) {
		quantity, target, verb := m[1], m[2], m[3]
		objectives = append(objectives, newObjective(
			strings.TrimSpace(quantity+" "+target+" "+verb), quantity, target))
	}

	if len(objectives) == 0 {
		p.log.Debug("No objective patterns matched, using synthetic objective")
		objectives = append(objectives, schemas.TaskObjective{
			Description: description,
			Target:      "general",
			Quantity:    1,
		})
	}
	return objectives
}

// newObjective builds an objective from raw pattern captures. A trailing
// " in <place>" inside the target is peeled off into the location field so
// "kill 10 goblins in lumbridge" targets "goblins", located at "lumbridge".
func newObjective(description, quantity, target string) schemas.TaskObjective {
	qty, err := strconv.Atoi(quantity)
	if err != nil {
		qty = 1
	}

	target = strings.TrimSpace(target)
	location := ""
	if before, after, found := strings.Cut(target, " in "); found {
		target = strings.TrimSpace(before)
		location = canonicalLocation(strings.TrimSpace(after))
	}

	return schemas.TaskObjective{
		Description: description,
		Target:      target,
		Quantity:    qty,
		Location:    location,
	}
}

// canonicalLocation collapses a location phrase to a known place name when one
// appears in it ("the lumbridge swamp" becomes "lumbridge"). Unrecognized
// phrases are kept verbatim.
func canonicalLocation(phrase string) string {
	for _, w := range strings.Fields(phrase) {
		if _, ok := locationNames[w]; ok {
			return w
		}
	}
	return phrase
}

// determineDifficulty is a priority chain: advanced keywords, then
// intermediate keywords, then objective count, then beginner.
func (p *Parser) determineDifficulty(description string, objectives []schemas.TaskObjective) schemas.TaskDifficulty {
	if containsAny(description, advancedKeywords) {
		return schemas.DifficultyAdvanced
	}
	if containsAny(description, intermediateKeywords) {
		return schemas.DifficultyIntermediate
	}
	if len(objectives) > 3 {
		return schemas.DifficultyIntermediate
	}
	return schemas.DifficultyBeginner
}

// extractRequirements pulls skill level and item requirements out of the
// description. Skill names outside the canonical vocabulary are dropped;
// item phrases are kept verbatim. There is no extraction cue for completed
// quests, so that list is always empty.
func (p *Parser) extractRequirements(description string) schemas.TaskRequirement {
	req := schemas.TaskRequirement{
		SkillLevels:     map[string]int{},
		Items:           []string{},
		QuestsCompleted: []string{},
	}

	for _, m := range p.skillLevel.FindAllStringSubmatch(description, -1) {
		level, skill := m[1], m[2]
		if _, ok := skillNames[skill]; !ok {
			continue
		}
		if lvl, err := strconv.Atoi(level); err == nil {
			req.SkillLevels[skill] = lvl
		}
	}

	for _, m := range p.itemNeed.FindAllStringSubmatch(description, -1) {
		req.Items = append(req.Items, strings.TrimSpace(m[1]))
	}
	return req
}

// generateTaskName takes the first five words of the description and
// capitalizes each. Names are human-readable, not guaranteed unique.
func generateTaskName(description string) string {
	words := strings.Fields(description)
	if len(words) > 5 {
		words = words[:5]
	}
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = capitalize(w)
	}
	return strings.Join(out, " ")
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

func intersects(words map[string]struct{}, keywords map[string]struct{}) bool {
	for w := range words {
		if _, ok := keywords[w]; ok {
			return true
		}
	}
	return false
}

func containsAny(description string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(description, phrase) {
			return true
		}
	}
	return false
}

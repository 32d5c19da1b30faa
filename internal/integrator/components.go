package integrator

import (
	"github.com/naton1/taskforge/api/schemas"
)

// contractComponents is the fixed observation/action/reward block a category
// contributes to a training contract. All categories share one dispatch table
// so the per-category values live in exactly one place.
type contractComponents struct {
	observations []schemas.Observation
	actions      []schemas.ActionGroup
	rewards      map[string]float64
}

// componentTable holds the category-specialized contract components. PVP
// shares the combat block; categories without an entry use genericComponents.
var componentTable = map[schemas.TaskCategory]contractComponents{
	schemas.CategoryCombat:      combatComponents,
	schemas.CategoryPVP:         combatComponents,
	schemas.CategorySkilling:    skillingComponents,
	schemas.CategoryExploration: explorationComponents,
}

var combatComponents = contractComponents{
	observations: []schemas.Observation{
		{Name: "hitpoints", Type: schemas.ObservationDiscrete, Min: 0, Max: 99},
		{Name: "prayer_points", Type: schemas.ObservationDiscrete, Min: 0, Max: 99},
		{Name: "enemy_hitpoints", Type: schemas.ObservationDiscrete, Min: 0, Max: 99},
		{Name: "combat_stance", Type: schemas.ObservationDiscrete, Min: 0, Max: 4},
		{Name: "weapon_equipped", Type: schemas.ObservationDiscrete, Min: 0, Max: 1000},
	},
	actions: []schemas.ActionGroup{{
		Name:        "combat_actions",
		Description: "Combat-related actions",
		Actions: []schemas.Action{
			{Name: "attack", Description: "Attack target"},
			{Name: "cast_spell", Description: "Cast magic spell"},
			{Name: "use_special", Description: "Use special attack"},
			{Name: "change_stance", Description: "Change combat stance"},
			{Name: "eat_food", Description: "Consume food"},
			{Name: "drink_potion", Description: "Drink potion"},
		},
	}},
	rewards: map[string]float64{
		"damage_dealt": 1.0,
		"damage_taken": -0.5,
		"kill_enemy":   100.0,
		"death":        -100.0,
	},
}

var skillingComponents = contractComponents{
	observations: []schemas.Observation{
		{Name: "skill_xp", Type: schemas.ObservationContinuous, Min: 0, Max: 200000000},
		{Name: "skill_level", Type: schemas.ObservationDiscrete, Min: 1, Max: 99},
		{Name: "inventory_space", Type: schemas.ObservationDiscrete, Min: 0, Max: 28},
		{Name: "resource_available", Type: schemas.ObservationDiscrete, Min: 0, Max: 1},
		{Name: "fatigue", Type: schemas.ObservationContinuous, Min: 0, Max: 100},
	},
	actions: []schemas.ActionGroup{{
		Name:        "skilling_actions",
		Description: "Skilling-related actions",
		Actions: []schemas.Action{
			{Name: "gather_resource", Description: "Gather natural resource"},
			{Name: "process_material", Description: "Process gathered materials"},
			{Name: "bank_items", Description: "Store items in bank"},
			{Name: "withdraw_items", Description: "Withdraw items from bank"},
			{Name: "drop_item", Description: "Drop unwanted item"},
			{Name: "use_tool", Description: "Use skilling tool"},
		},
	}},
	rewards: map[string]float64{
		"xp_gained":          1.0,
		"level_up":           50.0,
		"inventory_full":     -5.0,
		"objective_progress": 10.0,
	},
}

var explorationComponents = contractComponents{
	observations: []schemas.Observation{
		{Name: "position_x", Type: schemas.ObservationDiscrete, Min: 0, Max: 4096},
		{Name: "position_y", Type: schemas.ObservationDiscrete, Min: 0, Max: 4096},
		{Name: "region_id", Type: schemas.ObservationDiscrete, Min: 0, Max: 65535},
		{Name: "destination_distance", Type: schemas.ObservationContinuous, Min: 0, Max: 100},
		{Name: "path_blocked", Type: schemas.ObservationDiscrete, Min: 0, Max: 1},
	},
	actions: []schemas.ActionGroup{{
		Name:        "movement_actions",
		Description: "Movement and exploration actions",
		Actions: []schemas.Action{
			{Name: "move_north", Description: "Move north"},
			{Name: "move_south", Description: "Move south"},
			{Name: "move_east", Description: "Move east"},
			{Name: "move_west", Description: "Move west"},
			{Name: "run_toggle", Description: "Toggle running"},
			{Name: "use_teleport", Description: "Use teleportation method"},
		},
	}},
	rewards: map[string]float64{
		"distance_reduced":    1.0,
		"reached_destination": 100.0,
		"got_lost":            -10.0,
		"efficient_path":      5.0,
	},
}

var genericComponents = contractComponents{
	observations: []schemas.Observation{
		{Name: "game_state", Type: schemas.ObservationDiscrete, Min: 0, Max: 1000},
		{Name: "progress", Type: schemas.ObservationContinuous, Min: 0, Max: 1},
	},
	actions: []schemas.ActionGroup{{
		Name:        "basic_actions",
		Description: "Basic game actions",
		Actions: []schemas.Action{
			{Name: "wait", Description: "Do nothing"},
			{Name: "interact", Description: "Interact with object"},
			{Name: "move", Description: "Move character"},
			{Name: "use_item", Description: "Use an item"},
		},
	}},
	rewards: map[string]float64{
		"progress_made":       1.0,
		"objective_completed": 50.0,
		"time_penalty":        -0.1,
	},
}

// componentsFor resolves the contract components for a category.
func componentsFor(category schemas.TaskCategory) contractComponents {
	if c, ok := componentTable[category]; ok {
		return c
	}
	return genericComponents
}

// episodeStepMultipliers scale the estimated episode length per category.
// Skilling grinds and quests run long; trading is quick.
var episodeStepMultipliers = map[schemas.TaskCategory]float64{
	schemas.CategoryCombat:      1.0,
	schemas.CategoryPVP:         1.2,
	schemas.CategorySkilling:    2.0,
	schemas.CategoryExploration: 1.5,
	schemas.CategoryQuesting:    3.0,
	schemas.CategoryTrading:     0.8,
}

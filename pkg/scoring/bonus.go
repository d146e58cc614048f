package scoring

import "github.com/mpapenbr/rally-championship/pkg/model"

// PowerStagePositions is the number of power stage finishers earning a bonus.
const PowerStagePositions = 5

// PowerStageBonus returns 5 points for the power stage winner down to 1 point
// for fifth place. Any other position earns nothing.
func PowerStageBonus(position int) int {
	if position < 1 || position > PowerStagePositions {
		return 0
	}
	return PowerStagePositions + 1 - position
}

// Bonus computes the additive bonus points. Stage wins count one point each.
// Negative inputs are rejected instead of clamped.
func Bonus(stageWins, powerStagePosition int) (int, error) {
	if stageWins < 0 {
		return 0, model.NewInvalidInput("stageWins", stageWins, "must not be negative")
	}
	if powerStagePosition < 0 {
		return 0, model.NewInvalidInput("powerStagePosition", powerStagePosition,
			"must not be negative")
	}
	return stageWins + PowerStageBonus(powerStagePosition), nil
}

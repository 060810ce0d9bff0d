package planner

import "strconv"

// Suggestion keys carried by hints.
const (
	HintIncreaseSlotCount   = "increase-slot-count"
	HintIncreaseMaxPerSlot  = "increase-max-per-slot"
	HintRelaxCoreqTogether  = "relax-coreq-together"
	HintChangeElectiveGroup = "change-elective-group"
)

const (
	slotCountThreshold  = 8
	lightLoadThreshold  = 25
	maxPerSlotIncrement = 3
)

type Hint struct {
	Message string `json:"message" yaml:"message"`
	Key     string `json:"key" yaml:"key"`
	Value   string `json:"value" yaml:"value"`
}

type AdviceInput struct {
	Slots            int
	MaxPerSlot       int
	CoreqTogether    bool
	ElectiveConflict bool
	PreferLightLoad  bool
}

// Advise proposes relaxations for an infeasible plan.
func Advise(in AdviceInput) []Hint {
	var hints []Hint

	if in.Slots < slotCountThreshold {
		hints = append(hints, Hint{
			Message: "Increase the number of terms so every course can be placed.",
			Key:     HintIncreaseSlotCount,
			Value:   strconv.Itoa(in.Slots + 1),
		})
	}

	if !in.PreferLightLoad && in.MaxPerSlot < lightLoadThreshold {
		hints = append(hints, Hint{
			Message: "Raise the maximum credits per term to finish sooner.",
			Key:     HintIncreaseMaxPerSlot,
			Value:   strconv.Itoa(in.MaxPerSlot + maxPerSlotIncrement),
		})
	}

	if in.CoreqTogether {
		hints = append(hints, Hint{
			Message: "Allow corequisites to be taken in different terms.",
			Key:     HintRelaxCoreqTogether,
			Value:   "true",
		})
	}

	if in.ElectiveConflict {
		hints = append(hints, Hint{
			Message: "Choose different electives to resolve the group conflict.",
			Key:     HintChangeElectiveGroup,
			Value:   "try-different-group",
		})
	}

	return hints
}

package engine

import (
	animaldomain "github.com/MegaDev007/farmheart-backend-sub000/internal/animal/domain"
)

// Classify normalizes a raw snapshot against the animal's stored lifecycle
// state. It does not decide when an animal retires; that is set by external
// business rules (breed-count exhaustion, explicit owner action). It only
// stamps the state so the evaluator can detect the edge.
//
// Normalization rules:
//   - percentages are clamped to [0,100]
//   - lifecycle comes from the stored animal, falling back to active for an
//     unknown stored value
//   - breedability requires an operable, active animal
func Classify(animal *animaldomain.Animal, snap animaldomain.StatSnapshot) animaldomain.StatSnapshot {
	snap.HungerPercent = animaldomain.ClampPercent(snap.HungerPercent)
	snap.HappinessPercent = animaldomain.ClampPercent(snap.HappinessPercent)
	snap.HeatPercent = animaldomain.ClampPercent(snap.HeatPercent)

	state := animaldomain.LifecycleActive
	if animal != nil && animal.LifecycleState.Valid() {
		state = animal.LifecycleState
	}
	snap.LifecycleState = state

	if !snap.IsOperable || state != animaldomain.LifecycleActive {
		snap.IsBreedable = false
	}
	return snap
}

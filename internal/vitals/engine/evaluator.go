package engine

import (
	animaldomain "github.com/MegaDev007/farmheart-backend-sub000/internal/animal/domain"
)

// Fixed thresholds for the vitals rules.
const (
	hungerAlertThreshold    = 75
	hungerCriticalThreshold = 95

	happinessAlertThreshold    = 25
	happinessCriticalThreshold = 5
)

// baseline is the assumed previous state when no snapshot exists yet: a
// perfectly healthy animal. A first reading therefore only alerts when it is
// genuinely bad.
func baseline(curr animaldomain.StatSnapshot) animaldomain.StatSnapshot {
	return animaldomain.StatSnapshot{
		AnimalID:         curr.AnimalID,
		HungerPercent:    0,
		HappinessPercent: 100,
		HeatPercent:      0,
		IsOperable:       true,
		IsBreedable:      false,
		LifecycleState:   animaldomain.LifecycleActive,
	}
}

// Evaluate compares the previous and current snapshots and returns candidate
// events. Rules run in a fixed order because later rules are gated on
// earlier ones:
//
//  1. lifecycle suppression: retired emits only its one-time edge event,
//     archived emits nothing
//  2. operability falling edge (critical)
//  3. breeding-readiness rising edge, operable animals only
//  4. hunger rising edge at >= 75, critical at >= 95; re-fires on every
//     further increase and relies on the cooldown window for anti-spam
//  5. happiness falling edge at <= 25, critical at <= 5, symmetric to hunger
//
// prev may be nil for an animal's first ever evaluation.
func Evaluate(animal *animaldomain.Animal, prev *animaldomain.StatSnapshot, curr animaldomain.StatSnapshot) []Event {
	if animal == nil {
		return nil
	}

	before := baseline(curr)
	if prev != nil {
		before = *prev
	}

	name := animal.Name
	emit := func(events []Event, t EventType, sev Severity, payload Payload) []Event {
		return append(events, Event{
			Type:     t,
			Severity: sev,
			AnimalID: animal.ID,
			OwnerID:  animal.OwnerID,
			Payload:  payload,
		})
	}

	// Rule 1: lifecycle suppression.
	switch curr.LifecycleState {
	case animaldomain.LifecycleArchived:
		return nil
	case animaldomain.LifecycleRetired:
		if before.LifecycleState != animaldomain.LifecycleRetired {
			return emit(nil, EventBecameRetired, SeverityMedium, RetiredPayload{AnimalName: name})
		}
		return nil
	}

	var events []Event

	// Rule 2: operability falling edge.
	if !curr.IsOperable {
		if before.IsOperable {
			events = emit(events, EventBecameInoperable, SeverityCritical, InoperablePayload{
				AnimalName:       name,
				HungerPercent:    curr.HungerPercent,
				HappinessPercent: curr.HappinessPercent,
			})
		}
		// Remaining rules only apply to operable animals.
		return events
	}

	// Rule 3: breeding-readiness rising edge.
	if curr.IsBreedable && !before.IsBreedable {
		events = emit(events, EventReadyToBreed, SeverityMedium, BreedReadyPayload{
			AnimalName:  name,
			HeatPercent: curr.HeatPercent,
		})
	}

	// Rule 4: hunger rising edge.
	if curr.HungerPercent >= hungerAlertThreshold && curr.HungerPercent > before.HungerPercent {
		t, sev := EventHunger, SeverityHigh
		if curr.HungerPercent >= hungerCriticalThreshold {
			t, sev = EventCriticalHunger, SeverityCritical
		}
		events = emit(events, t, sev, HungerPayload{
			AnimalName:    name,
			HungerPercent: curr.HungerPercent,
		})
	}

	// Rule 5: happiness falling edge.
	if curr.HappinessPercent <= happinessAlertThreshold && curr.HappinessPercent < before.HappinessPercent {
		t, sev := EventLowHappiness, SeverityHigh
		if curr.HappinessPercent <= happinessCriticalThreshold {
			t, sev = EventCriticalHappiness, SeverityCritical
		}
		events = emit(events, t, sev, HappinessPayload{
			AnimalName:       name,
			HappinessPercent: curr.HappinessPercent,
		})
	}

	return events
}

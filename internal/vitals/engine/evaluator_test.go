package engine

import (
	"testing"

	animaldomain "github.com/MegaDev007/farmheart-backend-sub000/internal/animal/domain"
)

func testAnimal() *animaldomain.Animal {
	return &animaldomain.Animal{
		ID:             1001,
		OwnerID:        42,
		Name:           "Clover",
		Species:        "cow",
		LifecycleState: animaldomain.LifecycleActive,
	}
}

func healthySnapshot() animaldomain.StatSnapshot {
	return animaldomain.StatSnapshot{
		AnimalID:         1001,
		HungerPercent:    0,
		HappinessPercent: 100,
		HeatPercent:      0,
		IsOperable:       true,
		LifecycleState:   animaldomain.LifecycleActive,
	}
}

func eventTypes(events []Event) []EventType {
	out := make([]EventType, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}

func TestEvaluateNilAnimal(t *testing.T) {
	if events := Evaluate(nil, nil, healthySnapshot()); events != nil {
		t.Fatalf("expected nil events, got %v", events)
	}
}

func TestEvaluateFirstReadingHealthy(t *testing.T) {
	if events := Evaluate(testAnimal(), nil, healthySnapshot()); len(events) != 0 {
		t.Fatalf("expected no events for healthy first reading, got %v", eventTypes(events))
	}
}

func TestEvaluateFirstReadingBad(t *testing.T) {
	curr := healthySnapshot()
	curr.HungerPercent = 80
	curr.HappinessPercent = 20

	events := Evaluate(testAnimal(), nil, curr)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %v", eventTypes(events))
	}
	if events[0].Type != EventHunger {
		t.Fatalf("expected hunger first, got %s", events[0].Type)
	}
	if events[1].Type != EventLowHappiness {
		t.Fatalf("expected low_happiness second, got %s", events[1].Type)
	}
}

func TestEvaluateHungerRisingEdge(t *testing.T) {
	prev := healthySnapshot()
	prev.HungerPercent = 60

	curr := healthySnapshot()
	curr.HungerPercent = 80

	events := Evaluate(testAnimal(), &prev, curr)
	if len(events) != 1 || events[0].Type != EventHunger {
		t.Fatalf("expected hunger event, got %v", eventTypes(events))
	}
	if events[0].Severity != SeverityHigh {
		t.Fatalf("expected high severity, got %s", events[0].Severity)
	}
}

func TestEvaluateHungerRefiresOnIncrease(t *testing.T) {
	prev := healthySnapshot()
	prev.HungerPercent = 80

	curr := healthySnapshot()
	curr.HungerPercent = 96

	events := Evaluate(testAnimal(), &prev, curr)
	if len(events) != 1 || events[0].Type != EventCriticalHunger {
		t.Fatalf("expected critical_hunger, got %v", eventTypes(events))
	}
	if events[0].Severity != SeverityCritical {
		t.Fatalf("expected critical severity, got %s", events[0].Severity)
	}
}

func TestEvaluateHungerNoRefireOnEqual(t *testing.T) {
	prev := healthySnapshot()
	prev.HungerPercent = 80

	curr := healthySnapshot()
	curr.HungerPercent = 80

	if events := Evaluate(testAnimal(), &prev, curr); len(events) != 0 {
		t.Fatalf("equal hunger must not re-fire, got %v", eventTypes(events))
	}
}

func TestEvaluateHungerNoFireOnDecrease(t *testing.T) {
	prev := healthySnapshot()
	prev.HungerPercent = 96

	curr := healthySnapshot()
	curr.HungerPercent = 85

	if events := Evaluate(testAnimal(), &prev, curr); len(events) != 0 {
		t.Fatalf("decreasing hunger must not fire, got %v", eventTypes(events))
	}
}

func TestEvaluateHungerBelowThreshold(t *testing.T) {
	prev := healthySnapshot()
	prev.HungerPercent = 60

	curr := healthySnapshot()
	curr.HungerPercent = 74

	if events := Evaluate(testAnimal(), &prev, curr); len(events) != 0 {
		t.Fatalf("hunger below threshold must not fire, got %v", eventTypes(events))
	}
}

func TestEvaluateHungerExactThreshold(t *testing.T) {
	prev := healthySnapshot()
	prev.HungerPercent = 74

	curr := healthySnapshot()
	curr.HungerPercent = 75

	events := Evaluate(testAnimal(), &prev, curr)
	if len(events) != 1 || events[0].Type != EventHunger {
		t.Fatalf("hunger at exactly 75 must fire, got %v", eventTypes(events))
	}
}

func TestEvaluateHappinessFallingEdge(t *testing.T) {
	prev := healthySnapshot()
	prev.HappinessPercent = 30

	curr := healthySnapshot()
	curr.HappinessPercent = 20

	events := Evaluate(testAnimal(), &prev, curr)
	if len(events) != 1 || events[0].Type != EventLowHappiness {
		t.Fatalf("expected low_happiness, got %v", eventTypes(events))
	}
}

func TestEvaluateHappinessCritical(t *testing.T) {
	prev := healthySnapshot()
	prev.HappinessPercent = 10

	curr := healthySnapshot()
	curr.HappinessPercent = 4

	events := Evaluate(testAnimal(), &prev, curr)
	if len(events) != 1 || events[0].Type != EventCriticalHappiness {
		t.Fatalf("expected critical_happiness, got %v", eventTypes(events))
	}
}

func TestEvaluateHappinessNoFireOnRise(t *testing.T) {
	prev := healthySnapshot()
	prev.HappinessPercent = 10

	curr := healthySnapshot()
	curr.HappinessPercent = 20

	if events := Evaluate(testAnimal(), &prev, curr); len(events) != 0 {
		t.Fatalf("rising happiness must not fire, got %v", eventTypes(events))
	}
}

func TestEvaluateInoperableFallingEdge(t *testing.T) {
	prev := healthySnapshot()

	curr := healthySnapshot()
	curr.IsOperable = false
	curr.HungerPercent = 100
	curr.HappinessPercent = 0

	events := Evaluate(testAnimal(), &prev, curr)
	if len(events) != 1 || events[0].Type != EventBecameInoperable {
		t.Fatalf("expected only became_inoperable, got %v", eventTypes(events))
	}
	if events[0].Severity != SeverityCritical {
		t.Fatalf("expected critical severity, got %s", events[0].Severity)
	}
}

func TestEvaluateInoperableGatesLaterRules(t *testing.T) {
	prev := healthySnapshot()
	prev.IsOperable = false
	prev.HungerPercent = 80

	// Still inoperable: no inoperable edge and no hunger events even though
	// hunger keeps rising.
	curr := healthySnapshot()
	curr.IsOperable = false
	curr.HungerPercent = 96

	if events := Evaluate(testAnimal(), &prev, curr); len(events) != 0 {
		t.Fatalf("inoperable animal must stay silent, got %v", eventTypes(events))
	}
}

func TestEvaluateBreedReadyRisingEdge(t *testing.T) {
	prev := healthySnapshot()

	curr := healthySnapshot()
	curr.IsBreedable = true
	curr.HeatPercent = 100

	events := Evaluate(testAnimal(), &prev, curr)
	if len(events) != 1 || events[0].Type != EventReadyToBreed {
		t.Fatalf("expected ready_to_breed, got %v", eventTypes(events))
	}
}

func TestEvaluateBreedReadyNoRefire(t *testing.T) {
	prev := healthySnapshot()
	prev.IsBreedable = true

	curr := healthySnapshot()
	curr.IsBreedable = true

	if events := Evaluate(testAnimal(), &prev, curr); len(events) != 0 {
		t.Fatalf("sustained breedable must not re-fire, got %v", eventTypes(events))
	}
}

func TestEvaluateRetiredEdge(t *testing.T) {
	prev := healthySnapshot()

	curr := healthySnapshot()
	curr.LifecycleState = animaldomain.LifecycleRetired
	curr.HungerPercent = 96

	events := Evaluate(testAnimal(), &prev, curr)
	if len(events) != 1 || events[0].Type != EventBecameRetired {
		t.Fatalf("retirement must emit only its edge event, got %v", eventTypes(events))
	}
}

func TestEvaluateRetiredStaysSilent(t *testing.T) {
	prev := healthySnapshot()
	prev.LifecycleState = animaldomain.LifecycleRetired

	curr := healthySnapshot()
	curr.LifecycleState = animaldomain.LifecycleRetired
	curr.HungerPercent = 100
	curr.HappinessPercent = 0

	if events := Evaluate(testAnimal(), &prev, curr); len(events) != 0 {
		t.Fatalf("retired animal must stay silent, got %v", eventTypes(events))
	}
}

func TestEvaluateArchivedSilent(t *testing.T) {
	prev := healthySnapshot()

	curr := healthySnapshot()
	curr.LifecycleState = animaldomain.LifecycleArchived
	curr.HungerPercent = 100
	curr.IsOperable = false

	if events := Evaluate(testAnimal(), &prev, curr); len(events) != 0 {
		t.Fatalf("archived animal must emit nothing, got %v", eventTypes(events))
	}
}

func TestEvaluateEventIdentity(t *testing.T) {
	curr := healthySnapshot()
	curr.HungerPercent = 80

	events := Evaluate(testAnimal(), nil, curr)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].AnimalID != 1001 || events[0].OwnerID != 42 {
		t.Fatalf("event identity mismatch: %+v", events[0])
	}
	fields := events[0].Payload.Fields()
	if fields["animal_name"] != "Clover" {
		t.Fatalf("payload missing animal name: %v", fields)
	}
}

func TestEvaluateCombinedHungerAndHappiness(t *testing.T) {
	prev := healthySnapshot()
	prev.HungerPercent = 60
	prev.HappinessPercent = 40

	curr := healthySnapshot()
	curr.HungerPercent = 97
	curr.HappinessPercent = 3

	events := Evaluate(testAnimal(), &prev, curr)
	got := eventTypes(events)
	if len(got) != 2 || got[0] != EventCriticalHunger || got[1] != EventCriticalHappiness {
		t.Fatalf("expected [critical_hunger critical_happiness], got %v", got)
	}
}

// Package engine implements the vitals rule engine: lifecycle
// classification and edge-triggered threshold evaluation. It is pure logic
// with no I/O; orchestration lives in the vitals service.
package engine

import "github.com/bwmarrin/snowflake"

// Severity grades how urgent an event is for the owner.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// EventType is the closed set of conditions the evaluator can report.
type EventType string

const (
	EventBecameRetired     EventType = "became_retired"
	EventBecameInoperable  EventType = "became_inoperable"
	EventReadyToBreed      EventType = "ready_to_breed"
	EventHunger            EventType = "hunger"
	EventCriticalHunger    EventType = "critical_hunger"
	EventLowHappiness      EventType = "low_happiness"
	EventCriticalHappiness EventType = "critical_happiness"
)

// EmailEligible reports whether the type may use the email channel at all,
// independent of user preference. Hunger and happiness alerts are in-app
// only: they recur too often for email.
func (t EventType) EmailEligible() bool {
	switch t {
	case EventBecameRetired, EventBecameInoperable, EventReadyToBreed:
		return true
	}
	return false
}

// Category is the stable string stored on notification records and used as
// the dedup key together with owner and animal.
func (t EventType) Category() string { return string(t) }

// Payload carries the typed data of one event kind.
type Payload interface {
	Fields() map[string]any
}

type RetiredPayload struct {
	AnimalName string
}

func (p RetiredPayload) Fields() map[string]any {
	return map[string]any{"animal_name": p.AnimalName}
}

type InoperablePayload struct {
	AnimalName       string
	HungerPercent    int
	HappinessPercent int
}

func (p InoperablePayload) Fields() map[string]any {
	return map[string]any{
		"animal_name":       p.AnimalName,
		"hunger_percent":    p.HungerPercent,
		"happiness_percent": p.HappinessPercent,
	}
}

type BreedReadyPayload struct {
	AnimalName  string
	HeatPercent int
}

func (p BreedReadyPayload) Fields() map[string]any {
	return map[string]any{
		"animal_name":  p.AnimalName,
		"heat_percent": p.HeatPercent,
	}
}

type HungerPayload struct {
	AnimalName    string
	HungerPercent int
}

func (p HungerPayload) Fields() map[string]any {
	return map[string]any{
		"animal_name":    p.AnimalName,
		"hunger_percent": p.HungerPercent,
	}
}

type HappinessPayload struct {
	AnimalName       string
	HappinessPercent int
}

func (p HappinessPayload) Fields() map[string]any {
	return map[string]any{
		"animal_name":       p.AnimalName,
		"happiness_percent": p.HappinessPercent,
	}
}

// Event is one candidate alert. It lives only within an evaluation pass;
// suppression and dispatch decide whether it becomes a notification.
type Event struct {
	Type     EventType
	Severity Severity
	AnimalID snowflake.ID
	OwnerID  snowflake.ID
	Payload  Payload
}

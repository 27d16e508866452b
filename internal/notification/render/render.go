// Package render turns engine events into user-facing notification text and
// email bodies.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MegaDev007/farmheart-backend-sub000/internal/vitals/engine"
)

// Rendered is the channel-independent text of a notification.
type Rendered struct {
	Title   string
	Message string
}

type messageTemplate struct {
	title   string
	message string
}

// Placeholders use {field} names matching the event payload fields. The set
// of event types is closed, so a missing entry is a programming error
// caught by TestAllEventTypesHaveTemplates.
var templates = map[engine.EventType]messageTemplate{
	engine.EventBecameRetired: {
		title:   "{animal_name} has retired",
		message: "{animal_name} has reached the end of its working life and is now retired. It no longer needs day-to-day care.",
	},
	engine.EventBecameInoperable: {
		title:   "{animal_name} needs urgent attention",
		message: "{animal_name} is no longer able to work. Hunger is at {hunger_percent}% and happiness at {happiness_percent}%.",
	},
	engine.EventReadyToBreed: {
		title:   "{animal_name} is ready to breed",
		message: "{animal_name} has reached full heat ({heat_percent}%) and is ready to breed.",
	},
	engine.EventHunger: {
		title:   "{animal_name} is hungry",
		message: "{animal_name}'s hunger has risen to {hunger_percent}%. Time to feed it.",
	},
	engine.EventCriticalHunger: {
		title:   "{animal_name} is starving",
		message: "{animal_name}'s hunger has reached {hunger_percent}%. Feed it now before it becomes inoperable.",
	},
	engine.EventLowHappiness: {
		title:   "{animal_name} is unhappy",
		message: "{animal_name}'s happiness has dropped to {happiness_percent}%. Some attention would help.",
	},
	engine.EventCriticalHappiness: {
		title:   "{animal_name} is miserable",
		message: "{animal_name}'s happiness is down to {happiness_percent}%. It needs care urgently.",
	},
}

// Notification renders the title and message for an event by substituting
// payload fields into the template for its type.
func Notification(event engine.Event) Rendered {
	tmpl, ok := templates[event.Type]
	if !ok {
		// Unknown types cannot occur for the closed enum; keep a readable
		// fallback anyway so a future type never renders empty.
		return Rendered{
			Title:   strings.ReplaceAll(string(event.Type), "_", " "),
			Message: strings.ReplaceAll(string(event.Type), "_", " "),
		}
	}

	replacer := payloadReplacer(event.Payload)
	return Rendered{
		Title:   replacer.Replace(tmpl.title),
		Message: replacer.Replace(tmpl.message),
	}
}

// KnownEventTypes lists every type with a template, sorted for stable tests.
func KnownEventTypes() []engine.EventType {
	types := make([]engine.EventType, 0, len(templates))
	for t := range templates {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func payloadReplacer(payload engine.Payload) *strings.Replacer {
	if payload == nil {
		return strings.NewReplacer()
	}
	fields := payload.Fields()
	pairs := make([]string, 0, len(fields)*2)
	for key, value := range fields {
		pairs = append(pairs, "{"+key+"}", fmt.Sprintf("%v", value))
	}
	return strings.NewReplacer(pairs...)
}

package session

import (
	"errors"
	"fmt"

	"github.com/neexbeast/islandhop/internal/geo"
	"github.com/neexbeast/islandhop/internal/itinerary"
	"github.com/neexbeast/islandhop/internal/mood"
	"github.com/neexbeast/islandhop/internal/pricing"
)

// ErrInvalidEvent is returned for events with an unknown type or missing fields.
var ErrInvalidEvent = errors.New("invalid event")

// EventType names a UI action.
type EventType string

const (
	EventToggleLocation      EventType = "toggle_location"
	EventToggleActivity      EventType = "toggle_activity"
	EventSetMoodFilter       EventType = "set_mood_filter"
	EventSetIslandFilter     EventType = "set_island_filter"
	EventSetStartAtHub       EventType = "set_start_at_hub"
	EventInsertDay           EventType = "insert_day"
	EventDeleteDay           EventType = "delete_day"
	EventMoveItem            EventType = "move_item"
	EventSetTransport        EventType = "set_transport"
	EventSetFerryClass       EventType = "set_ferry_class"
	EventSetCabModel         EventType = "set_cab_model"
	EventToggleScooterIsland EventType = "toggle_scooter_island"
	EventChooseHotel         EventType = "choose_hotel"
	EventSetAdults           EventType = "set_adults"
	EventSetInfants          EventType = "set_infants"
)

// Event is one UI action. Only the fields relevant to Type are read.
type Event struct {
	Type      EventType           `json:"type"`
	ID        string              `json:"id,omitempty"`
	Island    geo.Island          `json:"island,omitempty"`
	Mood      mood.Tag            `json:"mood,omitempty"`
	Class     pricing.FerryClass  `json:"class,omitempty"`
	Transport itinerary.Transport `json:"transport,omitempty"`
	Enabled   *bool               `json:"enabled,omitempty"`
	Count     *int                `json:"count,omitempty"`
	Day       *int                `json:"day,omitempty"`
	Position  *int                `json:"position,omitempty"`
	Direction int                 `json:"direction,omitempty"`
}

// Apply dispatches an event to the matching session method. It reports
// whether the event changed anything; rejected edits are not errors.
func (s *Session) Apply(ev Event) (bool, error) {
	if !s.Ready() {
		return false, ErrUnavailable
	}

	switch ev.Type {
	case EventToggleLocation:
		return s.ToggleLocation(ev.ID), nil
	case EventToggleActivity:
		return s.ToggleActivity(ev.ID), nil
	case EventSetMoodFilter:
		return s.SetMoodFilter(ev.Mood), nil
	case EventSetIslandFilter:
		return s.SetIslandFilter(ev.Island), nil
	case EventSetStartAtHub:
		if ev.Enabled == nil {
			return false, missing(ev.Type, "enabled")
		}
		return s.SetStartAtHub(*ev.Enabled), nil
	case EventInsertDay:
		if ev.Day == nil {
			return false, missing(ev.Type, "day")
		}
		return s.InsertDayAfter(*ev.Day), nil
	case EventDeleteDay:
		if ev.Day == nil {
			return false, missing(ev.Type, "day")
		}
		return s.DeleteDay(*ev.Day), nil
	case EventMoveItem:
		if ev.Day == nil || ev.Position == nil {
			return false, missing(ev.Type, "day and position")
		}
		return s.MoveItem(*ev.Day, *ev.Position, ev.Direction), nil
	case EventSetTransport:
		if ev.Day == nil {
			return false, missing(ev.Type, "day")
		}
		return s.SetTransport(*ev.Day, ev.Transport), nil
	case EventSetFerryClass:
		return s.SetFerryClass(ev.Class), nil
	case EventSetCabModel:
		return s.SetCabModel(ev.ID), nil
	case EventToggleScooterIsland:
		return s.ToggleScooterIsland(ev.Island), nil
	case EventChooseHotel:
		return s.ChooseHotel(ev.Island, ev.ID), nil
	case EventSetAdults:
		if ev.Count == nil {
			return false, missing(ev.Type, "count")
		}
		return s.SetAdults(*ev.Count), nil
	case EventSetInfants:
		if ev.Count == nil {
			return false, missing(ev.Type, "count")
		}
		return s.SetInfants(*ev.Count), nil
	default:
		return false, fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, ev.Type)
	}
}

func missing(t EventType, field string) error {
	return fmt.Errorf("%w: %s requires %s", ErrInvalidEvent, t, field)
}

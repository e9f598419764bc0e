package services

import (
	"math"

	"jelajah/internal/models/response_models"
)

// WithUserCost returns a copy of it where only the activity at
// (dayIndex, activityIndex) carries cost as its user cost. The outer slice and
// the touched day's activities are copied; every other day shares its
// activities with it. Out of range indices or a cost that is negative or not
// finite return it itself.
func WithUserCost(it response_models.Itinerary, dayIndex, activityIndex int, cost float64) response_models.Itinerary {
	if dayIndex < 0 || dayIndex >= len(it) {
		return it
	}
	if activityIndex < 0 || activityIndex >= len(it[dayIndex].Activities) {
		return it
	}
	if math.IsNaN(cost) || math.IsInf(cost, 0) || cost < 0 {
		return it
	}

	next := make(response_models.Itinerary, len(it))
	copy(next, it)

	day := next[dayIndex]
	activities := make([]response_models.Activity, len(day.Activities))
	copy(activities, day.Activities)

	c := cost
	activities[activityIndex].UserCost = &c
	day.Activities = activities
	next[dayIndex] = day

	return next
}

// ItineraryStore holds the current itinerary of one planner, if any. The zero
// value is an empty store.
type ItineraryStore struct {
	Current response_models.Itinerary `json:"itinerary"`
	Present bool                      `json:"present"`
}

func (s *ItineraryStore) Replace(it response_models.Itinerary) {
	s.Current = it
	s.Present = true
}

// UpdateCost is a no-op when there is no itinerary or the indices miss.
func (s *ItineraryStore) UpdateCost(dayIndex, activityIndex int, cost float64) bool {
	if !s.Present {
		return false
	}
	next := WithUserCost(s.Current, dayIndex, activityIndex, cost)
	if sameItinerary(next, s.Current) {
		return false
	}
	s.Current = next
	return true
}

func (s *ItineraryStore) Clear() {
	s.Current = nil
	s.Present = false
}

// Snapshot returns the current itinerary and whether one is held.
func (s *ItineraryStore) Snapshot() (response_models.Itinerary, bool) {
	return s.Current, s.Present
}

// sameItinerary reports whether a and b are the same slice value, which is
// how WithUserCost signals that nothing changed.
func sameItinerary(a, b response_models.Itinerary) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

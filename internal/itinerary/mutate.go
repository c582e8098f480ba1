package itinerary

import "slices"

// The mutation methods edit the itinerary in place and report whether the
// edit was applied. Out-of-range indices and edits to locked days are
// ignored rather than treated as errors; the UI is expected to disable
// those controls. Time caps are not re-checked after manual edits.

// InsertDayAfter inserts an empty, unlocked point-to-point day on the island
// of day i. Nothing may be inserted after the final departure day.
func (it *Itinerary) InsertDayAfter(i int) bool {
	if i < 0 || i >= len(it.Days)-1 {
		return false
	}
	day := Day{Island: it.Days[i].Island, Transport: PointToPoint, Items: []Item{}}
	it.Days = slices.Insert(it.Days, i+1, day)
	return true
}

// DeleteDay removes day i unless it is locked or the itinerary would drop
// below two days.
func (it *Itinerary) DeleteDay(i int) bool {
	if i < 0 || i >= len(it.Days) || it.Days[i].Locked || len(it.Days) <= 2 {
		return false
	}
	it.Days = slices.Delete(it.Days, i, i+1)
	return true
}

// MoveItem moves the item at position p of day from to the end of the
// neighbouring day in direction dir (-1 or +1). Arrival, departure and
// transfer items stay on their anchor days.
func (it *Itinerary) MoveItem(from, p, dir int) bool {
	if dir != -1 && dir != 1 {
		return false
	}
	to := from + dir
	if from < 0 || from >= len(it.Days) || to < 0 || to >= len(it.Days) {
		return false
	}
	src := &it.Days[from]
	if p < 0 || p >= len(src.Items) || src.Items[p].IsAnchor() {
		return false
	}

	item := src.Items[p]
	src.Items = slices.Delete(src.Items, p, p+1)
	it.Days[to].Items = append(it.Days[to].Items, item)
	return true
}

// SetTransport overwrites the transport mode of day i unless it is locked.
func (it *Itinerary) SetTransport(i int, mode Transport) bool {
	if i < 0 || i >= len(it.Days) || it.Days[i].Locked || !mode.Valid() {
		return false
	}
	it.Days[i].Transport = mode
	return true
}

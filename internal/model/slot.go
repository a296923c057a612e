package model

import "time"

// SlotLabelFormat renders a slot label from its starting time, e.g. "09:00 AM".
const SlotLabelFormat = "03:04 PM"

// Default working hours, used when a doctor has not configured a schedule.
// They produce the historical fixed catalog of 14 hourly labels,
// "09:00 AM" through "10:00 PM".
const (
	DefaultStartHour = 9
	DefaultEndHour   = 22
)

// WorkHours is a doctor's configured daily schedule. Slots are hourly windows
// starting at StartHour and ending with the window that starts at EndHour.
type WorkHours struct {
	StartHour int `json:"start_hour" db:"work_start_hour"`
	EndHour   int `json:"end_hour" db:"work_end_hour"`
}

// Valid reports whether the configured hours describe a non-empty day.
func (w WorkHours) Valid() bool {
	return w.StartHour >= 0 && w.EndHour <= 23 && w.StartHour <= w.EndHour
}

// Catalog returns the ordered slot labels for the configured hours.
func (w WorkHours) Catalog() []string {
	if !w.Valid() {
		return DefaultCatalog()
	}
	labels := make([]string, 0, w.EndHour-w.StartHour+1)
	for h := w.StartHour; h <= w.EndHour; h++ {
		t := time.Date(0, 1, 1, h, 0, 0, 0, time.UTC)
		labels = append(labels, t.Format(SlotLabelFormat))
	}
	return labels
}

// Contains reports whether label is part of the catalog.
func (w WorkHours) Contains(label string) bool {
	for _, l := range w.Catalog() {
		if l == label {
			return true
		}
	}
	return false
}

// DefaultCatalog returns the system-wide fixed catalog in calendar order.
func DefaultCatalog() []string {
	return WorkHours{StartHour: DefaultStartHour, EndHour: DefaultEndHour}.Catalog()
}

// UnavailableSlot is a doctor-declared exclusion of one slot label on one
// date, independent of bookings. Rows for a date are replaced wholesale on
// each update, never merged.
type UnavailableSlot struct {
	ID       int64  `json:"id" db:"id"`
	DoctorID string `json:"doctor_id" db:"doctor_id"`
	Date     string `json:"date" db:"date"`
	TimeSlot string `json:"time_slot" db:"time_slot"`
}

// SetUnavailabilityRequest replaces the caller's unavailable slots for a date.
// An empty list clears the date.
type SetUnavailabilityRequest struct {
	Date      string   `json:"date" binding:"required"`
	TimeSlots []string `json:"time_slots" binding:"required"`
}

// DaySlots is the availability picture for one doctor and date.
type DaySlots struct {
	UnavailableSlots []string `json:"unavailable_slots"`
	BookedSlots      []string `json:"booked_slots"`
	AvailableSlots   []string `json:"available_slots"`
}

package model

import (
	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusApproved  AppointmentStatus = "approved"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCanceled  AppointmentStatus = "canceled"
)

// allowedTransitions is the closed transition table. Anything not listed is
// rejected: canceled and completed are terminal.
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:  {AppointmentStatusApproved, AppointmentStatusCompleted, AppointmentStatusCanceled},
	AppointmentStatusApproved: {AppointmentStatusCompleted, AppointmentStatusCanceled},
}

// CanTransition reports whether moving from one status to another is allowed.
func (s AppointmentStatus) CanTransition(to AppointmentStatus) bool {
	for _, next := range allowedTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusApproved,
		AppointmentStatusCompleted, AppointmentStatusCanceled:
		return true
	}
	return false
}

// Appointment is a booked occupation of one slot label on one date between
// one doctor and one patient. Never hard-deleted; only the status moves.
type Appointment struct {
	Base
	DoctorID  uuid.UUID         `json:"doctor_id" db:"doctor_id"`
	PatientID uuid.UUID         `json:"patient_id" db:"patient_id"`
	Date      string            `json:"date" db:"date"`
	TimeSlot  string            `json:"time_slot" db:"time_slot"`
	Status    AppointmentStatus `json:"status" db:"status"`
}

// BookSlotRequest creates a pending appointment for the caller as patient.
type BookSlotRequest struct {
	DoctorID string `json:"doctor_id" binding:"required,uuid"`
	Date     string `json:"date" binding:"required"`
	TimeSlot string `json:"time_slot" binding:"required"`
}

// AppointmentActionRequest targets an existing appointment by id.
type AppointmentActionRequest struct {
	AppointmentID string `json:"appointment_id" binding:"required,uuid"`
}

// AppointmentWithProfile enriches an appointment row with the counterpart's
// public profile fields from the left-joined profile table.
type AppointmentWithProfile struct {
	ID         uuid.UUID         `json:"id" db:"id"`
	DoctorID   uuid.UUID         `json:"doctor_id" db:"doctor_id"`
	PatientID  uuid.UUID         `json:"patient_id" db:"patient_id"`
	Date       string            `json:"date" db:"date"`
	TimeSlot   string            `json:"time_slot" db:"time_slot"`
	Status     AppointmentStatus `json:"status" db:"status"`
	Name       *string           `json:"name" db:"name"`
	Age        *int              `json:"age" db:"age"`
	Gender     *string           `json:"gender" db:"gender"`
	Email      *string           `json:"email" db:"email"`
	PhoneNo    *string           `json:"phone_no" db:"phone_no"`
	ProfileImg *string           `json:"profile_img" db:"profile_img"`
}

// AppointmentFilters narrows appointment listings.
type AppointmentFilters struct {
	Status    AppointmentStatus
	Date      string
	TodayOnly bool
}

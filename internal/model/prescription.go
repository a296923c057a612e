package model

import "github.com/google/uuid"

// Prescription is an uploaded document tied to an appointment. Created once
// per upload, immutable.
type Prescription struct {
	Base
	AppointmentID uuid.UUID `json:"appointment_id" db:"appointment_id"`
	DoctorID      uuid.UUID `json:"doctor_id" db:"doctor_id"`
	PatientID     uuid.UUID `json:"patient_id" db:"patient_id"`
	Document      string    `json:"document" db:"document"`
}

// PrescriptionWithDoctor joins a prescription row with the issuing doctor's
// public profile fields and the resolved document URL.
type PrescriptionWithDoctor struct {
	ID          uuid.UUID `json:"id" db:"id"`
	DoctorID    uuid.UUID `json:"doctor_id" db:"doctor_id"`
	PatientID   uuid.UUID `json:"patient_id" db:"patient_id"`
	Document    string    `json:"document" db:"document"`
	DocumentURL string    `json:"document_url" db:"-"`
	Name        *string   `json:"name" db:"name"`
	Age         *int      `json:"age" db:"age"`
	Email       *string   `json:"email" db:"email"`
	PhoneNo     *string   `json:"phone_no" db:"phone_no"`
}

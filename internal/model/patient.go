package model

import "github.com/google/uuid"

// PatientProfile is the 1:1 profile for a user with the patient role.
type PatientProfile struct {
	Base
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	PhoneNo    string    `json:"phone_no" db:"phone_no"`
	Age        int       `json:"age" db:"age"`
	Gender     string    `json:"gender" db:"gender"`
	ProfileImg *string   `json:"profile_img" db:"profile_img"`
}

// UpsertPatientProfileRequest carries the mutable patient profile fields.
type UpsertPatientProfileRequest struct {
	Name   string `json:"name" binding:"required,max=255"`
	Email  string `json:"email" binding:"omitempty,email"`
	Phone  string `json:"phone"`
	Age    int    `json:"age" binding:"omitempty,gte=0,lte=130"`
	Gender string `json:"gender"`
}

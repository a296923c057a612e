package model

import "github.com/google/uuid"

// DoctorProfile is the 1:1 profile for a user with the doctor role. Mutable
// via upsert keyed on the owning user id.
type DoctorProfile struct {
	Base
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	PhoneNo        string    `json:"phone_no" db:"phone_no"`
	Specialization string    `json:"specialization" db:"specialization"`
	Age            int       `json:"age" db:"age"`
	Gender         string    `json:"gender" db:"gender"`
	WorkAt         string    `json:"work_at" db:"work_at"`
	Experience     string    `json:"experience" db:"experience"`
	Address        string    `json:"address" db:"address"`
	ProfileImg     *string   `json:"profile_img" db:"profile_img"`
	WorkStartHour  *int      `json:"work_start_hour" db:"work_start_hour"`
	WorkEndHour    *int      `json:"work_end_hour" db:"work_end_hour"`
}

// Hours returns the doctor's configured working hours, falling back to the
// default catalog when unconfigured.
func (d *DoctorProfile) Hours() WorkHours {
	if d == nil || d.WorkStartHour == nil || d.WorkEndHour == nil {
		return WorkHours{StartHour: DefaultStartHour, EndHour: DefaultEndHour}
	}
	hours := WorkHours{StartHour: *d.WorkStartHour, EndHour: *d.WorkEndHour}
	if !hours.Valid() {
		return WorkHours{StartHour: DefaultStartHour, EndHour: DefaultEndHour}
	}
	return hours
}

// UpsertDoctorProfileRequest carries the mutable doctor profile fields.
type UpsertDoctorProfileRequest struct {
	Name           string `json:"name" binding:"required,max=255"`
	Email          string `json:"email" binding:"omitempty,email"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
	Age            int    `json:"age" binding:"omitempty,gte=0,lte=130"`
	Gender         string `json:"gender"`
	WorkAt         string `json:"work_at"`
	Experience     string `json:"experience"`
	Address        string `json:"address"`
	WorkStartHour  *int   `json:"work_start_hour" binding:"omitempty,gte=0,lte=23"`
	WorkEndHour    *int   `json:"work_end_hour" binding:"omitempty,gte=0,lte=23"`
}

// ProfileCard is the minimal name+image shape used by the profile fetchers.
type ProfileCard struct {
	Name       string  `json:"name" db:"name"`
	ProfileImg *string `json:"profile_img" db:"profile_img"`
}

// RoleListing is one row of the public doctor/patient listings.
type RoleListing struct {
	Name   *string `json:"name" db:"name"`
	Age    *int    `json:"age" db:"age"`
	Gender *string `json:"gender" db:"gender"`
}

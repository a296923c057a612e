package postgres

// Repository constructors live next to their implementations; this file keeps
// the shared struct declarations in one place, mirroring the table layout:
// users, doctors, patients, unavailable_slots, appointments, prescriptions.

type doctorRepository struct {
	BaseRepository
}

type patientRepository struct {
	BaseRepository
}

type slotRepository struct {
	BaseRepository
}

type appointmentRepository struct {
	BaseRepository
}

type prescriptionRepository struct {
	BaseRepository
}

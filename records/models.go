package records

// Patient is a patient row in the records database.
type Patient struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
	Gender    string `json:"gender,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Doctor is a practitioner row.
type Doctor struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Specialty string `json:"specialty,omitempty"`
	Email     string `json:"email,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Appointment links a patient and a doctor at a scheduled time.
type Appointment struct {
	ID          string `json:"id,omitempty"`
	PatientID   string `json:"patient_id"`
	DoctorID    string `json:"doctor_id"`
	ScheduledAt string `json:"scheduled_at"`
	Status      string `json:"status,omitempty"`
	Notes       string `json:"notes,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Consultation stores the outcome of a telemedicine session.
type Consultation struct {
	ID        string `json:"id,omitempty"`
	PatientID string `json:"patient_id"`
	SessionID string `json:"session_id,omitempty"`
	Summary   string `json:"summary,omitempty"`
	Diagnosis string `json:"diagnosis,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

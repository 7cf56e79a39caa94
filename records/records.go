// Package records persists patients, doctors, appointments and consultations
// in Supabase.
package records

import (
	"fmt"

	"github.com/supabase-community/supabase-go"
)

// Config holds Supabase connection configuration.
type Config struct {
	URL    string
	APIKey string
}

// Client wraps the Supabase REST client for the records tables.
type Client struct {
	client *supabase.Client
}

// New creates a records client.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("supabase URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("supabase API key is required")
	}

	client, err := supabase.NewClient(cfg.URL, cfg.APIKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return &Client{client: client}, nil
}

// ListPatients returns all patient rows.
func (c *Client) ListPatients() ([]Patient, error) {
	var patients []Patient
	_, err := c.client.From("patients").
		Select("*", "", false).
		ExecuteTo(&patients)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

// GetPatient returns one patient by ID.
func (c *Client) GetPatient(id string) (*Patient, error) {
	var patient Patient
	_, err := c.client.From("patients").
		Select("*", "", false).
		Eq("id", id).
		Single().
		ExecuteTo(&patient)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

// CreatePatient inserts a patient and returns the stored row.
func (c *Client) CreatePatient(patient *Patient) (*Patient, error) {
	var created []Patient
	_, err := c.client.From("patients").
		Insert(patient, false, "", "representation", "").
		ExecuteTo(&created)
	if err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("patient insert returned no rows")
	}
	return &created[0], nil
}

// UpdatePatient applies changes to a patient row.
func (c *Client) UpdatePatient(id string, patient *Patient) (*Patient, error) {
	var updated []Patient
	_, err := c.client.From("patients").
		Update(patient, "representation", "").
		Eq("id", id).
		ExecuteTo(&updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	if len(updated) == 0 {
		return nil, fmt.Errorf("patient not found")
	}
	return &updated[0], nil
}

// DeletePatient removes a patient row.
func (c *Client) DeletePatient(id string) error {
	_, _, err := c.client.From("patients").
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}

// ListDoctors returns all doctor rows.
func (c *Client) ListDoctors() ([]Doctor, error) {
	var doctors []Doctor
	_, err := c.client.From("doctors").
		Select("*", "", false).
		ExecuteTo(&doctors)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

// GetDoctor returns one doctor by ID.
func (c *Client) GetDoctor(id string) (*Doctor, error) {
	var doctor Doctor
	_, err := c.client.From("doctors").
		Select("*", "", false).
		Eq("id", id).
		Single().
		ExecuteTo(&doctor)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

// CreateDoctor inserts a doctor and returns the stored row.
func (c *Client) CreateDoctor(doctor *Doctor) (*Doctor, error) {
	var created []Doctor
	_, err := c.client.From("doctors").
		Insert(doctor, false, "", "representation", "").
		ExecuteTo(&created)
	if err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("doctor insert returned no rows")
	}
	return &created[0], nil
}

// ListAppointments returns appointments, optionally filtered by patient.
func (c *Client) ListAppointments(patientID string) ([]Appointment, error) {
	query := c.client.From("appointments").Select("*", "", false)
	if patientID != "" {
		query = query.Eq("patient_id", patientID)
	}

	var appointments []Appointment
	if _, err := query.ExecuteTo(&appointments); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// CreateAppointment inserts an appointment and returns the stored row.
func (c *Client) CreateAppointment(appointment *Appointment) (*Appointment, error) {
	var created []Appointment
	_, err := c.client.From("appointments").
		Insert(appointment, false, "", "representation", "").
		ExecuteTo(&created)
	if err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("appointment insert returned no rows")
	}
	return &created[0], nil
}

// ListConsultations returns consultations, optionally filtered by patient.
func (c *Client) ListConsultations(patientID string) ([]Consultation, error) {
	query := c.client.From("consultations").Select("*", "", false)
	if patientID != "" {
		query = query.Eq("patient_id", patientID)
	}

	var consultations []Consultation
	if _, err := query.ExecuteTo(&consultations); err != nil {
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}
	return consultations, nil
}

// CreateConsultation inserts a consultation and returns the stored row.
func (c *Client) CreateConsultation(consultation *Consultation) (*Consultation, error) {
	var created []Consultation
	_, err := c.client.From("consultations").
		Insert(consultation, false, "", "representation", "").
		ExecuteTo(&created)
	if err != nil {
		return nil, fmt.Errorf("failed to create consultation: %w", err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("consultation insert returned no rows")
	}
	return &created[0], nil
}

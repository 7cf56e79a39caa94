package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carebridge-backend/records"
)

// ListPatients returns all patients.
func (h *Handlers) ListPatients(c *gin.Context) {
	patients, err := h.Records.ListPatients()
	if err != nil {
		h.fail(c, err, "Failed to list patients")
		return
	}
	c.JSON(http.StatusOK, patients)
}

// GetPatient returns one patient.
func (h *Handlers) GetPatient(c *gin.Context) {
	patient, err := h.Records.GetPatient(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}
	c.JSON(http.StatusOK, patient)
}

// CreatePatient stores a new patient.
func (h *Handlers) CreatePatient(c *gin.Context) {
	var patient records.Patient
	if err := c.ShouldBindJSON(&patient); err != nil || patient.Name == "" {
		badRequest(c, "Name is required")
		return
	}

	created, err := h.Records.CreatePatient(&patient)
	if err != nil {
		h.fail(c, err, "Failed to create patient")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdatePatient applies changes to a patient.
func (h *Handlers) UpdatePatient(c *gin.Context) {
	var patient records.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	updated, err := h.Records.UpdatePatient(c.Param("id"), &patient)
	if err != nil {
		h.fail(c, err, "Failed to update patient")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeletePatient removes a patient.
func (h *Handlers) DeletePatient(c *gin.Context) {
	if err := h.Records.DeletePatient(c.Param("id")); err != nil {
		h.fail(c, err, "Failed to delete patient")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListDoctors returns all doctors.
func (h *Handlers) ListDoctors(c *gin.Context) {
	doctors, err := h.Records.ListDoctors()
	if err != nil {
		h.fail(c, err, "Failed to list doctors")
		return
	}
	c.JSON(http.StatusOK, doctors)
}

// GetDoctor returns one doctor.
func (h *Handlers) GetDoctor(c *gin.Context) {
	doctor, err := h.Records.GetDoctor(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		return
	}
	c.JSON(http.StatusOK, doctor)
}

// CreateDoctor stores a new doctor.
func (h *Handlers) CreateDoctor(c *gin.Context) {
	var doctor records.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil || doctor.Name == "" {
		badRequest(c, "Name is required")
		return
	}

	created, err := h.Records.CreateDoctor(&doctor)
	if err != nil {
		h.fail(c, err, "Failed to create doctor")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListAppointments returns appointments, optionally for one patient.
func (h *Handlers) ListAppointments(c *gin.Context) {
	appointments, err := h.Records.ListAppointments(c.Query("patientId"))
	if err != nil {
		h.fail(c, err, "Failed to list appointments")
		return
	}
	c.JSON(http.StatusOK, appointments)
}

// CreateAppointment schedules an appointment.
func (h *Handlers) CreateAppointment(c *gin.Context) {
	var appointment records.Appointment
	if err := c.ShouldBindJSON(&appointment); err != nil || appointment.PatientID == "" || appointment.DoctorID == "" {
		badRequest(c, "patient_id and doctor_id are required")
		return
	}

	created, err := h.Records.CreateAppointment(&appointment)
	if err != nil {
		h.fail(c, err, "Failed to create appointment")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListConsultations returns consultations, optionally for one patient.
func (h *Handlers) ListConsultations(c *gin.Context) {
	consultations, err := h.Records.ListConsultations(c.Query("patientId"))
	if err != nil {
		h.fail(c, err, "Failed to list consultations")
		return
	}
	c.JSON(http.StatusOK, consultations)
}

// CreateConsultation stores a consultation record.
func (h *Handlers) CreateConsultation(c *gin.Context) {
	var consultation records.Consultation
	if err := c.ShouldBindJSON(&consultation); err != nil || consultation.PatientID == "" {
		badRequest(c, "patient_id is required")
		return
	}

	created, err := h.Records.CreateConsultation(&consultation)
	if err != nil {
		h.fail(c, err, "Failed to create consultation")
		return
	}
	c.JSON(http.StatusCreated, created)
}

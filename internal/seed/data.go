package seed

import "dentalClinicManagement/models"

// Fixed records written the first time each collection is found absent.

func seedUsers() []models.User {
	return []models.User{
		models.NewAdminUser("1", "admin@entnt.in", "admin123"),
		models.NewPatientUser("2", "john@entnt.in", "patient123", "p1"),
	}
}

func seedPatients() []models.Patient {
	return []models.Patient{{
		ID:         "p1",
		Name:       "John Doe",
		Dob:        "1990-05-10",
		Contact:    "1234567890",
		HealthInfo: "No allergies",
		Email:      "john@entnt.in",
	}}
}

func seedIncidents() []models.Incident {
	return []models.Incident{{
		ID:              "i1",
		PatientID:       "p1",
		Title:           "Toothache",
		Description:     "Upper molar pain",
		Comments:        "Sensitive to cold",
		AppointmentDate: "2025-07-01T10:00:00",
		Cost:            80,
		Status:          models.IncidentStatusCompleted,
		Files: []models.Attachment{
			{Name: "invoice.pdf", URL: "data:application/pdf;base64,sample-pdf-data"},
			{Name: "xray.png", URL: "data:image/png;base64,sample-image-data"},
		},
	}}
}

package models

// NewAdminUser creates an admin account. Admins have no patient record.
func NewAdminUser(id, email, password string) User {
	return User{ID: id, Role: RoleAdmin, Email: email, Password: password}
}

// NewPatientUser creates a patient account linked to the given patient record.
func NewPatientUser(id, email, password, patientID string) User {
	return User{ID: id, Role: RolePatient, Email: email, Password: password, PatientID: patientID}
}

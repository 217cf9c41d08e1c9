package models

// Role distinguishes clinic staff from patients.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RolePatient Role = "Patient"
)

// User represents a login account.
// It maps to one record of the `dental_users` collection.
// PatientID is set only for RolePatient users and references Patient.ID.
type User struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	PatientID string `json:"patientId,omitempty"`
}

// Session is the authenticated identity: a User without its password.
type Session struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Email     string `json:"email"`
	PatientID string `json:"patientId,omitempty"`
}

// Session returns the session view of the user.
func (u User) Session() Session {
	return Session{ID: u.ID, Role: u.Role, Email: u.Email, PatientID: u.PatientID}
}

// IsAdmin reports whether the session belongs to clinic staff.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

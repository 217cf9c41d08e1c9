package models

// Patient represents a clinic patient.
// Dob is kept as the calendar date string supplied by the caller (e.g. "1990-05-10").
type Patient struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Dob        string `json:"dob"`
	Contact    string `json:"contact"`
	Email      string `json:"email,omitempty"`
	HealthInfo string `json:"healthInfo"`
}

// PatientInput carries the caller-supplied fields of a new patient.
type PatientInput struct {
	Name       string `json:"name"`
	Dob        string `json:"dob"`
	Contact    string `json:"contact"`
	Email      string `json:"email,omitempty"`
	HealthInfo string `json:"healthInfo"`
}

// PatientPatch is a partial update. Nil fields are left untouched.
type PatientPatch struct {
	Name       *string `json:"name,omitempty"`
	Dob        *string `json:"dob,omitempty"`
	Contact    *string `json:"contact,omitempty"`
	Email      *string `json:"email,omitempty"`
	HealthInfo *string `json:"healthInfo,omitempty"`
}

// NewPatient builds a patient record from input with the given id.
func NewPatient(id string, in PatientInput) Patient {
	return Patient{
		ID:         id,
		Name:       in.Name,
		Dob:        in.Dob,
		Contact:    in.Contact,
		Email:      in.Email,
		HealthInfo: in.HealthInfo,
	}
}

// Apply merges the patch over p.
func (pp PatientPatch) Apply(p *Patient) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Dob != nil {
		p.Dob = *pp.Dob
	}
	if pp.Contact != nil {
		p.Contact = *pp.Contact
	}
	if pp.Email != nil {
		p.Email = *pp.Email
	}
	if pp.HealthInfo != nil {
		p.HealthInfo = *pp.HealthInfo
	}
}

package models

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// IncidentStatus represents the progress of an appointment.
type IncidentStatus string

const (
	IncidentStatusScheduled IncidentStatus = "Scheduled"
	IncidentStatusCompleted IncidentStatus = "Completed"
	IncidentStatusCancelled IncidentStatus = "Cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s IncidentStatus) Valid() bool {
	switch s {
	case IncidentStatusScheduled, IncidentStatusCompleted, IncidentStatusCancelled:
		return true
	}
	return false
}

// Attachment is a file attached to an incident. URL holds the content reference,
// normally a base64 data URL.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Incident represents a dental appointment or treatment record.
// PatientID references Patient.ID but is not checked on write.
// AppointmentDate is kept as supplied, e.g. "2025-07-01T10:00:00".
type Incident struct {
	ID              string         `json:"id"`
	PatientID       string         `json:"patientId"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Comments        string         `json:"comments,omitempty"`
	AppointmentDate string         `json:"appointmentDate"`
	Cost            Cost           `json:"cost"`
	Status          IncidentStatus `json:"status"`
	Files           []Attachment   `json:"files"`
}

// IncidentInput carries the caller-supplied fields of a new incident.
type IncidentInput struct {
	PatientID       string         `json:"patientId"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Comments        string         `json:"comments,omitempty"`
	AppointmentDate string         `json:"appointmentDate"`
	Cost            Cost           `json:"cost"`
	Status          IncidentStatus `json:"status"`
	Files           []Attachment   `json:"files"`
}

// IncidentPatch is a partial update. Nil fields are left untouched; a non-nil
// Files replaces the whole attachment list.
type IncidentPatch struct {
	PatientID       *string         `json:"patientId,omitempty"`
	Title           *string         `json:"title,omitempty"`
	Description     *string         `json:"description,omitempty"`
	Comments        *string         `json:"comments,omitempty"`
	AppointmentDate *string         `json:"appointmentDate,omitempty"`
	Cost            *Cost           `json:"cost,omitempty"`
	Status          *IncidentStatus `json:"status,omitempty"`
	Files           *[]Attachment   `json:"files,omitempty"`
}

// NewIncident builds an incident record from input with the given id.
// Status defaults to Scheduled if empty.
func NewIncident(id string, in IncidentInput) Incident {
	status := in.Status
	if status == "" {
		status = IncidentStatusScheduled
	}
	return Incident{
		ID:              id,
		PatientID:       in.PatientID,
		Title:           in.Title,
		Description:     in.Description,
		Comments:        in.Comments,
		AppointmentDate: in.AppointmentDate,
		Cost:            in.Cost.Normalize(),
		Status:          status,
		Files:           copyAttachments(in.Files),
	}
}

// Apply merges the patch over inc.
func (ip IncidentPatch) Apply(inc *Incident) {
	if ip.PatientID != nil {
		inc.PatientID = *ip.PatientID
	}
	if ip.Title != nil {
		inc.Title = *ip.Title
	}
	if ip.Description != nil {
		inc.Description = *ip.Description
	}
	if ip.Comments != nil {
		inc.Comments = *ip.Comments
	}
	if ip.AppointmentDate != nil {
		inc.AppointmentDate = *ip.AppointmentDate
	}
	if ip.Cost != nil {
		inc.Cost = ip.Cost.Normalize()
	}
	if ip.Status != nil {
		inc.Status = *ip.Status
	}
	if ip.Files != nil {
		inc.Files = copyAttachments(*ip.Files)
	}
}

// Normalized returns inc with a storable cost and a non-nil file list.
func (inc Incident) Normalized() Incident {
	inc.Cost = inc.Cost.Normalize()
	if inc.Files == nil {
		inc.Files = []Attachment{}
	}
	return inc
}

func copyAttachments(files []Attachment) []Attachment {
	out := make([]Attachment, len(files))
	copy(out, files)
	return out
}

// Cost is a treatment price. Stored costs are always finite and >= 0.
type Cost float64

var costPrefixRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseCost reads the leading decimal number of raw, the way form input is read.
// Input without a numeric prefix yields 0.
func ParseCost(raw string) Cost {
	m := costPrefixRe.FindString(strings.TrimSpace(raw))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// out of range
		return 0
	}
	return Cost(v).Normalize()
}

// Normalize maps NaN, infinities and negative values to 0.
func (c Cost) Normalize() Cost {
	f := float64(c)
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return c
}

// UnmarshalJSON accepts a number or a numeric string. Anything else decodes as 0.
func (c *Cost) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*c = 0
			return nil
		}
		*c = ParseCost(s)
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*c = 0
		return nil
	}
	*c = Cost(v).Normalize()
	return nil
}

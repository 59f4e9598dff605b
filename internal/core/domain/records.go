package domain

import "time"

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

type Pet struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Species    string    `json:"species"`
	Breed      string    `json:"breed,omitempty"`
	BirthDate  time.Time `json:"birthDate,omitempty"`
	GuardianID string    `json:"guardianId"`
	Active     bool      `json:"active"`
}

type Guardian struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type Veterinarian struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CRMV      string `json:"crmv"`
	Specialty string `json:"specialty,omitempty"`
}

type Appointment struct {
	ID             string            `json:"id"`
	PetID          string            `json:"petId"`
	VeterinarianID string            `json:"veterinarianId"`
	ScheduledAt    time.Time         `json:"scheduledAt"`
	Reason         string            `json:"reason,omitempty"`
	Status         AppointmentStatus `json:"status"`
}

type Consultation struct {
	ID             string    `json:"id"`
	AppointmentID  string    `json:"appointmentId,omitempty"`
	PetID          string    `json:"petId"`
	VeterinarianID string    `json:"veterinarianId"`
	Date           time.Time `json:"date"`
	Diagnosis      string    `json:"diagnosis,omitempty"`
	Price          float64   `json:"price"`
}

type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	SKU      string  `json:"sku,omitempty"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	MinStock int     `json:"minStock"`
}

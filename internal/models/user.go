package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the closed set of account kinds the service knows about.
type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleDoctor || r == RolePatient
}

// DefaultMedicalInfo is the sentinel stored for patients whose record has
// not been filled in yet.
const DefaultMedicalInfo = "no medical information"

// Notification is one entry in a patient's notification history.
type Notification struct {
	Message string    `bson:"message" json:"message"`
	Date    time.Time `bson:"date" json:"date"`
}

// User is a stored account. ID doubles as the login name and is unique
// across the collection. Doctor records carry MedicalInfo/Notifications
// too, but nothing ever reads or writes them.
type User struct {
	ObjectID      primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Role          Role               `bson:"role" json:"role"`
	ID            string             `bson:"id" json:"id"`
	Password      string             `bson:"password" json:"-"` // Hide from JSON responses
	Name          string             `bson:"name" json:"name"`
	MedicalInfo   string             `bson:"medicalInfo" json:"medicalInfo"`
	Notifications []Notification     `bson:"notifications" json:"notifications"`
}

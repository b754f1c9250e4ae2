package domain

import "time"

// Patient is a medical record readable by doctors.
type Patient struct {
	ID          int64     `json:"id" bson:"_id"`
	DateOfBirth time.Time `json:"date_of_birth" bson:"date_of_birth"`
	Diagnosis   []string  `json:"diagnosis" bson:"diagnosis"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

package domain

import (
	"errors"
	"time"
)

var ErrBootcampNotFound = errors.New("bootcamp not found")
var ErrDuplicateBootcamp = errors.New("bootcamp already exists")

// Career tracks a bootcamp can teach.
const (
	CareerWebDev      = "Web Development"
	CareerMobileDev   = "Mobile Development"
	CareerUIUX        = "UI/UX"
	CareerDataScience = "Data Science"
	CareerBusiness    = "Business"
	CareerOther       = "Other"
)

// Bootcamp is the course-provider aggregate. OwnerID links it to the
// publisher account that created it.
type Bootcamp struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Website       string    `json:"website,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address"`
	Careers       []string  `json:"careers"`
	Housing       bool      `json:"housing"`
	JobAssistance bool      `json:"job_assistance"`
	OwnerID       string    `json:"owner_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

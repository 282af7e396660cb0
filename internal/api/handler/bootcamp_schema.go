package handler

import "github.com/devcamper/bootcamp-api/internal/core/domain"

type bootcampRequest struct {
	Name          string   `json:"name"        validate:"required"`
	Description   string   `json:"description" validate:"required"`
	Website       string   `json:"website"     validate:"omitempty,url"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"       validate:"omitempty,email"`
	Address       string   `json:"address"     validate:"required"`
	Careers       []string `json:"careers"     validate:"required,min=1"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"job_assistance"`
}

type bootcampResponse struct {
	Success bool             `json:"success"`
	Data    *domain.Bootcamp `json:"data"`
}

type bootcampListResponse struct {
	Success bool               `json:"success"`
	Count   int                `json:"count"`
	Data    []*domain.Bootcamp `json:"data"`
}

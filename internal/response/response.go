package response

import "waitlist/internal/models"

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	// Machine readable error code
	// example: MALFORMED_REQUEST
	Code string `json:"code"`

	// Human readable message
	// example: uid is required
	Message string `json:"message"`

	// Optional details
	// example: party.size must be positive
	Details string `json:"details,omitempty"`
}

// QueueRequest wraps a full queue snapshot for POST /queues
type QueueRequest struct {
	Queue *models.Queue `json:"queue" binding:"required"`
}

// PartyRequest wraps the party appended by POST /queues/{uid}
type PartyRequest struct {
	Party *models.Party `json:"party" binding:"required"`
}

// OpenRequest toggles the open flag
type OpenRequest struct {
	Open *bool `json:"open" binding:"required"`
}

// MessageRequest carries a message for one party
type MessageRequest struct {
	Message string `json:"message" binding:"required" example:"Your table is ready"`
}

// PushRequest is a raw push fan-out
type PushRequest struct {
	Tokens  []string `json:"tokens" binding:"required"`
	Message string   `json:"message" binding:"required" example:"We are running 10 minutes late"`
}

// CustomerRequest wraps a customer profile for POST /customers
type CustomerRequest struct {
	Customer *models.Customer `json:"customer" binding:"required"`
}

// BusinessRequest wraps a business profile for POST /businesses
type BusinessRequest struct {
	Business *models.Business `json:"business" binding:"required"`
}

package models

import (
	"time"
)

// LeadSource identifies which form produced a lead
type LeadSource string

const (
	SourceContact    LeadSource = "contact"
	SourceNewsletter LeadSource = "newsletter"
)

// Lead represents a contact-form submission or newsletter signup
type Lead struct {
	ID        string            `json:"id"`
	Source    LeadSource        `json:"source"`
	Name      string            `json:"name,omitempty"`
	Email     string            `json:"email"`
	Company   string            `json:"company,omitempty"`
	Service   string            `json:"service,omitempty"`
	Message   string            `json:"message,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// ContactRequest represents the contact form payload
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Service string `json:"service,omitempty"` // service of interest
	Message string `json:"message"`
}

// NewsletterRequest represents the newsletter signup payload
type NewsletterRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// LeadResponse is returned after a lead is accepted
type LeadResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Field length limits applied before a click is stored.
const (
	maxCarrierLength   = 64
	maxZipLength       = 10
	maxFreeTextLength  = 128
	maxUserAgentLength = 512
)

// ClickEvent is one outbound click. Events are append-only: the service never
// updates or deletes them. Empty optional strings are stored as NULL.
type ClickEvent struct {
	ID             string    `json:"id"`
	Carrier        string    `json:"carrier"`
	HomeZip        string    `json:"home_zip,omitempty"`
	DataTier       string    `json:"data_tier,omitempty"`
	Priority       string    `json:"priority,omitempty"`
	Source         Source    `json:"source,omitempty"`
	CurrentCarrier string    `json:"current_carrier,omitempty"`
	CurrentBill    *float64  `json:"current_bill,omitempty"`
	UserAgent      string    `json:"user_agent,omitempty"`
	ClickedAt      time.Time `json:"clicked_at"`
}

// ClickParams are the raw request values a ClickEvent is built from.
type ClickParams struct {
	Carrier        string
	HomeZip        string
	DataTier       string
	Priority       string
	Source         string
	CurrentCarrier string
	CurrentBill    string
	UserAgent      string
}

// NewClickEvent normalizes raw request values into a ClickEvent.
// The carrier slug is kept even when unknown so bad links show up in the
// dashboard. Tier and priority are only recorded when recognized.
func NewClickEvent(id string, p ClickParams, at time.Time) ClickEvent {
	event := ClickEvent{
		ID:             id,
		Carrier:        truncate(strings.ToLower(strings.TrimSpace(p.Carrier)), maxCarrierLength),
		HomeZip:        truncate(strings.TrimSpace(p.HomeZip), maxZipLength),
		Source:         ParseSource(p.Source),
		CurrentCarrier: truncate(strings.TrimSpace(p.CurrentCarrier), maxFreeTextLength),
		CurrentBill:    ParseBill(p.CurrentBill),
		UserAgent:      truncate(p.UserAgent, maxUserAgentLength),
		ClickedAt:      at.UTC(),
	}

	if tier, ok := LookupTier(p.DataTier); ok {
		event.DataTier = string(tier)
	}
	if priority, ok := LookupPriority(p.Priority); ok {
		event.Priority = string(priority)
	}

	return event
}

// ParseBill parses a bill amount. It returns nil for empty, non-numeric or
// non-finite input.
func ParseBill(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

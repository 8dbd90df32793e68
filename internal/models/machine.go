package models

import "time"

// Machine statuses as recorded by the floor operators.
const (
	StatusProducing     = "PRODUCING"
	StatusLowEfficiency = "LOW_EFFICIENCY"
	StatusStopped       = "STOPPED"
	StatusWaiting       = "WAITING"
)

// Machine is one injection- or blow-molding machine on the floor.
type Machine struct {
	ID   string `json:"id" mapstructure:"id"`
	Name string `json:"name" mapstructure:"name"`
	Kind string `json:"kind" mapstructure:"kind"` // INJECTION | BLOW
}

// MachineStop is one downtime record. ResumedAt == nil means the stop is
// still open and is clipped to min(now, period end) when reporting.
type MachineStop struct {
	ID        string     `json:"id"`
	MachineID string     `json:"machine_id"`
	StartedAt time.Time  `json:"started_at"`
	ResumedAt *time.Time `json:"resumed_at,omitempty"`
	Reason    string     `json:"reason"` // e.g. "Troca de molde", "Falta de material"
	Notes     string     `json:"notes,omitempty"`
}

// StatusSpan is one entry of the machine status history. The open span
// (EndedAt == nil) is the machine's current board status.
type StatusSpan struct {
	ID        string     `json:"id"`
	MachineID string     `json:"machine_id"`
	Status    string     `json:"status"` // PRODUCING | LOW_EFFICIENCY | STOPPED | WAITING
	Reason    string     `json:"reason,omitempty"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

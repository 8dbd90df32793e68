package models

import "time"

// ProductionScan is one completed box read from the barcode scanner.
// Piece count is derived from the owning order's standard (pieces per box).
type ProductionScan struct {
	ID         string    `json:"id"`
	MachineID  string    `json:"machine_id"`
	OrderID    string    `json:"order_id"`
	ScannedBox int       `json:"scanned_box"` // box sequence number within the order
	Shift      string    `json:"shift,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ScrapEntry is a batch of rejected pieces with a reason code.
type ScrapEntry struct {
	ID        string    `json:"id"`
	MachineID string    `json:"machine_id"`
	OrderID   string    `json:"order_id"`
	Qty       int       `json:"qty"`
	Reason    string    `json:"reason"` // e.g. "Rebarba", "Peça incompleta"
	Shift     string    `json:"shift,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ManualEntry is a hand-typed production record used when a box was not
// scanned (rework, samples, scanner offline).
type ManualEntry struct {
	ID        string    `json:"id"`
	MachineID string    `json:"machine_id"`
	OrderID   string    `json:"order_id"`
	GoodQty   int       `json:"good_qty"`
	Shift     string    `json:"shift"`
	Product   string    `json:"product"` // "<item code> - <description>"
	CreatedAt time.Time `json:"created_at"`
}

// Order carries the fields the reports need: the product string (item code
// prefix) and the standard, i.e. configured pieces per box.
type Order struct {
	ID        string `json:"id" mapstructure:"id"`
	Number    string `json:"number" mapstructure:"number"`
	MachineID string `json:"machine_id" mapstructure:"machine_id"`
	Product   string `json:"product" mapstructure:"product"`
	Standard  string `json:"standard" mapstructure:"standard"` // pieces per box, stored as text
}

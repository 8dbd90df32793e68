package service

import "time"

// Period names accepted by ReportFilter.
const (
	PeriodToday     = "today"
	PeriodYesterday = "yesterday"
	PeriodWeek      = "week"
	PeriodMonth     = "month"
	PeriodLastMonth = "last_month"
	PeriodDay       = "day"
)

type StopParams struct {
	MachineID string
	Reason    string // "MAINTENANCE", "NO_MATERIAL", "SETUP", ...
	Notes     string
}

type StatusParams struct {
	MachineID string
	Status    string // "PRODUCING" | "LOW_EFFICIENCY" | "STOPPED" | "WAITING"
	Reason    string
}

type ScanParams struct {
	MachineID  string
	OrderID    string
	ScannedBox int    // box sequence number within the order
	Shift      string // "1" | "2" | "3"; empty means attribute by clock
}

type ScrapParams struct {
	MachineID string
	OrderID   string
	Qty       int
	Reason    string
	Shift     string
}

type ManualParams struct {
	MachineID string
	OrderID   string
	GoodQty   int
	Shift     string
	Product   string // overrides the order's product when set
}

// ReportFilter selects the reporting period and an optional machine.
type ReportFilter struct {
	Period    string    // one of the Period* names; empty means today
	Date      time.Time // only used when Period == "day"
	MachineID string    // empty means all machines
}

package courier

import "dispatchsim/internal/core/domain/model/kernel"

// ReportDetails is the status a courier sends with every CheckIn.
type ReportDetails struct {
	Cargo             uint32          `json:"cargo"`
	CargoCounter      uint32          `json:"cargoCounter"`
	DroppedOff        uint32          `json:"droppedOff"`
	Location          kernel.Location `json:"location"`
	Destination       kernel.Location `json:"destination"`
	RemainingDistance uint32          `json:"remainingDistance"`
	State             State           `json:"-"`
	Leg               LegKind         `json:"-"`
}

// IsUnburdened reports whether the courier carried no cargo at report time.
func (r ReportDetails) IsUnburdened() bool {
	return r.Cargo == 0
}

// IsIdle reports whether the courier had no destination at report time.
func (r ReportDetails) IsIdle() bool {
	return r.State == Idle
}

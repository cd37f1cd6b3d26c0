package http

import (
	"dispatchsim/internal/core/domain/model/kernel"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Clock is the body of GET /api/v1/clock.
type Clock struct {
	Tick uint64 `json:"tick"`
}

// CourierCount is the body of POST /api/v1/couriers.
type CourierCount struct {
	Count int `json:"count"`
}

// CourierNames lists the couriers an inject or relieve request affected.
type CourierNames struct {
	Couriers []string `json:"couriers"`
}

// NewOrder leaves both fields optional; missing ones are drawn at random.
type NewOrder struct {
	Complexity *uint32          `json:"complexity,omitempty"`
	Restaurant *kernel.Location `json:"restaurant,omitempty"`
}

// PlacedOrder echoes the order as it was enqueued, defaults included.
type PlacedOrder struct {
	ID         string          `json:"id"`
	Dispatcher string          `json:"dispatcher"`
	Complexity uint32          `json:"complexity"`
	Restaurant kernel.Location `json:"restaurant"`
}

package commands

import (
	"context"
	"fmt"

	"dispatchsim/internal/core/application/actors"
	"dispatchsim/internal/core/domain/model/order"
	"dispatchsim/internal/core/ports"
)

// CreateOrderCommandHandler builds the order at the current tick and enqueues
// it with a dispatcher chosen by the router.
type CreateOrderCommandHandler struct {
	directory ports.DispatcherDirectory
	clock     ports.Clock
}

// NewCreateOrderCommandHandler creates the handler.
// The directory chooses the dispatcher and the clock stamps the creation tick.
func NewCreateOrderCommandHandler(directory ports.DispatcherDirectory, clock ports.Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{directory: directory, clock: clock}
}

// Handle returns the name of the dispatcher that received the order.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	o, err := order.NewDeliveryOrder(cmd.OrderID(), cmd.Complexity(), cmd.Restaurant(), h.clock.CurrentTick())
	if err != nil {
		return "", err
	}

	dispatcher, err := h.directory.AssignDispatcher(ctx)
	if err != nil {
		return "", fmt.Errorf("assign dispatcher: %w", err)
	}

	if err := dispatcher.Tell(actors.EnqueueOrder{Order: o}); err != nil {
		return "", fmt.Errorf("enqueue order on %s: %w", dispatcher.Name(), err)
	}

	return dispatcher.Name(), nil
}

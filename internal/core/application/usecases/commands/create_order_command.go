package commands

import (
	"errors"

	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/core/domain/model/order"
	"dispatchsim/internal/pkg/errs"
	"dispatchsim/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrComplexityIsInvalid = errs.NewValueIsInvalidError("complexity must be greater than 0")
)

// CreateOrderCommand places a new delivery order into a dispatcher's backlog.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), 3, kernel.C)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(directory, clock)
//	dispatcher, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	complexity uint32
	restaurant kernel.Location

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates that the ID is set, the complexity is in
// [1, order.MaxComplexity] and the restaurant is a real place.
func NewCreateOrderCommand(orderID kernel.UUID, complexity uint32, restaurant kernel.Location) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setComplexity(complexity),
		cmd.setRestaurant(restaurant),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will carry.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Complexity returns the cargo units of the order.
func (c CreateOrderCommand) Complexity() uint32 {
	return c.complexity
}

// Restaurant returns the pickup place.
func (c CreateOrderCommand) Restaurant() kernel.Location {
	return c.restaurant
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setComplexity(complexity uint32) error {
	if complexity == 0 {
		return ErrComplexityIsInvalid
	}
	if complexity > order.MaxComplexity {
		return errs.NewValueIsOutOfRangeError("complexity", complexity, 1, order.MaxComplexity)
	}
	c.complexity = complexity
	return nil
}

func (c *CreateOrderCommand) setRestaurant(restaurant kernel.Location) error {
	if err := restaurant.Validate(); err != nil {
		return err
	}
	c.restaurant = restaurant
	return nil
}

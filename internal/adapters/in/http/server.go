package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"dispatchsim/internal/core/application/pool"
	"dispatchsim/internal/core/application/usecases/commands"
	"dispatchsim/internal/core/application/usecases/queries"
	"dispatchsim/internal/core/domain/model/kernel"
	"dispatchsim/internal/core/ports"
	"dispatchsim/internal/pkg/errs"
	"dispatchsim/internal/pkg/rng"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"
)

// Complexity of orders placed without one is drawn from [1, 6).
const (
	minOrderComplexity = 1
	maxOrderComplexity = 6
)

// Server exposes the operator API. It coordinates between HTTP handlers and
// application use cases.
type Server struct {
	// Command handlers
	injectCouriersHandler  commands.InjectCouriersCommandHandler
	relieveCouriersHandler commands.RelieveCouriersCommandHandler
	createOrderHandler     commands.CreateOrderCommandHandler

	// Query handlers
	getAllCouriersHandler queries.GetAllCouriersQueryHandler
	getDispatchersHandler queries.GetDispatchersQueryHandler

	clock  ports.Clock
	rand   *rng.Source
	doc    *openapi3.T
	logger *zap.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	injectCouriersHandler commands.InjectCouriersCommandHandler,
	relieveCouriersHandler commands.RelieveCouriersCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	getAllCouriersHandler queries.GetAllCouriersQueryHandler,
	getDispatchersHandler queries.GetDispatchersQueryHandler,
	clock ports.Clock,
	rand *rng.Source,
	doc *openapi3.T,
	logger *zap.Logger,
) *Server {
	return &Server{
		injectCouriersHandler:  injectCouriersHandler,
		relieveCouriersHandler: relieveCouriersHandler,
		createOrderHandler:     createOrderHandler,
		getAllCouriersHandler:  getAllCouriersHandler,
		getDispatchersHandler:  getDispatchersHandler,
		clock:                  clock,
		rand:                   rand,
		doc:                    doc,
		logger:                 logger.With(zap.String("component", "http_server")),
	}
}

// RegisterRoutes mounts the API on e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.GET("/clock", s.GetClock)
	api.GET("/couriers", s.GetCouriers)
	api.POST("/couriers", s.InjectCouriers)
	api.DELETE("/couriers", s.RelieveCouriers)
	api.GET("/dispatchers", s.GetDispatchers)
	api.POST("/orders", s.CreateOrder)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GetClock handles GET /api/v1/clock.
func (s *Server) GetClock(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, Clock{Tick: s.clock.CurrentTick()})
}

// GetCouriers handles GET /api/v1/couriers - inspects every courier on shift.
func (s *Server) GetCouriers(ctx echo.Context) error {
	couriers, err := s.getAllCouriersHandler.Handle(ctx.Request().Context(), queries.NewGetAllCouriersQuery())
	if err != nil {
		return s.fail(ctx, http.StatusInternalServerError, "Failed to retrieve couriers", err)
	}
	return ctx.JSON(http.StatusOK, couriers)
}

// InjectCouriers handles POST /api/v1/couriers - spawns couriers.
func (s *Server) InjectCouriers(ctx echo.Context) error {
	var body CourierCount
	if err := s.decodeBody(ctx, "CourierCount", &body); err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid request body", err)
	}

	cmd, err := commands.NewInjectCouriersCommand(body.Count)
	if err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid courier count", err)
	}

	names, err := s.injectCouriersHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, http.StatusInternalServerError, "Failed to inject couriers", err)
	}
	return ctx.JSON(http.StatusCreated, CourierNames{Couriers: names})
}

// RelieveCouriers handles DELETE /api/v1/couriers?count=n - relieves random couriers.
func (s *Server) RelieveCouriers(ctx echo.Context) error {
	var count int
	if err := runtime.BindQueryParameter("form", true, true, "count", ctx.QueryParams(), &count); err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid format for parameter count", err)
	}

	cmd, err := commands.NewRelieveCouriersCommand(count)
	if err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid courier count", err)
	}

	names, err := s.relieveCouriersHandler.Handle(ctx.Request().Context(), cmd)
	if errors.Is(err, pool.ErrInvalidChurnCount) {
		return s.fail(ctx, http.StatusConflict, "Not enough couriers on shift", err)
	}
	if err != nil {
		return s.fail(ctx, http.StatusInternalServerError, "Failed to relieve couriers", err)
	}
	return ctx.JSON(http.StatusOK, CourierNames{Couriers: names})
}

// GetDispatchers handles GET /api/v1/dispatchers.
func (s *Server) GetDispatchers(ctx echo.Context) error {
	dispatchers, err := s.getDispatchersHandler.Handle(ctx.Request().Context(), queries.NewGetDispatchersQuery())
	if err != nil {
		return s.fail(ctx, http.StatusInternalServerError, "Failed to retrieve dispatchers", err)
	}
	return ctx.JSON(http.StatusOK, dispatchers)
}

// CreateOrder handles POST /api/v1/orders - places an order with a random dispatcher.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := s.decodeBody(ctx, "NewOrder", &body); err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid request body", err)
	}

	complexity := uint32(s.rand.Range(minOrderComplexity, maxOrderComplexity)) //nolint:gosec // small positive range
	if body.Complexity != nil {
		complexity = *body.Complexity
	}
	restaurant := kernel.NewRandomLocation(s.rand)
	if body.Restaurant != nil {
		restaurant = *body.Restaurant
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), complexity, restaurant)
	if err != nil {
		return s.fail(ctx, http.StatusBadRequest, "Invalid order data: "+err.Error(), err)
	}

	dispatcher, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, http.StatusInternalServerError, "Failed to create order", err)
	}

	return ctx.JSON(http.StatusCreated, PlacedOrder{
		ID:         cmd.OrderID().String(),
		Dispatcher: dispatcher,
		Complexity: complexity,
		Restaurant: restaurant,
	})
}

// decodeBody validates the JSON body against the named component schema of
// the API document before decoding it into dst. An empty body counts as {}.
func (s *Server) decodeBody(ctx echo.Context, schema string, dst any) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	ref, ok := s.doc.Components.Schemas[schema]
	if !ok || ref.Value == nil {
		return errs.NewObjectNotFoundError("schema", schema)
	}
	if err := ref.Value.VisitJSON(raw); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	return json.Unmarshal(body, dst)
}

func (s *Server) fail(ctx echo.Context, code int, message string, err error) error {
	if code >= http.StatusInternalServerError {
		s.logger.Error(message, zap.Error(err))
	} else {
		s.logger.Debug(message, zap.Error(err))
	}
	return ctx.JSON(code, Error{Code: code, Message: message})
}

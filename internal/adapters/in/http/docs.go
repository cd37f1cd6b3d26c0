// Package http is the operator API of a running simulation.
//
// Routes:
//
//	GET    /health
//	GET    /api/v1/clock
//	GET    /api/v1/couriers
//	POST   /api/v1/couriers          {"count": n}
//	DELETE /api/v1/couriers?count=n
//	GET    /api/v1/dispatchers
//	POST   /api/v1/orders            {"complexity": n, "restaurant": "C"}
//	GET    /swagger/index.html
//
// Request bodies are checked against the embedded openapi.yaml before they
// reach the use cases.
package http

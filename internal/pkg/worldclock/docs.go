// Package worldclock provides the simulated time source. One tick is one
// discrete unit of simulated time; couriers travel and pools churn in ticks.
package worldclock

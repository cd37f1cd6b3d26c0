package ports

// Clock exposes simulated time.
type Clock interface {
	CurrentTick() uint64
}

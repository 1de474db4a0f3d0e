package logcolors

// ANSI color codes for log prefixes
const (
	Reset  = "\033[0m"
	Green  = "\033[32m"
	Blue   = "\033[34m"
	Purple = "\033[35m"
	Cyan   = "\033[36m"
	Yellow = "\033[33m"
)

// Player-side log prefixes
const (
	LogPoller  = Green + "[Poller]" + Reset
	LogClock   = Cyan + "[Clock]" + Reset
	LogSession = Blue + "[Session]" + Reset
	LogControl = Purple + "[Control]" + Reset
	LogArtwork = Yellow + "[Artwork]" + Reset
)

// Simulator log prefixes
const (
	LogSim       = Blue + "[Sim]" + Reset
	LogSimServer = Blue + "[Sim:Server]" + Reset
	LogRateLimit = Purple + "[RateLimit]" + Reset
)

// CircuitBreakerPrefix returns a colored circuit breaker prefix with the given name
func CircuitBreakerPrefix(name string) string {
	return Purple + "[CircuitBreaker:" + name + "]" + Reset
}

package appconf

import "time"

// Environment describes the operating environment the application runs in.
type Environment int

const (
	Development Environment = iota
	Test
	Production
)

// EnvFlagToEnvironment maps the -env flag value to an Environment.
// Unrecognized values fall back to Development.
func EnvFlagToEnvironment(flag string) Environment {
	switch flag {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

func (e Environment) String() string {
	switch e {
	case Production:
		return "production"
	case Test:
		return "test"
	default:
		return "development"
	}
}

// Config holds all the configuration settings for the application: the port
// the HTTP server listens on, the operating environment, the tracked stop, and
// the cadences of the two background cycles. Values are read from command-line
// flags when the application starts, optionally overridden by a YAML file.
type Config struct {
	Port           int
	Env            Environment
	StopCode       string
	FeedURL        string
	DBPath         string
	PollInterval   time.Duration
	DetectInterval time.Duration
}

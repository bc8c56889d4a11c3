// Package logger configures the application's logging,
// monitoring, and observability.
//
// It uses zerolog for logging and integrates with New Relic to instrument
// the codebase, forwarding logs for debugging when a license key is
// configured.
package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/JaedenTYY/justrsvp/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// LoggerService wraps the optional New Relic application.
//
// When New Relic is not configured the service still exists but
// GetApplication returns nil, which downstream wiring (pgx tracer, log
// forwarding) treats as "disabled".
type LoggerService struct {
	app *newrelic.Application
}

// GetApplication returns the New Relic application, or nil when APM is off.
func (s *LoggerService) GetApplication() *newrelic.Application {
	if s == nil {
		return nil
	}
	return s.app
}

// New builds the main application logger and the LoggerService.
//
// Behavior:
//   - level comes from observability config (GetLogLevel)
//   - "console" format writes human-friendly output, anything else JSON
//   - when a New Relic license key is set, the agent is started and,
//     if log forwarding is enabled, the JSON stream is routed through
//     the zerologWriter integration so logs land in New Relic too
func New(cfg *config.Config) (*zerolog.Logger, *LoggerService, error) {
	obs := cfg.Observability

	level, err := zerolog.ParseLevel(strings.ToLower(obs.GetLogLevel()))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing log level: %w", err)
	}

	service := &LoggerService{}
	if obs.NewRelic.LicenseKey != "" {
		opts := []newrelic.ConfigOption{
			newrelic.ConfigAppName(obs.ServiceName),
			newrelic.ConfigLicense(obs.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(obs.NewRelic.DistributedTracingEnabled),
			newrelic.ConfigAppLogForwardingEnabled(obs.NewRelic.AppLogForwardingEnabled),
		}
		if obs.NewRelic.DebugLogging {
			opts = append(opts, newrelic.ConfigDebugLogger(os.Stderr))
		}

		app, err := newrelic.NewApplication(opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("initializing new relic application: %w", err)
		}
		service.app = app
	}

	var log zerolog.Logger
	switch {
	case obs.Logging.Format == "console":
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	case service.app != nil && obs.NewRelic.AppLogForwardingEnabled:
		writer := zerologWriter.New(os.Stdout, service.app)
		log = zerolog.New(writer)
	default:
		log = zerolog.New(os.Stdout)
	}

	log = log.Level(level).With().
		Timestamp().
		Str("service", obs.ServiceName).
		Str("env", obs.Environment).
		Logger()

	return &log, service, nil
}

// NewPgxLogger creates a logger dedicated to SQL statement tracing.
//
// It always writes console format: statement logging is a local-env
// debugging aid, not something shipped to log pipelines.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Str("component", "pgx").
		Logger()
}

// GetPgxTraceLogLevel maps the app's zerolog level onto pgx tracelog levels
// so SQL tracing verbosity follows the main logger.
func GetPgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return tracelog.LogLevelError
	default:
		return tracelog.LogLevelNone
	}
}

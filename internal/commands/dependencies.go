package commands

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/aegislabs/aegis/internal/api"
	"github.com/aegislabs/aegis/internal/config"
)

// clientFactory builds the API client commands use. Tests replace it to
// avoid real transport construction.
var clientFactory = defaultClient

// defaultClient assembles a client from the saved config and token. A
// missing token is fine; unauthenticated endpoints still work and the
// others fail with an auth error the caller can surface.
func defaultClient() (*api.Client, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	opts := []api.ClientOption{
		api.WithLogger(newLogger(cfg.Verbose || verboseFlag)),
		api.WithVerbose(cfg.Verbose || verboseFlag),
	}

	if token, err := config.LoadToken(); err == nil && !token.Empty() {
		opts = append(opts, api.WithToken(token))
	}

	baseURL := cfg.ResolveBaseURL()
	if apiURLFlag != "" {
		baseURL = apiURLFlag
	}

	return api.NewClient(baseURL, opts...)
}

// newLogger builds the CLI logger. Output goes to stderr so piped stdout
// stays clean.
func newLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

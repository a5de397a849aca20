package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/hapio-client/internal/constants"
	"github.com/fivetwenty-io/hapio-client/pkg/hapio"
	"github.com/fivetwenty-io/hapio-client/pkg/hapioclient"
)

// AddPersistentFlags registers the global flags on root and binds them to viper.
func AddPersistentFlags(root *cobra.Command) {
	flags := root.PersistentFlags()

	flags.StringP("config", "c", "", "config file (default is $HOME/.hapio/config.yml)")
	flags.StringP("api", "a", "", "API base URL (default "+constants.DefaultBaseURL+")")
	flags.StringP("token", "t", "", "API token")
	flags.StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.Bool("stats", false, "print per endpoint request statistics to stderr")
	flags.Bool("request-id", false, "send a generated X-Request-Id with every request")

	for _, name := range []string{"config", "api", "token", "output", "verbose", "stats", "request-id"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

// session is the client and output settings of a single command run.
type session struct {
	client  hapio.Client
	metrics *hapio.MetricsCollector
	out     io.Writer
	errOut  io.Writer
	format  string
}

func newSession(cmd *cobra.Command) (*session, error) {
	format := viper.GetString("output")
	if format == "" {
		format = constants.FormatTable
	}

	switch format {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
	default:
		return nil, fmt.Errorf("%w: %q", constants.ErrInvalidOutput, format)
	}

	token := viper.GetString("token")
	if token == "" {
		return nil, constants.ErrNoToken
	}

	logger := newLogrusLogger(cmd.ErrOrStderr(), viper.GetBool("verbose"))

	chain := hapio.NewInterceptorChain()
	if viper.GetBool("request-id") {
		chain.AddRequestInterceptor(hapio.RequestIDInterceptor())
	}

	var metrics *hapio.MetricsCollector
	if viper.GetBool("stats") {
		metrics = hapio.NewMetricsCollector()
		metrics.Install(chain)
	}

	config := hapio.DefaultConfig()
	config.Token = token
	config.Logger = logger
	config.Debug = viper.GetBool("verbose")
	config.Interceptors = chain

	if api := viper.GetString("api"); api != "" {
		config.BaseURL = api
	}

	client, err := hapioclient.New(cmd.Context(), config)
	if err != nil {
		return nil, err
	}

	return &session{
		client:  client,
		metrics: metrics,
		out:     cmd.OutOrStdout(),
		errOut:  cmd.ErrOrStderr(),
		format:  format,
	}, nil
}

// finish prints collected request statistics, if any.
func (s *session) finish() {
	if s.metrics == nil {
		return
	}

	endpoints := s.metrics.Endpoints()
	if len(endpoints) == 0 {
		return
	}

	table := tablewriter.NewWriter(s.errOut)
	table.Header("Endpoint", "Requests", "Errors", "Avg Latency")

	for _, endpoint := range endpoints {
		metrics, _ := s.metrics.GetMetrics(endpoint)
		_ = table.Append(
			endpoint,
			fmt.Sprintf("%d", metrics.TotalRequests),
			fmt.Sprintf("%d", metrics.TotalErrors),
			metrics.AverageLatency.Round(time.Millisecond).String(),
		)
	}

	_ = table.Render()
}

// logrusLogger backs hapio.Logger with logrus.
type logrusLogger struct {
	logger *logrus.Logger
}

func newLogrusLogger(out io.Writer, verbose bool) *logrusLogger {
	if out == nil {
		out = os.Stderr
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return &logrusLogger{logger: logger}
}

func (l *logrusLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Debug(msg)
}

func (l *logrusLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Info(msg)
}

func (l *logrusLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Warn(msg)
}

func (l *logrusLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.WithFields(fields).Error(msg)
}

package transport

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// Config holds the HTTP behavior shared by both gateways.
type Config struct {
	// TimeoutSeconds bounds every remote round trip.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// VerifySSL enables TLS certificate verification. Network appliances
	// commonly run self-signed certificates, hence the opt-in.
	VerifySSL bool `mapstructure:"verify_ssl" default:"false"`
	// RetryMax is the number of automatic retries for transient failures.
	RetryMax int `mapstructure:"retry_max" default:"3"`
}

// retryStatusCodes are the HTTP statuses treated as transient.
var retryStatusCodes = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// NewClient builds an HTTP client with bounded automatic retry and
// backoff. Connection errors and the statuses in retryStatusCodes are
// retried; everything else surfaces immediately to the caller.
func NewClient(cfg Config, log *zap.Logger) *http.Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	httpTransport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
		TLSClientConfig:       &tls.Config{InsecureSkipVerify: !cfg.VerifySSL},
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.RetryMax
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 8 * time.Second
	rc.Logger = &leveledLogger{log.Sugar()}
	rc.HTTPClient = &http.Client{
		Timeout:   timeoutDuration,
		Transport: httpTransport,
	}
	rc.CheckRetry = checkRetry

	return rc.StandardClient()
}

// checkRetry retries connection-level failures and the transient status
// set. The context is honored so a cancelled sync stops retrying.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, nil
	}
	if resp != nil && retryStatusCodes[resp.StatusCode] {
		return true, nil
	}
	return false, nil
}

// leveledLogger adapts zap's sugared logger to retryablehttp's
// LeveledLogger interface.
type leveledLogger struct {
	log *zap.SugaredLogger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...any) {
	l.log.Errorw(msg, keysAndValues...)
}

func (l *leveledLogger) Info(msg string, keysAndValues ...any) {
	l.log.Infow(msg, keysAndValues...)
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...any) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...any) {
	l.log.Warnw(msg, keysAndValues...)
}

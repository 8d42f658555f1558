package httpclient

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/groupgrep/groupgrep/pkg/shared/config"
)

// HclogAdapter adapts an hclog.Logger to be compatible with the resty log.Logger interface.
type HclogAdapter struct {
	logger hclog.Logger
}

// NewHclogAdapter creates a new adapter that will forward messages to a hclog.Logger.
func NewHclogAdapter(logger hclog.Logger) resty.Logger {
	return &HclogAdapter{logger: logger}
}

// Errorf logs a message at error level.
func (a *HclogAdapter) Errorf(format string, v ...interface{}) {
	a.logger.Error(fmt.Sprintf(format, v...))
}

// Warnf logs a message at warning level.
func (a *HclogAdapter) Warnf(format string, v ...interface{}) {
	a.logger.Warn(fmt.Sprintf(format, v...))
}

// Debugf logs a message at debug level.
func (a *HclogAdapter) Debugf(format string, v ...interface{}) {
	a.logger.Debug(fmt.Sprintf(format, v...))
}

// NewRestyClient initializes a resty client with the retry policy from
// the configuration. The config counts attempts while resty counts
// retries, hence the off-by-one. Server-side errors are retried the
// same way as transport errors.
func NewRestyClient(logger hclog.Logger, cfg *config.Config) *resty.Client {
	client := resty.New()
	if logger != nil {
		client.SetLogger(NewHclogAdapter(logger))
	}

	hc := cfg.HttpClient
	retries := hc.RetryAttempts - 1
	if retries < 0 {
		retries = 0
	}

	client.
		SetDebug(hc.Debug).
		SetRetryCount(retries).
		SetRetryWaitTime(time.Duration(hc.RetryWaitTime)).
		SetRetryMaxWaitTime(time.Duration(hc.RetryMaxWaitTime)).
		SetTimeout(time.Duration(hc.Timeout)).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})

	if !hc.TlsClientConfig.Verify {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	if hc.Proxy.Host != "" && hc.Proxy.Port != "" {
		client.SetProxy(fmt.Sprintf("%s:%s", hc.Proxy.Host, hc.Proxy.Port))
	}

	return client
}

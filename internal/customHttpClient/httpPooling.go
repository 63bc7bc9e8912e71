package customHttpClient

import (
	"net/http"
	"sync"

	"github.com/cwsplatform/ecom-assist/internal/config"
)

var (
	once   sync.Once
	pooled *http.Client
)

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// PooledClient is shared by the REST-style providers so ingest batches reuse
// connections instead of paying a handshake per call.
func PooledClient() *http.Client {
	once.Do(func() {
		pooled = &http.Client{Transport: customTransport}
	})
	return pooled
}

package helpers

import (
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// NewESClient builds a client for addrs. Username and password are optional.
// Requests are retried on gateway errors and on network timeouts.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	if len(addrs) == 0 {
		return nil, errors.New("elasticsearch: no addresses configured")
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 10
	transport.ResponseHeaderTimeout = 5 * time.Second
	transport.DialContext = (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext

	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses:            addrs,
		Username:             username,
		Password:             password,
		Transport:            transport,
		RetryOnStatus:        []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout},
		MaxRetries:           2,
		RetryOnError:         retryOnTimeout,
		CompressRequestBody:  true,
	})
}

func retryOnTimeout(_ *http.Request, err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

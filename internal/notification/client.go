package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Ordones18/Ponte-Once-Store/internal/domain"
	"github.com/Ordones18/Ponte-Once-Store/pkg/circuitbreaker"
	"github.com/Ordones18/Ponte-Once-Store/pkg/logger"
)

// Client talks to the external email microservice. The gateway expects
// POST {base}/send-email with {to, subject, html} and answers 200 on
// success; anything else is a delivery failure.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *circuitbreaker.CircuitBreaker
	logger  logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	breaker := circuitbreaker.New(circuitbreaker.Settings{
		Name:        "email-gateway",
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			logger.Warn("email gateway circuit state changed", map[string]interface{}{
				"name": name,
				"from": from.String(),
				"to":   to.String(),
			})
		},
	})

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		breaker: breaker,
		logger:  logger,
	}
}

func (c *Client) Send(msg *domain.EmailMessage) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.send(msg)
	})
	return err
}

func (c *Client) send(msg *domain.EmailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotificationDelivery, err)
	}

	resp, err := c.http.Post(c.baseURL+"/send-email", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotificationDelivery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: gateway answered %d", domain.ErrNotificationDelivery, resp.StatusCode)
	}

	return nil
}

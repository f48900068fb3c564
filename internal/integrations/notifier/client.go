package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс сбора метрик доставки уведомлений
type Metrics interface {
	ObserveNotification(event string, ok bool)
}

// Client клиент внешнего диспетчера уведомлений.
// Диспетчер сам выбирает канал доставки, формирует письма и календарные
// вложения; клиент только передает ему события жизненного цикла.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
	metrics    Metrics
}

// NewClient создает новый экземпляр клиента диспетчера уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// WithMetrics включает сбор метрик доставки. Возвращает тот же клиент.
func (c *Client) WithMetrics(m Metrics) *Client {
	c.metrics = m
	return c
}

// Dispatch отправляет событие жизненного цикла диспетчеру
func (c *Client) Dispatch(ctx context.Context, event *domain.BookingEvent) error {
	url := fmt.Sprintf("%s/internal/events", c.baseURL)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to encode event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// DispatchBestEffort отправляет событие с деградацией доставки: любая ошибка
// логируется и возвращается как ErrDispatchDegraded. Вызывающий обязан
// считать переход статуса успешным независимо от результата.
func (c *Client) DispatchBestEffort(ctx context.Context, event *domain.BookingEvent) error {
	if err := c.Dispatch(ctx, event); err != nil {
		if c.metrics != nil {
			c.metrics.ObserveNotification(string(event.Type), false)
		}
		c.log.Error("Notification dispatch failed for event=%s booking_id=%d: %v", event.Type, event.BookingID, err)
		return fmt.Errorf("%w: event=%s, booking_id=%d", ErrDispatchDegraded, event.Type, event.BookingID)
	}

	if c.metrics != nil {
		c.metrics.ObserveNotification(string(event.Type), true)
	}
	c.log.Info("Dispatched event=%s for booking_id=%d", event.Type, event.BookingID)
	return nil
}

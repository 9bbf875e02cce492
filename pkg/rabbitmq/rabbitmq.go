// Package rabbitmq implements the notification dispatcher on top of a
// durable RabbitMQ queue. Publishing a message is the "send": the email
// worker consuming the queue does the actual delivery, so a broker accept
// is what flips an order's emailSent flag.
package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"gerai/internal/notifications"
	"gerai/pkg/logger"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

// notificationQueue holds pending customer emails.
const notificationQueue = "notification_queue"

// Message kinds on the notification queue.
const (
	KindOrderConfirmation = "order.confirmation"
	KindStatusUpdate      = "order.status"
)

// Envelope wraps every message on the notification queue.
type Envelope struct {
	Kind    string          `json:"kind"`
	To      string          `json:"to"`
	Payload json.RawMessage `json:"payload"`
}

// Client holds the RabbitMQ connection and channel. It implements
// notifications.Notifier.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares the durable
// notification queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		notificationQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", notificationQueue, err)
	}

	logger.Log.Info("RabbitMQ client connected", zap.String("queue", notificationQueue))

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// SendOrderConfirmation enqueues an order-confirmation email.
func (c *Client) SendOrderConfirmation(to string, confirmation notifications.OrderConfirmation) error {
	return c.publish(KindOrderConfirmation, to, confirmation)
}

// SendStatusUpdate enqueues an order-status email.
func (c *Client) SendStatusUpdate(to string, update notifications.StatusUpdate) error {
	return c.publish(KindStatusUpdate, to, update)
}

func (c *Client) publish(kind, to string, payload interface{}) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", kind, err)
	}
	body, err := json.Marshal(Envelope{Kind: kind, To: to, Payload: raw})
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	err = c.channel.Publish(
		"",                // exchange: default exchange
		notificationQueue, // routing key: the queue name
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s message: %w", kind, err)
	}
	return nil
}

// ConsumeNotifications registers a consumer on the notification queue and
// processes deliveries with the given handler in a background goroutine.
// Handler errors nack the message for redelivery.
func (c *Client) ConsumeNotifications(handler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := c.channel.QueueDeclare(
		notificationQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue for consuming: %w", err)
	}

	msgs, err := c.channel.Consume(
		queue.Name,
		"",    // consumer tag
		false, // auto-ack: manual acknowledgment
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			if err := handler(msg); err != nil {
				logger.Log.Error("failed to process notification",
					zap.Uint64("delivery_tag", msg.DeliveryTag),
					zap.Error(err))
				if nackErr := msg.Nack(false, true); nackErr != nil {
					logger.Log.Error("failed to nack notification", zap.Error(nackErr))
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				logger.Log.Error("failed to ack notification", zap.Error(ackErr))
			}
		}
	}()

	return nil
}

// HandleNotification is the default email worker: it decodes the envelope
// and logs the dispatch. Wiring a real mail provider means replacing this
// handler only; the queue contract stays the same.
func HandleNotification(msg amqp.Delivery) error {
	var env Envelope
	if err := json.Unmarshal(msg.Body, &env); err != nil {
		return fmt.Errorf("failed to decode notification envelope: %w", err)
	}

	switch env.Kind {
	case KindOrderConfirmation:
		var c notifications.OrderConfirmation
		if err := json.Unmarshal(env.Payload, &c); err != nil {
			return fmt.Errorf("failed to decode confirmation payload: %w", err)
		}
		logger.Log.Info("dispatching order confirmation email",
			zap.String("to", env.To),
			zap.String("order_id", c.OrderID),
			zap.Float64("total", c.TotalAmount))
	case KindStatusUpdate:
		var u notifications.StatusUpdate
		if err := json.Unmarshal(env.Payload, &u); err != nil {
			return fmt.Errorf("failed to decode status payload: %w", err)
		}
		logger.Log.Info("dispatching status update email",
			zap.String("to", env.To),
			zap.String("order_id", u.OrderID),
			zap.String("status", string(u.NewStatus)))
	default:
		return fmt.Errorf("unknown notification kind %q", env.Kind)
	}
	return nil
}

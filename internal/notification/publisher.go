package notification

import (
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const (
	exchangeName = "booking.events"
	queueName    = "booking.notifications"
)

// Publisher pushes booking lifecycle messages onto RabbitMQ. A nil
// *Publisher is valid and publishes nothing, so the API works without a
// broker configured.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	log     zerolog.Logger
}

type BookingMessage struct {
	Code       string    `json:"code"`
	EventTitle string    `json:"event_title"`
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewPublisher(url string, log zerolog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(exchangeName, "direct", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	if err := ch.QueueBind(queueName, "", exchangeName, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	log.Info().Str("exchange", exchangeName).Str("queue", queueName).Msg("rabbitmq publisher initialized")

	return &Publisher{conn: conn, channel: ch, log: log}, nil
}

// PublishBookingEvent is best effort: failures are logged, never returned
// to the request path.
func (p *Publisher) PublishBookingEvent(code, eventTitle, kind string) {
	if p == nil {
		return
	}

	body, err := json.Marshal(BookingMessage{
		Code:       code,
		EventTitle: eventTitle,
		Kind:       kind,
		OccurredAt: time.Now(),
	})
	if err != nil {
		p.log.Error().Err(err).Msg("failed to marshal booking message")
		return
	}

	err = p.channel.Publish(exchangeName, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
		Timestamp:   time.Now(),
	})
	if err != nil {
		p.log.Error().Err(err).Str("code", code).Msg("failed to publish booking message")
	}
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

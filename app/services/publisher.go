package services

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
)

// getRequestIDFromContext extracts request ID from context (avoiding import cycle)
func getRequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value("request_id").(string); ok {
		return requestID
	}
	return ""
}

// EventPublisher is the notification gateway: it hands email work to the
// delivery service. A publish error here is what the lifecycle rules treat as
// a send failure.
type EventPublisher interface {
	PublishEmailVerification(ctx context.Context, email string, verificationURL string) error
	PublishPasswordReset(ctx context.Context, email string, resetURL string) error
	PublishWelcome(ctx context.Context, email string, name string) error
}

// RabbitMQPublisher is a concrete implementation using RabbitMQ.
type RabbitMQPublisher struct {
	ch *amqp.Channel
}

func NewRabbitMQPublisher(ch *amqp.Channel) *RabbitMQPublisher {
	return &RabbitMQPublisher{ch: ch}
}

type emailVerificationMessage struct {
	Type            string `json:"type"`
	Email           string `json:"email"`
	VerificationURL string `json:"verification_url"`
}

// PublishEmailVerification publishes an email verification event to the auth.events exchange.
func (p *RabbitMQPublisher) PublishEmailVerification(ctx context.Context, email string, verificationURL string) error {
	msg := emailVerificationMessage{
		Type:            "email_verification",
		Email:           email,
		VerificationURL: verificationURL,
	}
	return p.publish(ctx, "email.verification", msg)
}

type passwordResetMessage struct {
	Type     string `json:"type"`
	Email    string `json:"email"`
	ResetURL string `json:"reset_url"`
}

// PublishPasswordReset publishes a password reset event to the auth.events exchange.
func (p *RabbitMQPublisher) PublishPasswordReset(ctx context.Context, email string, resetURL string) error {
	msg := passwordResetMessage{
		Type:     "password_reset",
		Email:    email,
		ResetURL: resetURL,
	}
	return p.publish(ctx, "email.password_reset", msg)
}

type welcomeMessage struct {
	Type  string `json:"type"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// PublishWelcome publishes the post-verification welcome email event.
func (p *RabbitMQPublisher) PublishWelcome(ctx context.Context, email string, name string) error {
	msg := welcomeMessage{
		Type:  "welcome",
		Email: email,
		Name:  name,
	}
	return p.publish(ctx, "email.welcome", msg)
}

func (p *RabbitMQPublisher) publish(ctx context.Context, routingKey string, msg any) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	// Propagate request ID for distributed tracing
	headers := make(amqp.Table)
	if requestID := getRequestIDFromContext(ctx); requestID != "" {
		headers["X-Request-ID"] = requestID
	}

	return p.ch.PublishWithContext(
		ctx,
		"auth.events", // exchange
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Headers:     headers,
		},
	)
}

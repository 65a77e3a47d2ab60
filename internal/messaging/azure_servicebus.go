package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
	"github.com/rs/zerolog/log"

	"github.com/amity-sujit/quadroute/config"
)

// Order event types published by the API and consumed by the worker.
const (
	EventOrderCreated         = "order.created"
	EventOrderUpdated         = "order.updated"
	EventOrderVehicleAssigned = "order.vehicle_assigned"
)

// OrderEvent is the message body carried on the queue.
type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	VehicleID  *string   `json:"vehicle_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ServiceBusClient is an interface for Azure Service Bus operations
type ServiceBusClient interface {
	SendEvent(ctx context.Context, event OrderEvent) error
	Receive(ctx context.Context, handle func(ctx context.Context, event OrderEvent) error) error
	Close() error
}

// serviceBusClient implements the ServiceBusClient interface
type serviceBusClient struct {
	client    *azservicebus.Client
	sender    *azservicebus.Sender
	receiver  *azservicebus.Receiver
	queueName string
	source    string
}

// NewServiceBusClient creates a new Azure Service Bus client
func NewServiceBusClient(cfg config.AzureConfig, source string) (ServiceBusClient, error) {
	if cfg.ConnectionString == "" {
		return nil, fmt.Errorf("Azure Service Bus connection string is empty")
	}

	client, err := azservicebus.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Service Bus client: %w", err)
	}

	sender, err := client.NewSender(cfg.QueueName, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Service Bus sender: %w", err)
	}

	receiver, err := client.NewReceiverForQueue(cfg.QueueName, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Service Bus receiver: %w", err)
	}

	return &serviceBusClient{
		client:    client,
		sender:    sender,
		receiver:  receiver,
		queueName: cfg.QueueName,
		source:    source,
	}, nil
}

// SendEvent sends an order event to the queue.
func (s *serviceBusClient) SendEvent(ctx context.Context, event OrderEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event body: %w", err)
	}

	msg := &azservicebus.Message{
		Body: data,
		ApplicationProperties: map[string]interface{}{
			"source": s.source,
			"type":   event.Type,
			"time":   event.OccurredAt.Format(time.RFC3339),
		},
	}

	return s.sender.SendMessage(ctx, msg, nil)
}

// Receive pulls messages in small batches and dispatches them to handle.
// Messages that fail to decode are dead-lettered; handler failures abandon
// the message so the queue redelivers it.
func (s *serviceBusClient) Receive(ctx context.Context, handle func(ctx context.Context, event OrderEvent) error) error {
	for {
		messages, err := s.receiver.ReceiveMessages(ctx, 10, nil)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to receive messages: %w", err)
		}

		for _, msg := range messages {
			var event OrderEvent
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				log.Error().Err(err).Msg("Discarding undecodable message")
				if dlErr := s.receiver.DeadLetterMessage(ctx, msg, nil); dlErr != nil {
					log.Error().Err(dlErr).Msg("Failed to dead-letter message")
				}
				continue
			}

			if err := handle(ctx, event); err != nil {
				log.Error().Err(err).Str("order_id", event.OrderID).Msg("Event handler failed, abandoning message")
				if abErr := s.receiver.AbandonMessage(ctx, msg, nil); abErr != nil {
					log.Error().Err(abErr).Msg("Failed to abandon message")
				}
				continue
			}

			if err := s.receiver.CompleteMessage(ctx, msg, nil); err != nil {
				log.Error().Err(err).Msg("Failed to complete message")
			}
		}
	}
}

// Close closes the Service Bus client
func (s *serviceBusClient) Close() error {
	if s.receiver != nil {
		if err := s.receiver.Close(context.Background()); err != nil {
			return err
		}
	}

	if s.sender != nil {
		if err := s.sender.Close(context.Background()); err != nil {
			return err
		}
	}

	if s.client != nil {
		return s.client.Close(context.Background())
	}

	return nil
}

package services

import (
	"context"
	"log/slog"

	"github.com/Dosada05/league-system/live"
)

// Event — полезная нагрузка для канала уведомлений.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const EventMatchRecorded = "MATCH_RECORDED"

// Notifier — канал уведомлений "сделал и забыл": доставка лучших усилий,
// ошибки логируются и проглатываются, вызывающая операция никогда не
// блокируется и не откатывается из-за сбоя доставки.
type Notifier interface {
	Notify(event Event)
}

// EventSink — один адресат уведомлений (email, websocket-комната и т.п.).
type EventSink interface {
	Deliver(ctx context.Context, event Event) error
}

type fanoutNotifier struct {
	sinks  []EventSink
	logger *slog.Logger
}

func NewFanoutNotifier(logger *slog.Logger, sinks ...EventSink) Notifier {
	return &fanoutNotifier{sinks: sinks, logger: logger}
}

func (n *fanoutNotifier) Notify(event Event) {
	go func() {
		// Живём дольше породившего запроса, поэтому фоновый контекст.
		ctx := context.Background()
		for _, sink := range n.sinks {
			if err := sink.Deliver(ctx, event); err != nil {
				n.logger.Error("notification delivery failed",
					slog.String("event", event.Type),
					slog.Any("error", err))
			}
		}
	}()
}

// hubSink транслирует события всем подписчикам websocket-комнаты матчей.
type hubSink struct {
	hub *live.Hub
}

func NewHubSink(hub *live.Hub) EventSink {
	return &hubSink{hub: hub}
}

func (s *hubSink) Deliver(_ context.Context, event Event) error {
	s.hub.BroadcastToRoom(live.MatchesRoom, live.Message{
		Type:    event.Type,
		Payload: event.Payload,
		RoomID:  live.MatchesRoom,
	})
	return nil
}

// NopNotifier — заглушка для окружений без настроенных каналов.
type NopNotifier struct{}

func (NopNotifier) Notify(Event) {}

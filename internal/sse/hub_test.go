package sse

import (
	"testing"

	"github.com/google/uuid"

	"github.com/klasea/astillero-backend/internal/logger"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewHub(log)
}

func TestBroadcast_ReachesOnlySubscribedChannel(t *testing.T) {
	hub := newTestHub(t)
	panol := hub.NewClient(uuid.New())
	obras := hub.NewClient(uuid.New())
	hub.AddChannel(panol, "materiales")
	hub.AddChannel(obras, "obras")

	hub.Broadcast(Message{Channel: "materiales", Event: EventMaterialesChanged})

	select {
	case msg := <-panol.Outbound:
		if msg.Event != EventMaterialesChanged {
			t.Fatalf("unexpected event %q", msg.Event)
		}
	default:
		t.Fatalf("subscriber got nothing")
	}
	select {
	case msg := <-obras.Outbound:
		t.Fatalf("unsubscribed client received %v", msg)
	default:
	}
}

func TestBroadcast_EmptyChannelIsNoop(t *testing.T) {
	hub := newTestHub(t)
	client := hub.NewClient(uuid.New())
	hub.AddChannel(client, "alertas")

	hub.Broadcast(Message{Channel: "", Event: EventAlertasChanged})

	select {
	case msg := <-client.Outbound:
		t.Fatalf("received %v for empty channel", msg)
	default:
	}
}

func TestBroadcast_DropsWhenOutboundFull(t *testing.T) {
	hub := newTestHub(t)
	client := hub.NewClient(uuid.New())
	hub.AddChannel(client, "pedidos")

	// One past the buffer; the call must not block.
	for i := 0; i < cap(client.Outbound)+1; i++ {
		hub.Broadcast(Message{Channel: "pedidos", Event: EventPedidosChanged})
	}
	if got := len(client.Outbound); got != cap(client.Outbound) {
		t.Fatalf("expected full buffer (%d), got %d", cap(client.Outbound), got)
	}
}

func TestRemoveChannel_StopsDelivery(t *testing.T) {
	hub := newTestHub(t)
	client := hub.NewClient(uuid.New())
	hub.AddChannel(client, "flota")
	hub.RemoveChannel(client, "flota")

	hub.Broadcast(Message{Channel: "flota", Event: EventFlotaChanged})

	select {
	case msg := <-client.Outbound:
		t.Fatalf("received %v after unsubscribe", msg)
	default:
	}
}

func TestCloseClient_RemovesAllSubscriptions(t *testing.T) {
	hub := newTestHub(t)
	client := hub.NewClient(uuid.New())
	hub.AddChannel(client, "config")
	hub.AddChannel(client, "usuarios")
	hub.CloseClient(client)

	// Broadcast after close must not panic on the closed channel.
	hub.Broadcast(Message{Channel: "config", Event: EventConfigChanged})
	hub.Broadcast(Message{Channel: "usuarios", Event: EventUsuariosChanged})

	if len(client.Channels) != 0 {
		t.Fatalf("expected no channels, got %v", client.Channels)
	}
}

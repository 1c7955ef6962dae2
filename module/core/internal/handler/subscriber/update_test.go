package subscriber

import (
	"encoding/json"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/kudzimusar/schoolrun-bus-app/module/core/domain"
)

type recordingBroadcaster struct {
	published []domain.VehicleUpdate
}

func (r *recordingBroadcaster) Publish(update domain.VehicleUpdate) {
	r.published = append(r.published, update)
}

func TestForward_DeliversDecodedUpdates(t *testing.T) {
	b := &recordingBroadcaster{}
	consumer := NewUpdateConsumer(nil, b)

	body, _ := json.Marshal(domain.VehicleUpdate{
		VehicleID: "ZSB001",
		Latitude:  -17.8047,
		Longitude: 31.0669,
		Status:    domain.StatusMoving,
		Timestamp: 1715003456,
		GeofenceEvents: []domain.GeofenceEventRef{
			{GeofenceName: "Fourth Street Stop", EventType: domain.GeofenceEnter},
		},
	})

	msgs := make(chan amqp.Delivery, 2)
	msgs <- amqp.Delivery{Body: body}
	close(msgs)

	consumer.forward(msgs)

	if len(b.published) != 1 {
		t.Fatalf("expected 1 forwarded update, got %d", len(b.published))
	}
	if b.published[0].VehicleID != "ZSB001" {
		t.Errorf("expected ZSB001, got %s", b.published[0].VehicleID)
	}
	if len(b.published[0].GeofenceEvents) != 1 {
		t.Errorf("embedded events must survive the trip: %+v", b.published[0])
	}
}

func TestForward_SkipsMalformedBodies(t *testing.T) {
	b := &recordingBroadcaster{}
	consumer := NewUpdateConsumer(nil, b)

	good, _ := json.Marshal(domain.VehicleUpdate{VehicleID: "ZSB002"})

	msgs := make(chan amqp.Delivery, 2)
	msgs <- amqp.Delivery{Body: []byte("garbage")}
	msgs <- amqp.Delivery{Body: good}
	close(msgs)

	consumer.forward(msgs)

	if len(b.published) != 1 {
		t.Fatalf("expected only the valid update, got %d", len(b.published))
	}
	if b.published[0].VehicleID != "ZSB002" {
		t.Errorf("expected ZSB002, got %s", b.published[0].VehicleID)
	}
}

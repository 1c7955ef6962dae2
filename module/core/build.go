package core

import (
	"database/sql"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/kudzimusar/schoolrun-bus-app/module/core/internal/broadcast"
	handler "github.com/kudzimusar/schoolrun-bus-app/module/core/internal/handler/http"
	"github.com/kudzimusar/schoolrun-bus-app/module/core/internal/handler/subscriber"
	"github.com/kudzimusar/schoolrun-bus-app/module/core/internal/repository/database/postgres"
	"github.com/kudzimusar/schoolrun-bus-app/module/core/internal/repository/publisher/rabbitmq"
	"github.com/kudzimusar/schoolrun-bus-app/module/core/service"
)

type Module struct {
	LocationSvc *service.LocationService
	GeofenceSvc *service.GeofenceService
	TrackingSvc *service.TrackingService

	broadcaster     *broadcast.Broadcaster
	vehicleHandler  *handler.VehicleHandler
	geofenceHandler *handler.GeofenceHandler
	streamHandler   *handler.StreamHandler
	locationSub     *subscriber.LocationSubscriber
	updateConsumer  *subscriber.UpdateConsumer
}

func Build(db *sql.DB, amqpConn *amqp.Connection, mqttClient mqtt.Client, streamBuffer int) (*Module, error) {
	locationRepo := postgres.NewLocationRepo(db)
	geofenceRepo := postgres.NewGeofenceRepo(db)
	eventRepo := postgres.NewEventRepo(db)

	updatePub, err := rabbitmq.NewUpdatePublisher(amqpConn)
	if err != nil {
		return nil, fmt.Errorf("update publisher: %w", err)
	}

	locationSvc := service.NewLocationService(locationRepo)
	geofenceSvc := service.NewGeofenceService(geofenceRepo, eventRepo)
	trackingSvc := service.NewTrackingService(locationSvc, geofenceSvc, updatePub)

	broadcaster := broadcast.New(streamBuffer)

	return &Module{
		LocationSvc:     locationSvc,
		GeofenceSvc:     geofenceSvc,
		TrackingSvc:     trackingSvc,
		broadcaster:     broadcaster,
		vehicleHandler:  handler.NewVehicleHandler(locationSvc, trackingSvc),
		geofenceHandler: handler.NewGeofenceHandler(geofenceSvc),
		streamHandler:   handler.NewStreamHandler(broadcaster),
		locationSub:     subscriber.NewLocationSubscriber(mqttClient, trackingSvc),
		updateConsumer:  subscriber.NewUpdateConsumer(amqpConn, broadcaster),
	}, nil
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	m.vehicleHandler.Register(r)
	m.geofenceHandler.Register(r)
	m.streamHandler.Register(r)
}

// StartSubscribers begins MQTT ingestion and the bus-to-stream forwarder.
func (m *Module) StartSubscribers() error {
	if err := m.locationSub.Start(); err != nil {
		return fmt.Errorf("location subscriber: %w", err)
	}
	if err := m.updateConsumer.Start(); err != nil {
		return fmt.Errorf("update consumer: %w", err)
	}
	return nil
}

// Shutdown closes the broadcaster, ending every open live stream.
func (m *Module) Shutdown() {
	m.broadcaster.Close()
}

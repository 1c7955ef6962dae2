package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-playground/validator/v10"

	"github.com/kudzimusar/schoolrun-bus-app/module/core/domain"
)

const topicPattern = "/fleet/vehicle/+/location"

type trackingService interface {
	Process(ctx context.Context, vl *domain.VehicleLocation) (*domain.CheckResult, error)
}

// locationMessage is the telemetry payload as published by the devices.
// Coordinates are pointers so an absent field fails validation instead of
// decoding to a valid (0, 0).
type locationMessage struct {
	VehicleID string   `json:"vehicle_id" validate:"required"`
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Speed     *float64 `json:"speed" validate:"omitempty,gte=0"`
	Heading   *float64 `json:"heading" validate:"omitempty,gte=0,lt=360"`
	Timestamp int64    `json:"timestamp" validate:"required,gt=0"`
}

type LocationSubscriber struct {
	client   mqtt.Client
	tracking trackingService
	validate *validator.Validate
}

func NewLocationSubscriber(client mqtt.Client, tracking trackingService) *LocationSubscriber {
	return &LocationSubscriber{
		client:   client,
		tracking: tracking,
		validate: validator.New(),
	}
}

func (s *LocationSubscriber) Start() error {
	token := s.client.Subscribe(topicPattern, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *LocationSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	vl, err := s.parse(msg.Payload())
	if err != nil {
		log.Printf("rejected location message on %s: %v", msg.Topic(), err)
		return
	}

	result, err := s.tracking.Process(context.Background(), vl)
	if err != nil {
		log.Printf("process location for %s: %v", vl.VehicleID, err)
	}
	if result != nil && len(result.Failed) > 0 {
		log.Printf("geofences not evaluated for %s: %v", vl.VehicleID, result.FailedIDs())
	}
}

func (s *LocationSubscriber) parse(payload []byte) (*domain.VehicleLocation, error) {
	var raw locationMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := s.validate.Struct(&raw); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	return &domain.VehicleLocation{
		VehicleID: raw.VehicleID,
		Location: domain.Location{
			Lat:       *raw.Latitude,
			Lon:       *raw.Longitude,
			Timestamp: time.Unix(raw.Timestamp, 0),
		},
		Speed:   raw.Speed,
		Heading: raw.Heading,
	}, nil
}

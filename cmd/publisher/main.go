// Command publisher simulates bus telemetry over MQTT. Each simulated bus
// shuttles along a line through a stop at (-17.8047, 31.0669), so a server
// with a geofence there sees real enter/exit transitions.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	stopLat = -17.8047
	stopLon = 31.0669
	// ~0.0018 degrees of latitude is roughly 200m; the walk crosses a
	// 50m geofence around the stop and leaves it again
	swingDeg = 0.0018
	steps    = 20
)

type locationMessage struct {
	VehicleID string  `json:"vehicle_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Speed     float64 `json:"speed"`
	Heading   float64 `json:"heading"`
	Timestamp int64   `json:"timestamp"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds>\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}

	broker := "tcp://localhost:1883"
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		broker = v
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("fleet-mock-publisher")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("mqtt connect: %v", token.Error())
	}
	defer client.Disconnect(250)

	buses := []string{"ZSB001", "ZSB002", "ZSB003"}
	log.Printf("connected to %s, publishing every %ds for %v", broker, intervalSec, buses)

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	tick := 0
	for range ticker.C {
		for i, vid := range buses {
			// each bus offset by a phase so they cross the stop at
			// different times
			phase := float64(tick+i*steps/len(buses)) / steps * 2 * math.Pi
			lat := stopLat + swingDeg*math.Sin(phase)
			lon := stopLon + (rand.Float64()-0.5)*0.00005

			speed := 8.0 + rand.Float64()*4
			if math.Abs(math.Cos(phase)) < 0.15 { // near a turnaround
				speed = 0
			}

			heading := 0.0
			if math.Cos(phase) < 0 {
				heading = 180
			}

			msg := locationMessage{
				VehicleID: vid,
				Latitude:  lat,
				Longitude: lon,
				Speed:     speed,
				Heading:   heading,
				Timestamp: time.Now().Unix(),
			}

			payload, _ := json.Marshal(msg)
			topic := fmt.Sprintf("/fleet/vehicle/%s/location", vid)

			token := client.Publish(topic, 1, false, payload)
			token.Wait()

			log.Printf("published to %s: %s", topic, payload)
		}
		tick++
	}
}

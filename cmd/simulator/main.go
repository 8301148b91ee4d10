package main

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/config"
	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/domain"
)

// Publishes a 7-floor day of synthetic HVAC readings at high speed. Floors
// 5-7 carry injected anomalies so the downstream pipeline has something to
// find; floors 1-4 are clean daily load curves.
func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker())
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	base := time.Now().UTC().Truncate(time.Hour).Add(-24 * time.Hour)

	var published int
	for step := 0; step < 96; step++ { // 24h at 15-minute resolution
		ts := base.Add(time.Duration(step) * 15 * time.Minute)
		hour := float64(ts.Hour())
		// afternoon peak load curve
		seasonal := 10 * math.Sin((hour-6)*math.Pi/12)

		for floor := 1; floor <= 7; floor++ {
			value := 50 + seasonal + rng.NormFloat64()*1.5
			if floor >= 5 && step >= 56 && step < 60 {
				// mid-afternoon fault on the upper floors, staggered by
				// floor so the lag scan has something to align
				value += 15 + float64(floor-5)*2
			}
			p := domain.TimeSeriesPoint{
				Timestamp:     ts,
				Value:         value,
				SensorID:      fmt.Sprintf("hvac-floor-%d", floor),
				EquipmentType: domain.EquipmentHVAC,
				FloorNumber:   floor,
			}
			payload, _ := json.Marshal(p)
			token := client.Publish(config.ReadingsTopic(), 0, false, payload)
			token.Wait()
			published++
		}
		time.Sleep(20 * time.Millisecond)
	}
	log.Info().Int("published", published).Msg("simulation done")
}

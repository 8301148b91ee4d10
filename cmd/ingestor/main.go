package main

import (
	"context"
	"encoding/json"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/config"
	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/database"
	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	db, err := database.Connect()
	if err != nil {
		log.Warn().Err(err).Msg("db connect failed; continuing without persistence")
		db = nil
	}
	if db != nil {
		defer db.Close()
	}

	svcs, err := service.New(db)
	if err != nil {
		log.Fatal().Err(err).Msg("engine init failed")
	}

	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker())
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		if err := svcs.Analysis.FromMQTT(msg.Topic(), msg.Payload()); err != nil {
			log.Error().Err(err).Msg("ingest failed")
		}
	}

	if token := client.Subscribe(config.ReadingsTopic(), 0, handler); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("subscribe failed")
	}

	interval := config.FlushInterval()
	if interval <= 0 {
		interval = time.Minute
	}
	log.Info().Dur("flush_interval", interval).Msg("ingestor running; Ctrl+C to stop")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		result, payloads := svcs.Analysis.FlushWindow(context.Background())
		if result == nil {
			continue
		}
		for _, p := range payloads {
			body, err := json.Marshal(p)
			if err != nil {
				log.Error().Err(err).Str("pattern", p.PatternID).Msg("payload marshal failed")
				continue
			}
			token := client.Publish(config.NotificationsTopic(), 0, false, body)
			token.Wait()
			if token.Error() != nil {
				log.Error().Err(token.Error()).Str("pattern", p.PatternID).Msg("notification publish failed")
			}
		}
	}
}

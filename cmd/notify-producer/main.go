package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/fatih/color"
	"go.uber.org/atomic"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/kafka"
)

type template struct {
	category domain.Category
	title    string
	message  string
}

var templates = []template{
	{domain.CategoryMatch, "Match Starting Soon", "IND vs AUS starts in 15 minutes. Get your predictions ready!"},
	{domain.CategoryMatch, "Prediction Window Open", "Predict the next ball in the ongoing match."},
	{domain.CategoryReward, "Points Credited", "You earned 50 points for a correct prediction."},
	{domain.CategoryReward, "New Reward Available", "A new voucher has been added to the rewards store."},
	{domain.CategorySystem, "Leaderboard Updated", "Your weekly rank has changed. Check the leaderboard."},
	{domain.CategorySystem, "Daily Trivia", "Today's trivia question is live."},
}

func main() {
	brokers := flag.String("brokers", "localhost:9094", "Kafka brokers (comma-separated)")
	topic := flag.String("topic", "predict-win-notifications", "Kafka topic")
	rate := flag.Int("rate", 1, "Notifications per second")
	count := flag.Int("count", 0, "Number of notifications to send (0 = until interrupted)")
	category := flag.String("category", "", "Only send this category (match, reward, system)")
	flag.Parse()

	pool := templates
	if *category != "" {
		pool = nil
		for _, t := range templates {
			if string(t.category) == *category {
				pool = append(pool, t)
			}
		}
		if len(pool) == 0 {
			color.Red("unknown category %q", *category)
			os.Exit(1)
		}
	}
	if *rate <= 0 {
		*rate = 1
	}

	brokerList := strings.Split(*brokers, ",")

	color.Cyan("Predict & Win notification producer")
	fmt.Printf("  Brokers:  %s\n", *brokers)
	fmt.Printf("  Topic:    %s\n", *topic)
	fmt.Printf("  Rate:     %d/sec\n", *rate)
	fmt.Println()

	producer, err := sarama.NewAsyncProducer(brokerList, kafka.ProducerConfig())
	if err != nil {
		color.Red("failed to create producer: %v", err)
		os.Exit(1)
	}

	var sent, failed atomic.Int64
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		for range producer.Successes() {
			sent.Inc()
		}
	}()
	go func() {
		defer wg.Done()
		for err := range producer.Errors() {
			failed.Inc()
			color.Red("producer error: %v", err.Err)
		}
	}()

	finish := func() {
		producer.AsyncClose()
		wg.Wait()
		color.Green("done. sent: %d, errors: %d", sent.Load(), failed.Load())
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / time.Duration(*rate))
	defer ticker.Stop()

	statsTicker := time.NewTicker(5 * time.Second)
	defer statsTicker.Stop()

	queued := 0
	for {
		select {
		case <-sigChan:
			fmt.Println()
			color.Yellow("shutting down...")
			finish()
			return

		case <-statsTicker.C:
			fmt.Printf("  queued: %d  sent: %d  errors: %d\n", queued, sent.Load(), failed.Load())

		case <-ticker.C:
			if *count > 0 && queued >= *count {
				finish()
				return
			}

			t := pool[rand.IntN(len(pool))]
			msg := kafka.NotificationMessage{
				ID:       fmt.Sprintf("live-%d-%d", time.Now().Unix(), queued),
				Category: string(t.category),
				Title:    t.title,
				Message:  t.message,
			}
			data, err := json.Marshal(msg)
			if err != nil {
				color.Red("failed to marshal notification: %v", err)
				continue
			}

			producer.Input() <- &sarama.ProducerMessage{
				Topic: *topic,
				Key:   sarama.StringEncoder(msg.ID),
				Value: sarama.ByteEncoder(data),
			}
			queued++
		}
	}
}

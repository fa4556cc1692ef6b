// Seeder posts a small synthetic card to a running API instance: enough
// history for two fighters to be rated and predictable. Useful for
// smoke-testing a fresh deployment end to end.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/lhgjose/ufc-prediction-fights/internal/models"
)

func main() {
	apiURL := flag.String("url", "http://localhost:8080", "API base URL")
	flag.Parse()

	bouts := sampleCard()

	payload, err := json.Marshal(models.IngestBoutsRequest{Bouts: bouts})
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(*apiURL+"/api/v1/ingest/bouts", "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Fatalf("post bouts: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("Ingest: %s %s\n", resp.Status, string(body))
	if resp.StatusCode != http.StatusAccepted {
		log.Fatal("ingest rejected")
	}

	// Give the worker pool a flush interval to land the batch, then
	// trigger a rebuild so the new bouts are rated.
	time.Sleep(2 * time.Second)

	resp, err = client.Post(*apiURL+"/api/v1/ratings/rebuild", "application/json", nil)
	if err != nil {
		log.Fatalf("rebuild: %v", err)
	}
	defer resp.Body.Close()
	body, _ = io.ReadAll(resp.Body)
	fmt.Printf("Rebuild: %s %s\n", resp.Status, string(body))
}

func sampleCard() []models.Bout {
	date := func(s string) time.Time {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			log.Fatalf("bad date %q: %v", s, err)
		}
		return t
	}

	stats := func(kd, sigL, sigA, tdL, tdA, sub, ctrl int) *models.BoutStats {
		return &models.BoutStats{
			Knockdowns:         kd,
			SigStrikesLanded:   sigL,
			SigStrikesAttempts: sigA,
			TakedownsLanded:    tdL,
			TakedownsAttempted: tdA,
			SubAttempts:        sub,
			ControlSeconds:     ctrl,
		}
	}

	return []models.Bout{
		{
			ID: "seed-001", EventID: "seed-event-1", Date: date("2023-03-04"),
			RedID: "striker-1", BlueID: "journeyman-1", WinnerID: "striker-1",
			WeightClass: "Lightweight", Method: "KO/TKO", RoundFinished: 1, ScheduledRounds: 3,
			RedStats:  stats(2, 34, 61, 0, 0, 0, 0),
			BlueStats: stats(0, 12, 40, 0, 2, 0, 30),
		},
		{
			ID: "seed-002", EventID: "seed-event-1", Date: date("2023-03-04"),
			RedID: "grappler-1", BlueID: "journeyman-2", WinnerID: "grappler-1",
			WeightClass: "Lightweight", Method: "Submission", MethodDetail: "Rear Naked Choke",
			RoundFinished: 2, ScheduledRounds: 3,
			RedStats:  stats(0, 18, 30, 4, 5, 2, 410),
			BlueStats: stats(0, 9, 25, 0, 0, 0, 15),
		},
		{
			ID: "seed-003", EventID: "seed-event-2", Date: date("2023-09-16"),
			RedID: "striker-1", BlueID: "journeyman-2", WinnerID: "striker-1",
			WeightClass: "Lightweight", Method: "Decision", MethodDetail: "Unanimous",
			RoundFinished: 3, ScheduledRounds: 3,
			RedStats:  stats(1, 88, 150, 0, 1, 0, 45),
			BlueStats: stats(0, 52, 130, 1, 4, 0, 120),
		},
		{
			ID: "seed-004", EventID: "seed-event-2", Date: date("2023-09-16"),
			RedID: "grappler-1", BlueID: "journeyman-1", WinnerID: "grappler-1",
			WeightClass: "Lightweight", Method: "Decision", MethodDetail: "Unanimous",
			RoundFinished: 3, ScheduledRounds: 3,
			RedStats:  stats(0, 40, 80, 6, 9, 1, 600),
			BlueStats: stats(0, 35, 90, 0, 0, 0, 20),
		},
	}
}

// Command seed imports development fixture data through the public API.
//
// It logs in with the given staff credentials, reads a JSON array of tours
// from a file, and posts each one to the tours collection. Running it twice
// is harmless: duplicates are rejected by the unique tour name and reported,
// not retried.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/trailhead-app/trailhead/internal/logger"
	"github.com/trailhead-app/trailhead/internal/utils"
	"github.com/trailhead-app/trailhead/models"
)

func main() {
	_ = godotenv.Load()

	var (
		baseURL  = flag.String("base-url", "http://localhost:8080", "API base URL")
		filePath = flag.String("file", "testdata/tours.json", "path to the tours fixture file")
		email    = flag.String("email", os.Getenv("SEED_EMAIL"), "staff account email")
		password = flag.String("password", os.Getenv("SEED_PASSWORD"), "staff account password")
	)
	flag.Parse()

	log := logger.NewLogger("trailhead-seed")

	raw, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatal().Err(err).Str("file", *filePath).Msg("error reading fixture file")
	}

	var tours []models.Tour
	if err := json.Unmarshal(raw, &tours); err != nil {
		log.Fatal().Err(err).Msg("error parsing fixture file")
	}

	client := utils.NewHTTPClient(*baseURL)

	var login models.DataResponse
	resp, err := client.R().
		SetBody(models.LoginRequest{Email: *email, Password: *password}).
		SetResult(&login).
		Post("/api/v1/auth/login")
	if err != nil {
		log.Fatal().Err(err).Msg("error calling login endpoint")
	}
	if resp.StatusCode() != http.StatusOK || login.Token == "" {
		log.Fatal().Int("status", resp.StatusCode()).Msg("login failed")
	}

	client.SetAuthToken(login.Token)

	imported, skipped := 0, 0
	for _, tour := range tours {
		resp, err := client.R().
			SetBody(tour).
			Post("/api/v1/tours")
		if err != nil {
			log.Fatal().Err(err).Str("tour", tour.Name).Msg("error posting tour")
		}

		switch {
		case resp.StatusCode() == http.StatusCreated:
			imported++
		case resp.StatusCode() == http.StatusBadRequest && strings.Contains(resp.String(), "duplicate"):
			log.Warn().Str("tour", tour.Name).Msg("tour already exists, skipping")
			skipped++
		default:
			log.Fatal().
				Int("status", resp.StatusCode()).
				Str("tour", tour.Name).
				Str("body", resp.String()).
				Msg("unexpected response posting tour")
		}
	}

	fmt.Printf("Imported %d tours (%d skipped)\n", imported, skipped)
}

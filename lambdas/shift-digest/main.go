package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"teamop.dk/bosted/auth"
	"teamop.dk/bosted/config"
	"teamop.dk/bosted/core"
	directus "teamop.dk/bosted/directus/v1"
	"teamop.dk/bosted/infrastructure/communication"
	"teamop.dk/bosted/infrastructure/filesystem"
	"teamop.dk/bosted/logging"
)

// DigestEvent is the detail of the scheduled EventBridge rule. An empty
// email falls back to the configured facility.
type DigestEvent struct {
	Email string `json:"email"`
}

func facilityEmail(event events.CloudWatchEvent, fallback string) (string, error) {
	if len(event.Detail) == 0 {
		return fallback, nil
	}
	var detail DigestEvent
	if err := json.Unmarshal(event.Detail, &detail); err != nil {
		return "", fmt.Errorf("failed to parse event detail: %w", err)
	}
	if detail.Email == "" {
		return fallback, nil
	}
	return detail.Email, nil
}

func newDigest(ctx context.Context, cfg *config.Config) (*Digest, error) {
	client := directus.NewDirectusClient(directus.Options{
		BaseURL: cfg.Directus.URL,
		Identity: directus.ServiceIdentity{
			Email:    cfg.Directus.Email,
			Password: cfg.Directus.Password,
		},
		RequestTimeout:  cfg.Directus.RequestTimeout,
		ResourceTimeout: cfg.Directus.ResourceTimeout,
	})

	files, err := filesystem.ConnectS3(ctx, cfg.Digest.Bucket)
	if err != nil {
		return nil, err
	}

	digest := &Digest{
		Login:  auth.NewDirectusRepository(client),
		Shifts: core.NewScheduleService(core.NewEnricher(core.NewDirectusBackend(client))),
		Files:  files,
		Slack: communication.NewSlack(cfg.Slack.Token, communication.SlackOption{
			InfoChannelID:  cfg.Slack.InfoChannelID,
			ErrorChannelID: cfg.Slack.ErrorChannelID,
		}),
		From: cfg.Digest.From,
		To:   cfg.Digest.To,
	}
	if len(cfg.Digest.To) > 0 {
		mailer, err := communication.ConnectSES(ctx)
		if err != nil {
			return nil, err
		}
		digest.Mailer = mailer
	}
	return digest, nil
}

func HandleRequest(ctx context.Context, event events.CloudWatchEvent) (*Result, error) {
	cfg, err := config.Load(ctx, os.Getenv("BOSTED_CONFIG"))
	if err != nil {
		return nil, err
	}
	if cfg.Digest.Bucket == "" {
		return nil, fmt.Errorf("BOSTED_DIGEST_BUCKET is required")
	}
	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format)
	ctx = logging.ContextWithLogger(ctx, logger)

	email, err := facilityEmail(event, cfg.Digest.Facility)
	if err != nil {
		return nil, err
	}

	digest, err := newDigest(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return digest.Run(ctx, email)
}

func main() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(HandleRequest)
		return
	}

	result, err := HandleRequest(context.Background(), events.CloudWatchEvent{})
	if err != nil {
		log.Fatal(err)
	}
	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
}

package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/onespecapp/nemo-b2b-web-sub000/internal/calls"
	appconfig "github.com/onespecapp/nemo-b2b-web-sub000/internal/config"
	"github.com/onespecapp/nemo-b2b-web-sub000/internal/notify"
	"github.com/onespecapp/nemo-b2b-web-sub000/pkg/logging"
)

// SESLoader builds an SESv2 client on demand so the AWS config is only
// resolved when EMAIL_PROVIDER=ses.
type SESLoader func(ctx context.Context) (notify.SESAPI, error)

// BuildEmailSender selects the email provider named by EMAIL_PROVIDER.
func BuildEmailSender(ctx context.Context, cfg *appconfig.Config, loadSES SESLoader, logger *logging.Logger) (notify.EmailSender, error) {
	if logger == nil {
		logger = logging.Default()
	}
	switch cfg.EmailProvider {
	case "", "stub":
		logger.Info("email provider: stub")
		return notify.NewStubEmailSender(logger), nil
	case "sendgrid":
		if cfg.SendGridAPIKey == "" || cfg.EmailFromAddress == "" {
			return nil, errors.New("bootstrap: sendgrid requires SENDGRID_API_KEY and EMAIL_FROM_ADDRESS")
		}
		logger.Info("email provider: sendgrid")
		return notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFromAddress,
			FromName:  cfg.EmailFromName,
		}, logger), nil
	case "ses":
		if cfg.EmailFromAddress == "" {
			return nil, errors.New("bootstrap: ses requires EMAIL_FROM_ADDRESS")
		}
		if loadSES == nil {
			return nil, errors.New("bootstrap: ses client loader missing")
		}
		client, err := loadSES(ctx)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: load ses client: %w", err)
		}
		logger.Info("email provider: ses", "region", cfg.AWSRegion)
		return notify.NewSESSender(client, notify.SESConfig{
			FromEmail: cfg.EmailFromAddress,
			FromName:  cfg.EmailFromName,
		}, logger), nil
	default:
		return nil, fmt.Errorf("bootstrap: unknown EMAIL_PROVIDER %q", cfg.EmailProvider)
	}
}

// BuildCallPlacer returns nil when CALL_API_BASE_URL or CALL_API_KEY is unset,
// which makes the test call endpoint answer 503.
func BuildCallPlacer(cfg *appconfig.Config, logger *logging.Logger) calls.Placer {
	if logger == nil {
		logger = logging.Default()
	}
	client, err := calls.NewClient(calls.ClientConfig{
		BaseURL: cfg.CallAPIBaseURL,
		APIKey:  cfg.CallAPIKey,
		Timeout: cfg.CallAPITimeout,
		Logger:  logger,
	})
	if err != nil {
		logger.Info("test calls disabled", "reason", err.Error())
		return nil
	}
	return client
}

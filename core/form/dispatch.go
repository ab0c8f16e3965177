package form

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/customform/core"
)

type (
	// Target carries the per-instance delivery configuration.
	Target struct {
		URL       string
		SendEmail bool
		EmailTo   string // falls back to the configured support address
		Course    string
		FormName  string
	}

	// Dispatcher forwards normalized submissions to their configured
	// destinations. Every attempt is exactly-once, fire-and-forget:
	// failures are logged but never surfaced to the submitter's flow.
	Dispatcher struct {
		client       *http.Client
		mailSvc      core.EmailService
		logger       core.Logger
		supportEmail mail.Address
	}
)

func NewDispatcher(conf *core.Config, mailSvc core.EmailService, logger core.Logger) *Dispatcher {
	return &Dispatcher{
		// default transport: TLS verification stays on
		client:       &http.Client{Timeout: conf.Dispatch.Timeout},
		mailSvc:      mailSvc,
		logger:       logger,
		supportEmail: conf.SupportEmail,
	}
}

// Dispatch issues the configured delivery attempts for one submission.
//
// An empty target URL is a valid deployment state, not an error; the
// POST step is skipped and Posted stays false. Otherwise Posted is true
// once the attempt was issued, regardless of the remote response;
// callers must not read it as a delivery acknowledgment. The POST and
// the email are independent, either may fail without affecting the other.
func (d *Dispatcher) Dispatch(ctx context.Context, target Target, normalized NormalizedSubmission, report Report) DeliveryOutcome {
	var outcome DeliveryOutcome

	if target.URL != "" {
		d.post(ctx, target.URL, normalized)
		outcome.Posted = true
	}

	if target.SendEmail {
		d.email(target, report)
		outcome.Emailed = true
	}
	return outcome
}

func (d *Dispatcher) post(ctx context.Context, url string, normalized NormalizedSubmission) {
	body := normalized.Values().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		d.logger.Error(fmt.Sprintf("building submission request: %v", err), errors.Wrap(err, "building submission request"))
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := d.client.Do(req)
	if err != nil {
		d.logger.Error(fmt.Sprintf("posting submission to %s: %v", url, err), errors.Wrap(err, "posting submission"))
		return
	}
	// the response body is intentionally left unread; the remote's
	// opinion of the payload must never block the submitter
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode >= http.StatusBadRequest {
		d.logger.Warn(fmt.Sprintf("posting submission to %s: status %d", url, res.StatusCode))
	}
}

func (d *Dispatcher) email(target Target, report Report) {
	to := d.supportEmail
	if target.EmailTo != "" {
		to = mail.Address{Address: target.EmailTo}
	}

	d.mailSvc.SendMessages(&core.EmailMessage{
		To:          []mail.Address{to},
		Subject:     fmt.Sprintf("%s: %s submission", target.Course, target.FormName),
		HTMLContent: report.HTML(),
	})
}

package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/couchcryptid/taf-decoder/internal/decoder"
	"github.com/couchcryptid/taf-decoder/internal/domain"
	"github.com/couchcryptid/taf-decoder/internal/observability"
)

// ErrEmptyReport is returned for messages that carry no report text.
var ErrEmptyReport = errors.New("empty report")

// TafTransformer implements Transformer by decoding the message value as a
// raw TAF report. Decoding problems are reported inside the envelope, not
// as errors.
type TafTransformer struct {
	decoder decoder.Decoder
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates a TafTransformer around a decoder.
func NewTransformer(d decoder.Decoder, logger *slog.Logger, metrics *observability.Metrics) *TafTransformer {
	return &TafTransformer{
		decoder: d,
		logger:  logger,
		metrics: metrics,
	}
}

func (t *TafTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.DecodedReport, error) {
	text := strings.TrimSuffix(strings.TrimSpace(string(raw.Value)), "=")
	if strings.TrimSpace(text) == "" {
		return domain.DecodedReport{}, ErrEmptyReport
	}

	report := domain.NewDecodedReport(t.decoder.Decode(text))

	failed := make([]string, 0, len(report.Errors))
	for _, e := range report.Errors {
		t.logger.Debug("decoder error",
			"id", report.ID,
			"decoder", e.Decoder,
			"message", e.Message,
			"text", e.Text,
		)
		failed = append(failed, string(e.Decoder))
	}
	if !report.Valid {
		t.logger.Info("report decoded with errors",
			"id", report.ID,
			"icao", report.ICAO,
			"errors", len(report.Errors),
		)
	}
	if t.metrics != nil {
		t.metrics.ObserveReport(report.Valid, failed...)
	}

	return report, nil
}

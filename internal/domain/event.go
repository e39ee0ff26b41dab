package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// reportNamespace scopes name-based report IDs.
var reportNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:taf-decoder:report"))

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// DecodedReport is the envelope published for every decoded report.
type DecodedReport struct {
	ID        string         `json:"id"`
	ICAO      string         `json:"icao,omitempty"`
	Valid     bool           `json:"valid"`
	Report    *DecodedTaf    `json:"report"`
	Errors    []*DecodeError `json:"errors,omitempty"`
	DecodedAt time.Time      `json:"decoded_at"`
}

// ReportID returns the deterministic ID of a normalized report text.
func ReportID(normalized string) string {
	return uuid.NewSHA1(reportNamespace, []byte(normalized)).String()
}

// NewDecodedReport wraps a decoded report in its envelope.
func NewDecodedReport(taf *DecodedTaf) DecodedReport {
	return DecodedReport{
		ID:        ReportID(taf.Raw),
		ICAO:      taf.ICAO,
		Valid:     taf.IsValid(),
		Report:    taf,
		Errors:    taf.DecodingErrors(),
		DecodedAt: clock.Now().UTC(),
	}
}

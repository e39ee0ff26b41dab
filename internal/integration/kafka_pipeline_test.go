//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/taf-decoder/internal/adapter/kafka"
	"github.com/couchcryptid/taf-decoder/internal/config"
	"github.com/couchcryptid/taf-decoder/internal/decoder"
	"github.com/couchcryptid/taf-decoder/internal/domain"
	"github.com/couchcryptid/taf-decoder/internal/observability"
	"github.com/couchcryptid/taf-decoder/internal/pipeline"
)

const (
	testSourceTopic = "test-raw-taf"
	testSinkTopic   = "test-decoded-taf"
)

var rawReports = []string{
	"TAF LEMD 080500Z 0806/0912 23010KT 9999 SCT025 TX12/0816Z TN04/0807Z",
	"TAF KJFK 081730Z 0818/0924 31015G25KT P6SM BKN040 FM090200 27008KT P6SM SCT050",
	"TAF EGLL 081100Z 0812/0918 24008KT CAVOK TX18/0815Z TN09/0906Z",
	"TAF TAF LIR 032244Z 0318/0206 23010KT",
	"TAF AMD LFPG 231027Z 2310/2411 CNL",
}

// decodedMessage holds a message read from the sink topic.
type decodedMessage struct {
	ID      string
	ICAO    string
	Valid   bool
	Errors  int
	Key     string
	Headers map[string]string
}

// readDecoded reads a single message from the sink consumer.
func readDecoded(ctx context.Context, t *testing.T, consumer *kafkago.Reader) decodedMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}

	var envelope struct {
		ID     string            `json:"id"`
		ICAO   string            `json:"icao"`
		Valid  bool              `json:"valid"`
		Errors []json.RawMessage `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(msg.Value, &envelope), "unmarshal sink message")

	return decodedMessage{
		ID:      envelope.ID,
		ICAO:    envelope.ICAO,
		Valid:   envelope.Valid,
		Errors:  len(envelope.Errors),
		Key:     string(msg.Key),
		Headers: headers,
	}
}

func testConfig(broker, group string) *config.Config {
	return &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSourceTopic:   testSourceTopic,
		KafkaSinkTopic:     testSinkTopic,
		KafkaGroupID:       fmt.Sprintf("%s-%d", group, time.Now().UnixNano()),
		BatchFlushInterval: 5 * time.Second,
	}
}

func newSinkConsumer(t *testing.T, broker string) *kafkago.Reader {
	t.Helper()
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })
	return consumer
}

// TestKafkaReaderWriter verifies the adapter layer: kafka.Reader (extractor) and
// kafka.Writer (loader) round-trip a report through Kafka.
func TestKafkaReaderWriter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	cfg := testConfig(broker, "test-reader")

	producer := &kafkago.Writer{Addr: kafkago.TCP(broker), Topic: testSourceTopic}
	t.Cleanup(func() { _ = producer.Close() })
	require.NoError(t, producer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte("LEMD"),
		Value: []byte(rawReports[0] + "="),
	}))

	// Retry because the consumer group may need time to rebalance before
	// partitions are assigned and messages become available.
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	var batch []domain.RawEvent
	for {
		var err error
		batch, err = reader.ExtractBatch(ctx, 1)
		require.NoError(t, err)
		if len(batch) > 0 {
			break
		}
		if ctx.Err() != nil {
			t.Fatal("timed out waiting for message from source topic")
		}
	}
	require.Len(t, batch, 1)
	raw := batch[0]
	assert.Equal(t, []byte("LEMD"), raw.Key)
	assert.Equal(t, testSourceTopic, raw.Topic)
	require.NotNil(t, raw.Commit, "commit callback should be set")
	require.NoError(t, raw.Commit(ctx))

	transformer := pipeline.NewTransformer(decoder.For(decoder.Lenient), discardLogger(), nil)
	report, err := transformer.Transform(ctx, raw)
	require.NoError(t, err)
	require.True(t, report.Valid)

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })
	require.NoError(t, writer.LoadBatch(ctx, []domain.DecodedReport{report}))

	dm := readDecoded(ctx, t, newSinkConsumer(t, broker))
	assert.Equal(t, report.ID, dm.Key)
	assert.Equal(t, domain.ReportID(rawReports[0]), dm.ID)
	assert.Equal(t, "LEMD", dm.ICAO)
	assert.True(t, dm.Valid)
	assert.Equal(t, "LEMD", dm.Headers["icao"])
	assert.Equal(t, "true", dm.Headers["valid"])
	_, err = time.Parse(time.RFC3339, dm.Headers["decoded_at"])
	assert.NoError(t, err, "decoded_at should be valid RFC3339")
}

// TestPipelineEndToEnd wires the full pipeline (Reader, Transformer, Writer)
// with real Kafka and verifies every report is decoded and published.
func TestPipelineEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	cfg := testConfig(broker, "test-pipeline")

	producer := &kafkago.Writer{Addr: kafkago.TCP(broker), Topic: testSourceTopic}
	t.Cleanup(func() { _ = producer.Close() })

	msgs := make([]kafkago.Message, 0, len(rawReports))
	for i, raw := range rawReports {
		msgs = append(msgs, kafkago.Message{Key: []byte("report-" + strconv.Itoa(i)), Value: []byte(raw)})
	}
	require.NoError(t, producer.WriteMessages(ctx, msgs...))

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	transformer := pipeline.NewTransformer(decoder.NewCachedDecoder(decoder.For(decoder.Lenient), 100, metrics), discardLogger(), metrics)
	p := pipeline.New(reader, transformer, writer, discardLogger(), metrics, 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	consumer := newSinkConsumer(t, broker)
	received := make(map[string]decodedMessage, len(rawReports))
	for len(received) < len(rawReports) {
		dm := readDecoded(ctx, t, consumer)
		received[dm.ID] = dm
	}

	pipelineCancel()
	require.NoError(t, <-errCh)

	for _, raw := range rawReports {
		want := decoder.ParseLenient(raw)
		dm, ok := received[domain.ReportID(want.Raw)]
		require.True(t, ok, "missing decoded report for %q", raw)
		assert.Equal(t, want.IsValid(), dm.Valid, raw)
		assert.Equal(t, len(want.DecodingErrors()), dm.Errors, raw)
		assert.Equal(t, strconv.FormatBool(want.IsValid()), dm.Headers["valid"])
	}
	assert.Equal(t, "KJFK", received[domain.ReportID(rawReports[1])].ICAO)
	assert.False(t, received[domain.ReportID(rawReports[3])].Valid)
}

// TestPipelineTransformError verifies that an empty message (poison pill) is
// skipped and the pipeline continues processing valid messages.
func TestPipelineTransformError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	cfg := testConfig(broker, "test-poison")

	producer := &kafkago.Writer{Addr: kafkago.TCP(broker), Topic: testSourceTopic}
	t.Cleanup(func() { _ = producer.Close() })
	require.NoError(t, producer.WriteMessages(ctx,
		kafkago.Message{Key: []byte("bad"), Value: []byte("  =  ")},
		kafkago.Message{Key: []byte("good"), Value: []byte(rawReports[0])},
	))

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	transformer := pipeline.NewTransformer(decoder.For(decoder.Lenient), discardLogger(), metrics)
	p := pipeline.New(reader, transformer, writer, discardLogger(), metrics, 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	consumer := newSinkConsumer(t, broker)
	dm := readDecoded(ctx, t, consumer)
	assert.Equal(t, "LEMD", dm.ICAO)

	// Verify no second message arrives (the poison pill was skipped).
	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	_, err := consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no second message on sink topic")

	pipelineCancel()
	require.NoError(t, <-errCh)
}

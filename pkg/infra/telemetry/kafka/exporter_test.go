package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/NeuralTrust/SafePrompt/pkg/domain/telemetry"
	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducer struct {
	messages   []*kafka.Message
	produceErr error
	deliverErr error
	closed     bool
}

func (f *fakeProducer) Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error {
	if f.produceErr != nil {
		return f.produceErr
	}
	f.messages = append(f.messages, msg)
	reply := *msg
	reply.TopicPartition.Error = f.deliverErr
	deliveryChan <- &reply
	return nil
}

func (f *fakeProducer) Flush(int) int { return 0 }
func (f *fakeProducer) Close()        { f.closed = true }

var settings = map[string]interface{}{"host": "localhost", "port": "9092", "topic": "safeprompt-events"}

func TestValidateConfig(t *testing.T) {
	exp := NewKafkaExporter()
	assert.NoError(t, exp.ValidateConfig(settings))
	assert.ErrorContains(t, exp.ValidateConfig(map[string]interface{}{"port": "9092", "topic": "t"}), "host is required")
	assert.ErrorContains(t, exp.ValidateConfig(map[string]interface{}{"host": "h", "topic": "t"}), "port is required")
	assert.ErrorContains(t, exp.ValidateConfig(map[string]interface{}{"host": "h", "port": "1"}), "topic is required")
	assert.ErrorContains(t, exp.ValidateConfig(map[string]interface{}{"host": 5}), "invalid kafka config")
}

func TestHandle(t *testing.T) {
	producer := &fakeProducer{}
	var bootstrap interface{}
	base := NewKafkaExporterWithFactory(func(cfg *kafka.ConfigMap) (Producer, error) {
		bootstrap, _ = cfg.Get("bootstrap.servers", nil)
		return producer, nil
	})

	exp, err := base.WithSettings(settings)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9092", bootstrap)

	evt := &telemetry.Event{ID: "evt-1", IsSafe: false, FlaggedTerms: 2, Sentiment: "negative"}
	require.NoError(t, exp.Handle(context.Background(), evt))

	require.Len(t, producer.messages, 1)
	msg := producer.messages[0]
	assert.Equal(t, "safeprompt-events", *msg.TopicPartition.Topic)
	assert.Equal(t, []byte("evt-1"), msg.Key)

	var decoded telemetry.Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, 2, decoded.FlaggedTerms)

	exp.Close()
	assert.True(t, producer.closed)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		producer *fakeProducer
		errMsg   string
	}{
		{name: "produce", producer: &fakeProducer{produceErr: errors.New("queue full")}, errMsg: "queue full"},
		{name: "delivery", producer: &fakeProducer{deliverErr: errors.New("broker down")}, errMsg: "delivery failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp, err := NewKafkaExporterWithFactory(func(*kafka.ConfigMap) (Producer, error) {
				return tt.producer, nil
			}).WithSettings(settings)
			require.NoError(t, err)
			assert.ErrorContains(t, exp.Handle(context.Background(), &telemetry.Event{ID: "x"}), tt.errMsg)
		})
	}
}

func TestHandle_Uninitialized(t *testing.T) {
	err := NewKafkaExporter().Handle(context.Background(), &telemetry.Event{})
	assert.ErrorContains(t, err, "not initialized")
}

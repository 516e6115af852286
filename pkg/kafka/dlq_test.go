package kafka

import (
	"testing"
)

func TestDLQTopicPrefix(t *testing.T) {
	if DLQTopicPrefix != "karigor.dlq" {
		t.Errorf("DLQTopicPrefix = %q, want %q", DLQTopicPrefix, "karigor.dlq")
	}
}

func TestDLQTopic(t *testing.T) {
	tests := []struct {
		name          string
		originalTopic string
		want          string
	}{
		{
			name:          "standard topic",
			originalTopic: "karigor.listing.created",
			want:          "karigor.dlq.karigor.listing.created",
		},
		{
			name:          "simple topic name",
			originalTopic: "orders",
			want:          "karigor.dlq.orders",
		},
		{
			name:          "deeply nested topic",
			originalTopic: "karigor.creator.rating.webhook",
			want:          "karigor.dlq.karigor.creator.rating.webhook",
		},
		{
			name:          "single word topic",
			originalTopic: "notifications",
			want:          "karigor.dlq.notifications",
		},
		{
			name:          "topic with hyphens",
			originalTopic: "user-events",
			want:          "karigor.dlq.user-events",
		},
		{
			name:          "topic with underscores",
			originalTopic: "index_updates",
			want:          "karigor.dlq.index_updates",
		},
		{
			name:          "empty topic",
			originalTopic: "",
			want:          "karigor.dlq.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DLQTopic(tt.originalTopic)
			if got != tt.want {
				t.Errorf("DLQTopic(%q) = %q, want %q", tt.originalTopic, got, tt.want)
			}
		})
	}
}

func TestDLQTopic_ContainsPrefix(t *testing.T) {
	topic := DLQTopic("some.topic")
	if len(topic) <= len(DLQTopicPrefix) {
		t.Fatalf("DLQTopic result %q should be longer than prefix %q", topic, DLQTopicPrefix)
	}
	prefix := topic[:len(DLQTopicPrefix)]
	if prefix != DLQTopicPrefix {
		t.Errorf("DLQTopic(%q) prefix = %q, want %q", "some.topic", prefix, DLQTopicPrefix)
	}
}

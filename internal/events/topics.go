package events

// Topic constants for events emitted during a batch run.
const (
	TopicOrderSucceeded = "order.succeeded"
	TopicOrderFailed    = "order.failed"
	TopicOrderReview    = "order.review"
	TopicBatchCompleted = "batch.completed"
)

// DefaultTopics returns the canonical list of emitted topics.
func DefaultTopics() []string {
	return []string{
		TopicOrderSucceeded,
		TopicOrderFailed,
		TopicOrderReview,
		TopicBatchCompleted,
	}
}

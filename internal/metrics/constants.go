package metrics

// Namespace prefixes every metric name
const Namespace = "homestead"

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
)

// Business metric names
const (
	MetricNameCropsPlanted         = "crops_planted_total"
	MetricNameCropsHarvested       = "crops_harvested_total"
	MetricNameCropsWitheredRemoved = "crops_withered_removed_total"
	MetricNameCropsReconciled      = "crops_reconciled_withered_total"
	MetricNameGoldEarned           = "gold_earned_total"
	MetricNameGoldSpent            = "gold_spent_total"
	MetricNamePlayersProvisioned   = "players_provisioned_total"
	MetricNameActionFailures       = "action_failures_total"
	MetricNameTransactionRetries   = "transaction_retries_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished = "Total number of events published"
)

// Business metric help text
const (
	HelpTextCropsPlanted         = "Total number of crops planted"
	HelpTextCropsHarvested       = "Total number of ready crops harvested for gold"
	HelpTextCropsWitheredRemoved = "Total number of withered crops cleared without payout"
	HelpTextCropsReconciled      = "Total number of crops marked withered during offline reconciliation"
	HelpTextGoldEarned           = "Total gold credited by crop sales"
	HelpTextGoldSpent            = "Total gold debited by seed purchases"
	HelpTextPlayersProvisioned   = "Total number of players created on first contact"
	HelpTextActionFailures       = "Total number of rejected actions by action and error kind"
	HelpTextTransactionRetries   = "Total number of transaction attempts retried after a conflict"
)

// Label names
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelCrop      = "crop"
	LabelAction    = "action"
	LabelKind      = "kind"
	LabelOperation = "operation"
)

// UnmatchedRoute labels requests that did not hit a registered route
const UnmatchedRoute = "unmatched"

// HTTPLatencyBuckets spans 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Log messages
const (
	LogMsgPayloadDecodeFailed = "Event payload could not be decoded"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)

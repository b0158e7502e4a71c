package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
	MetricNameRateLimited          = "http_requests_rate_limited_total"
)

// Business metric names
const (
	MetricNameProductsAdded      = "harvest_products_added_total"
	MetricNameProductsEdited     = "harvest_products_edited_total"
	MetricNameProductsDeleted    = "harvest_products_deleted_total"
	MetricNameCatalogFallbacks   = "harvest_catalog_fallbacks_total"
	MetricNameReminderBucketSize = "harvest_reminder_bucket_size"
)

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextRateLimited          = "Total number of requests rejected by the rate limiter"

	HelpTextProductsAdded      = "Total number of harvested products added"
	HelpTextProductsEdited     = "Total number of product edits"
	HelpTextProductsDeleted    = "Total number of products deleted"
	HelpTextCatalogFallbacks   = "Total number of lookups that fell back to the default storage profile"
	HelpTextReminderBucketSize = "Number of products per urgency tier at the last reminder evaluation"
)

// Label names
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelPlantType = "plant_type"
	LabelTier      = "tier"
)

// HTTPLatencyBuckets ranges from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

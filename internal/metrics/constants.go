package metrics

// Metric names
const (
	MetricNameItemLookups       = "tataru_item_lookups_total"
	MetricNameStoreWrites       = "tataru_item_store_writes_total"
	MetricNameRemoteCalls       = "tataru_remote_calls_total"
	MetricNameResolutions       = "tataru_recipe_resolutions_total"
	MetricNameResolutionDepth   = "tataru_recipe_resolution_depth"
	MetricNameMarketCacheHits   = "tataru_market_cache_hits_total"
	MetricNameMarketCacheMisses = "tataru_market_cache_misses_total"
	MetricNameCommandsHandled   = "tataru_commands_handled_total"
	MetricNameHTTPRequestsTotal = "tataru_http_requests_total"
)

// Help texts
const (
	HelpTextItemLookups       = "Item store lookups by kind and outcome"
	HelpTextStoreWrites       = "Item store persistence operations by kind"
	HelpTextRemoteCalls       = "Remote collaborator HTTP calls by endpoint and status"
	HelpTextResolutions       = "Recipe resolutions by mode"
	HelpTextResolutionDepth   = "Recursion depth reached per recipe resolution"
	HelpTextMarketCacheHits   = "Market price cache hits"
	HelpTextMarketCacheMisses = "Market price cache misses"
	HelpTextCommandsHandled   = "Chat commands handled by name and outcome"
	HelpTextHTTPRequestsTotal = "HTTP requests served by the ops server"
)

// Label names
const (
	LabelKind     = "kind"
	LabelOutcome  = "outcome"
	LabelEndpoint = "endpoint"
	LabelStatus   = "status"
	LabelMode     = "mode"
	LabelCommand  = "command"
	LabelMethod   = "method"
	LabelPath     = "path"
)

// Label values
const (
	LookupByID    = "by_id"
	LookupByName  = "by_name"
	LookupFuzzy   = "fuzzy"
	OutcomeHit    = "hit"
	OutcomeRemote = "remote"
	OutcomeMiss   = "miss"
	OutcomeError  = "error"
	OutcomeOK     = "ok"

	WriteAppend  = "append"
	WriteRewrite = "rewrite"

	ModeDirect    = "direct"
	ModeRecursive = "recursive"
)

// ResolutionDepthBuckets covers typical FFXIV crafting chains; anything
// past eight levels is pathological.
var ResolutionDepthBuckets = []float64{1, 2, 3, 4, 5, 6, 8, 12}

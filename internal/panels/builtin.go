package panels

import "github.com/muurk/logconsole/internal/plugin"

// Searches shows the search limits and time range options.
func Searches(props plugin.Props) plugin.Panel {
	return New("Search Configuration", []Field{
		{Name: "query_time_range_limit", Label: "Query time range limit"},
		{Name: "relative_timerange_options", Label: "Relative time ranges", Kind: KindObject},
		{Name: "surrounding_timerange_options", Label: "Surrounding time ranges", Kind: KindObject},
		{Name: "surrounding_filter_fields", Label: "Surrounding filter fields", Kind: KindList},
		{Name: "analysis_disabled_fields", Label: "Analysis disabled fields", Kind: KindList},
	}, props)
}

// MessageProcessors shows the processor order and the disabled set.
func MessageProcessors(props plugin.Props) plugin.Panel {
	return New("Message Processors Configuration", []Field{
		{Name: "processor_order", Label: "Processor order", Kind: KindList},
		{Name: "disabled_processors", Label: "Disabled processors", Kind: KindList},
	}, props)
}

// Sidecar shows the sidecar thresholds and intervals.
func Sidecar(props plugin.Props) plugin.Panel {
	return New("Sidecars System", []Field{
		{Name: "sidecar_expiration_threshold", Label: "Inactive sidecar expiration"},
		{Name: "sidecar_inactive_threshold", Label: "Inactive threshold"},
		{Name: "sidecar_update_interval", Label: "Update interval"},
		{Name: "sidecar_send_status", Label: "Send status", Kind: KindBool},
		{Name: "sidecar_configuration_override", Label: "Override configuration", Kind: KindBool},
	}, props)
}

// Events shows the event processing limits.
func Events(props plugin.Props) plugin.Panel {
	return New("Events System", []Field{
		{Name: "events_search_timeout", Label: "Search timeout (ms)", Kind: KindNumber},
		{Name: "events_notification_retry_period", Label: "Notification retry (ms)", Kind: KindNumber},
		{Name: "events_notification_default_backlog", Label: "Default backlog", Kind: KindNumber},
		{Name: "events_catchup_window", Label: "Catch-up window (ms)", Kind: KindNumber},
	}, props)
}

// URLWhitelist shows the URL whitelist entries.
func URLWhitelist(props plugin.Props) plugin.Panel {
	return New("URL Whitelist Configuration", []Field{
		{Name: "disabled", Label: "Disabled", Kind: KindBool},
		{Name: "entries", Label: "Entries", Kind: KindList},
	}, props)
}

// Customization shows the header badge settings.
func Customization(props plugin.Props) plugin.Panel {
	return New("Customization", []Field{
		{Name: "badge_text", Label: "Badge text"},
		{Name: "badge_color", Label: "Badge color"},
		{Name: "badge_enable", Label: "Show badge", Kind: KindBool},
	}, props)
}

// Decorators describes where message decorators are managed. It has no
// resource of its own.
func Decorators() plugin.Panel {
	return ReadOnly("Decorators Configuration",
		"Decorators change how message fields are displayed. They are configured per stream from the search page.")
}

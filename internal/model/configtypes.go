package model

// Configuration type keys. These identify server-side configuration
// resources and are used verbatim as keys in Configurations.
const (
	SearchesClusterConfig   = "org.graylog2.indexer.searches.SearchesClusterConfig"
	MessageProcessorsConfig = "org.graylog2.messageprocessors.MessageProcessorsConfig"
	SidecarConfig           = "org.graylog.plugins.sidecar.system.SidecarConfiguration"
	EventsConfig            = "org.graylog.events.configuration.EventsConfiguration"
	URLWhiteListConfig      = "org.graylog2.system.urlwhitelist.UrlWhitelist"
	CustomizationConfig     = "org.graylog2.configuration.Customization"
)

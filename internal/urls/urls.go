package urls

// Documentation URLs for guides and troubleshooting
// All URLs point to the documentation site at https://muurk.github.io/logconsole/

// GettingStarted is the quick start guide covering profiles and first login.
const GettingStarted = "https://muurk.github.io/logconsole/getting-started/"

// Authentication explains how passwords and API tokens are supplied,
// since the config file never stores them.
const Authentication = "https://muurk.github.io/logconsole/getting-started/authentication/"

// ServerDiscovery covers mDNS announcement setup for the scan command.
const ServerDiscovery = "https://muurk.github.io/logconsole/guides/discovery/"

// SystemConfigurations documents every cluster configuration panel
// and the permissions each one needs.
const SystemConfigurations = "https://muurk.github.io/logconsole/guides/system-configurations/"

// TroubleshootingGuide provides solutions to common connection issues.
const TroubleshootingGuide = "https://muurk.github.io/logconsole/troubleshooting/"

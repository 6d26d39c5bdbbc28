package filter

// Plugin descriptor constants reported to the host pipeline.
const (
	PluginName       = "scriptfilter"
	PluginVersion    = "1.0.0"
	PluginType       = "filter"
	InterfaceVersion = "1.0.0"
)

// DefaultConfig is the default configuration category for the plugin,
// in the host's item format. Execution is disabled until the host enables
// it and supplies a code item.
const DefaultConfig = `{
	"plugin": {
		"description": "Script filter plugin",
		"type": "string",
		"default": "scriptfilter",
		"readonly": "true"
	},
	"enable": {
		"description": "A switch that can be used to enable or disable execution of the script filter.",
		"type": "boolean",
		"displayName": "Enabled",
		"default": "false"
	},
	"code": {
		"description": "JavaScript code to execute",
		"type": "code",
		"displayName": "Script code",
		"default": "",
		"order": "1"
	}
}`

// Information describes the plugin to the host pipeline.
type Information struct {
	Name          string
	Version       string
	Type          string
	Interface     string
	DefaultConfig string
}

// Info returns the plugin information descriptor.
func Info() Information {
	return Information{
		Name:          PluginName,
		Version:       PluginVersion,
		Type:          PluginType,
		Interface:     InterfaceVersion,
		DefaultConfig: DefaultConfig,
	}
}

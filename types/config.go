package types

// AppConfig represents the application configuration loaded from config file
type AppConfig struct {
	// Server is the base URL of the image server, e.g. http://localhost:3000
	Server string `yaml:"server"`
	Mode   Mode   `yaml:"mode"`
	// FieldName is derived from Mode when empty.
	FieldName string `yaml:"fieldName,omitempty"`
	// Timeout is a Go duration. Empty means the request may wait forever.
	Timeout     string `yaml:"timeout,omitempty"`
	SizeLimitMB int    `yaml:"sizeLimitMB"`
	// NotifySocket is a Unix socket that also receives every alert.
	NotifySocket string `yaml:"notifySocket,omitempty"`
	// Acknowledge makes `imgup upload` wait for Enter after every alert.
	// Prompt mode reads selections from stdin and ignores it.
	Acknowledge bool   `yaml:"acknowledge"`
	Listen      string `yaml:"listen"`
}

// Config holds runtime overrides from CLI flags
type Config struct {
	Log          string
	ConfigPath   string
	Server       string
	Mode         string
	Timeout      string
	NotifySocket string
	JSON         bool // print the upload result as JSON
	Listen       string
}

package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// Registered error codes.
const (
	ConfigNotFound     = "E101"
	ConfigInvalidJSON  = "E102"
	ConfigInvalidValue = "E103"
	ConfigWriteFailed  = "E104"

	CatalogNotFound       = "E201"
	CatalogParse          = "E202"
	CatalogInvalidEntry   = "E203"
	CatalogInvalidDelay   = "E204"
	CatalogUnknownFormat  = "E205"
	CatalogFetchFailed    = "E206"
	CatalogWatchFailed    = "E207"
	CatalogInvalidOptions = "E208"

	ProtocolInvalidFrame   = "E301"
	ProtocolInvalidPayload = "E302"
	ProtocolUnexpected     = "E303"

	ServerListen      = "E401"
	ServerUpgrade     = "E402"
	ServerQueueFull   = "E403"
	ServerSessionGone = "E404"
)

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (E101-E199)
	// ============================================

	ConfigNotFound: {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No quicktip.json was found at the given path. Run 'quicktip config init' to create one.",
	},
	ConfigInvalidJSON: {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file is not valid JSON.",
	},
	ConfigInvalidValue: {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range or malformed.",
	},
	ConfigWriteFailed: {
		Category: CategoryConfig,
		Message:  "Could not write configuration file",
	},

	// ============================================
	// Catalog Errors (E201-E299)
	// ============================================

	CatalogNotFound: {
		Category: CategoryCatalog,
		Message:  "Tip catalog not found",
	},
	CatalogParse: {
		Category: CategoryCatalog,
		Message:  "Tip catalog could not be parsed",
		Detail:   "Catalogs are YAML, JSON or TOML documents with a top-level 'tips' list.",
	},
	CatalogInvalidEntry: {
		Category: CategoryCatalog,
		Message:  "Invalid tip entry",
		Detail:   "Every tip needs at least one target and non-empty text.",
	},
	CatalogInvalidDelay: {
		Category: CategoryCatalog,
		Message:  "Invalid delay",
		Detail:   "Delays are Go durations such as '250ms' or '2s' and must not be negative.",
	},
	CatalogUnknownFormat: {
		Category: CategoryCatalog,
		Message:  "Unknown catalog format",
		Detail:   "Catalog files must end in .yaml, .yml, .json or .toml.",
	},
	CatalogFetchFailed: {
		Category: CategoryCatalog,
		Message:  "Tip catalog could not be fetched",
	},
	CatalogWatchFailed: {
		Category: CategoryCatalog,
		Message:  "Tip catalog could not be watched",
	},
	CatalogInvalidOptions: {
		Category: CategoryCatalog,
		Message:  "Invalid tip presentation",
		Detail:   "Alignment must look like 'tl-bl' (optionally ending in '?') and anchor must be top, bottom, left or right.",
	},

	// ============================================
	// Protocol Errors (E301-E399)
	// ============================================

	ProtocolInvalidFrame: {
		Category: CategoryProtocol,
		Message:  "Invalid frame",
		Detail:   "The client sent a frame with a malformed header or an unknown type.",
	},
	ProtocolInvalidPayload: {
		Category: CategoryProtocol,
		Message:  "Invalid frame payload",
	},
	ProtocolUnexpected: {
		Category: CategoryProtocol,
		Message:  "Unexpected frame type",
		Detail:   "Clients may only send pointer, layout and control frames.",
	},

	// ============================================
	// Server Errors (E401-E499)
	// ============================================

	ServerListen: {
		Category: CategoryServer,
		Message:  "Could not start server",
	},
	ServerUpgrade: {
		Category: CategoryServer,
		Message:  "WebSocket upgrade failed",
	},
	ServerQueueFull: {
		Category: CategoryServer,
		Message:  "Session event queue full",
		Detail:   "The session could not keep up with the client's pointer events; the event was dropped.",
	},
	ServerSessionGone: {
		Category: CategoryServer,
		Message:  "Session closed",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

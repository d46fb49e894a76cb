package httpapi

// defaultPageSize is used when /v1/catalog requests omit page_size.
var defaultPageSize = 50

// maxPageSize bounds page_size to keep responses small.
var maxPageSize = 500

// SetDefaultPageSize configures the fallback page size (resets to 50 when
// n is not positive).
func SetDefaultPageSize(n int) {
	if n <= 0 {
		defaultPageSize = 50
		return
	}
	defaultPageSize = n
}

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}

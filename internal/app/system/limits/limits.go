// internal/app/system/limits/limits.go
package limits

// Request body size limits for various features.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxJSONBody is the maximum size for ordinary JSON request bodies.
	MaxJSONBody = 64 << 10 // 64 KB

	// MaxDocumentBody is the maximum size for verification submissions,
	// which carry a base64-encoded supporting document.
	MaxDocumentBody = 8 << 20 // 8 MB
)

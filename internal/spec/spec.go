package spec

// Substitution cipher constants
const (
	DOMAIN_SIZE   = 256 // Byte substitution domain [0,255]
	CHANNELS_GRAY = 1   // Single luminance channel
	CHANNELS_RGB  = 3   // RGB channels
	CHANNELS_RGBA = 4   // RGB plus alpha

	FINGERPRINT_BYTES = 4 // Hex-printed prefix of the key digest
)

// Default artifact names inside the output directory
const (
	KEY_FILE       = "key.txt"
	TABLE_FILE     = "encrypted_image.csv"
	PREVIEW_FILE   = "encrypted_image.png"
	DECRYPTED_FILE = "decrypted_image.png"
)

// Codec tuning
const (
	DEFAULT_WORKERS   = 4
	MIN_PARALLEL_ROWS = 64 // Below this the buffer is transformed on one goroutine
)

// Artifact trust limits. Headers and key files arrive from disk and may be
// hand-edited, so declared sizes are bounded before any allocation.
const (
	MAX_BUFFER_BYTES = 1 << 30   // Largest decoded pixel buffer accepted
	MAX_KEY_BYTES    = 16 * 1024 // Largest key artifact accepted
)

// Gzip magic bytes, used to sniff compressed table artifacts
const (
	GZIP_MAGIC_0 = 0x1f
	GZIP_MAGIC_1 = 0x8b
)

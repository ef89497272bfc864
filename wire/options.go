package wire

import "github.com/andybalholm/brotli"

// Option configures Encode.
type Option func(*options)

type options struct {
	compress bool
	level    int
	checksum bool
}

func defaultOptions() options {
	return options{checksum: true, level: brotli.DefaultCompression}
}

// WithCompression brotli-compresses the arenas at the given level, from
// brotli.BestSpeed to brotli.BestCompression. Out of range levels are
// clamped.
func WithCompression(level int) Option {
	return func(o *options) {
		o.compress = true
		o.level = min(max(level, brotli.BestSpeed), brotli.BestCompression)
	}
}

// WithoutChecksum omits the CRC32 trailer.
func WithoutChecksum() Option {
	return func(o *options) {
		o.checksum = false
	}
}

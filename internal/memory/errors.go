package memory

// Error patterns for use with the curated package.
const (
	// word or long access to an odd address. never silently corrected.
	BadAlignment = "memory: bad alignment: %#06x (%d byte access)"

	// the page fault handler did not produce a page. this is a bug in the
	// address classification, not something a guest program can cause.
	PageNotMapped = "memory: page not mapped: %#03x"

	// write to a page with the WriteProtect flag set. nothing is written.
	WriteProtected = "memory: write protected: %#06x"
)

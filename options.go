package asemation

// TagBoundsPolicy decides what happens to tags whose range does not fit the
// frame count or runs backwards.
type TagBoundsPolicy int

const (
	// TagsVerbatim keeps From and To as stored and records a warning.
	TagsVerbatim TagBoundsPolicy = iota
	// TagsClamp clamps To into [0, FrameCount-1] and From into [0, To], and
	// records a warning.
	TagsClamp
)

// Options controls how strictly a file is decoded. The zero value decodes
// like Aseprite readers usually do: magic mismatches are warnings, anything
// that would produce wrong pixels is an error.
type Options struct {
	// StrictMagic turns header and frame magic mismatches into ErrBadMagic.
	StrictMagic bool
	// BestEffort skips cels with an unsupported color depth or cel type,
	// leaving them transparent, instead of failing with ErrUnsupportedFormat.
	BestEffort bool
	// SkipCorruptCels leaves cels that fail to decompress transparent
	// instead of failing with ErrCorruptCelData.
	SkipCorruptCels bool
	TagBounds       TagBoundsPolicy
	// Concurrency is the number of goroutines decompressing cels. Values
	// below 2 decode sequentially.
	Concurrency int
}

package domain

import "time"

// ProfileFormat identifies the encoding of a profile file.
type ProfileFormat string

// Supported profile formats.
const (
	// ProfileFormatCollapsed is the folded stack format: "a;b;c 42".
	ProfileFormatCollapsed ProfileFormat = "collapsed"

	// ProfileFormatPProf is the protobuf format produced by pprof.
	ProfileFormatPProf ProfileFormat = "pprof"
)

// IsValid returns true if the format is recognised.
func (f ProfileFormat) IsValid() bool {
	switch f {
	case ProfileFormatCollapsed, ProfileFormatPProf:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f ProfileFormat) String() string {
	return string(f)
}

// Sample is one stack with its value. Stack is ordered root first.
type Sample struct {
	Stack []string
	Value int64
}

// StackProfile is a decoded profile before it is laid out as a flamegraph.
type StackProfile struct {
	// Name is a human-readable label, usually the file name.
	Name string

	// Format is the encoding the profile was decoded from.
	Format ProfileFormat

	// Fingerprint is a content hash of the raw profile bytes.
	Fingerprint string

	// Samples holds the decoded stacks.
	Samples []Sample
}

// TotalValue returns the sum of all sample values.
func (p *StackProfile) TotalValue() int64 {
	var total int64
	for _, s := range p.Samples {
		total += s.Value
	}
	return total
}

// ProfileRecord is a profile stored in the profile library.
type ProfileRecord struct {
	// ID is the unique identifier.
	ID string

	// Name is a human-readable label.
	Name string

	// Path is the file the profile was imported from.
	Path string

	// Format is the encoding of the stored bytes.
	Format ProfileFormat

	// Fingerprint is a content hash used to skip duplicate imports.
	Fingerprint string

	// Samples is the number of stacks in the profile.
	Samples int

	// CreatedAt is when the profile was imported.
	CreatedAt time.Time
}

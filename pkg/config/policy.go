package config

import "fmt"

// BinaryPolicy controls how regular files classified as binary are handled
// during the content pass.
type BinaryPolicy uint8

const (
	// BinaryPolicySkip omits binary file content entirely (the default).
	BinaryPolicySkip BinaryPolicy = iota
	// BinaryPolicyInclude streams binary file content through the plugin
	// chain just like a text file, regardless of classification.
	BinaryPolicyInclude
	// BinaryPolicyPlaceholder emits a one-line placeholder comment instead
	// of opening the file.
	BinaryPolicyPlaceholder
)

// String implements fmt.Stringer.
func (p BinaryPolicy) String() string {
	switch p {
	case BinaryPolicySkip:
		return "skip"
	case BinaryPolicyInclude:
		return "include"
	case BinaryPolicyPlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// UnmarshalText implements encoding.TextUnmarshaler, allowing BinaryPolicy to
// be parsed from its text name ("skip", "include", or "placeholder").
func (p *BinaryPolicy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "skip":
		*p = BinaryPolicySkip
	case "include":
		*p = BinaryPolicyInclude
	case "placeholder":
		*p = BinaryPolicyPlaceholder
	default:
		return fmt.Errorf("unknown binary policy: %s", text)
	}
	return nil
}

// Set implements pflag.Value, so BinaryPolicy can be bound directly to a
// Cobra flag.
func (p *BinaryPolicy) Set(text string) error {
	return p.UnmarshalText([]byte(text))
}

// Type implements pflag.Value.
func (p *BinaryPolicy) Type() string {
	return "binary-policy"
}

// SymlinkPolicy controls how symbolic links are handled during both passes.
type SymlinkPolicy uint8

const (
	// SymlinkPolicySkip renders each symbolic link as a "SYMLINK SKIPPED"
	// marker line in the structure pass and omits it from the content pass
	// (the default).
	SymlinkPolicySkip SymlinkPolicy = iota
	// SymlinkPolicyFollow recurses into symbolic links to directories
	// (subject to cycle detection) and reads through symbolic links to
	// files.
	SymlinkPolicyFollow
	// SymlinkPolicyInclude reads through symbolic links to files but does
	// not recurse into symbolic links to directories.
	SymlinkPolicyInclude
	// SymlinkPolicyPlaceholder emits a placeholder line or marker instead of
	// following the link. The link is resolved only to choose between the
	// broken-link, directory, and file forms.
	SymlinkPolicyPlaceholder
)

// String implements fmt.Stringer.
func (p SymlinkPolicy) String() string {
	switch p {
	case SymlinkPolicySkip:
		return "skip"
	case SymlinkPolicyFollow:
		return "follow"
	case SymlinkPolicyInclude:
		return "include"
	case SymlinkPolicyPlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *SymlinkPolicy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "skip":
		*p = SymlinkPolicySkip
	case "follow":
		*p = SymlinkPolicyFollow
	case "include":
		*p = SymlinkPolicyInclude
	case "placeholder":
		*p = SymlinkPolicyPlaceholder
	default:
		return fmt.Errorf("unknown symlink policy: %s", text)
	}
	return nil
}

// Set implements pflag.Value.
func (p *SymlinkPolicy) Set(text string) error {
	return p.UnmarshalText([]byte(text))
}

// Type implements pflag.Value.
func (p *SymlinkPolicy) Type() string {
	return "symlink-policy"
}

package types

import "fmt"

// ReadMode indicates how sequencing reads are laid out on disk
type ReadMode string

const (
	// ReadModeSingle means one file per sample
	ReadModeSingle ReadMode = "s"

	// ReadModePaired means forward and reverse reads in separate files
	ReadModePaired ReadMode = "p"
)

// ParseReadMode accepts "s"/"single" and "p"/"paired".
func ParseReadMode(s string) (ReadMode, error) {
	switch s {
	case "s", "single":
		return ReadModeSingle, nil
	case "p", "paired":
		return ReadModePaired, nil
	}
	return "", fmt.Errorf("invalid read mode %q: use \"s\" (single-end) or \"p\" (paired-end in separate files)", s)
}

// UnmarshalText lets config decoding validate modes. An empty value stays
// unset.
func (m *ReadMode) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*m = ""
		return nil
	}
	parsed, err := ParseReadMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

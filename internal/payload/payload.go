// Package payload resolves what the user asked to hide: the CLI argument
// is either a path to a readable file or a literal string.
package payload

import (
	"os"
	"path/filepath"
)

// Payload is the data to embed plus the filename stored alongside it.
type Payload struct {
	// Name is the filename written into the header: the file's base name,
	// or the configured default for literal payloads.
	Name string
	// Bytes is the raw payload.
	Bytes []byte
	// FromFile reports whether the argument resolved to a file on disk.
	FromFile bool
}

// Resolve interprets arg. If it names a readable file, the file's contents
// and base name are used; anything else is treated as a literal string
// stored under defaultName.
func Resolve(arg, defaultName string) *Payload {
	data, err := os.ReadFile(arg)
	if err != nil {
		// Not a readable file: hide the argument itself.
		return &Payload{Name: defaultName, Bytes: []byte(arg)}
	}
	return &Payload{
		Name:     filepath.Base(arg),
		Bytes:    data,
		FromFile: true,
	}
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// ensurePNGExt appends .png when the output name lacks it. Encoded output
// must be PNG; a lossy format would destroy the embedded bits.
func ensurePNGExt(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return path
	}
	return path + ".png"
}

// decodeOutputPath resolves where a decoded payload lands. With no output
// argument the embedded filename is used (base name only, so a hostile
// header cannot write outside the working directory). With an output
// argument, the embedded name's extension is appended to it.
func decodeOutputPath(outArg, embeddedName, fallbackName string) string {
	name := filepath.Base(embeddedName)
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = fallbackName
	}

	if outArg == "" {
		return "./" + name
	}
	return outArg + filepath.Ext(name)
}

// writeToStdout streams the payload to stdout, refusing to dump raw
// binary onto an interactive terminal.
func writeToStdout(data []byte) error {
	if term.IsTerminal(int(os.Stdout.Fd())) && !utf8.Valid(data) {
		return fmt.Errorf("payload is binary; redirect stdout or pass an output path")
	}
	_, err := os.Stdout.Write(data)
	return err
}

package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// readInput returns the contents of path, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// decodeStrict parses YAML (or JSON, which parses as YAML) into v.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func decodeStrict(data []byte, v any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(v); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// loadInput reads and strictly decodes an input file into v.
func loadInput(path string, v any) error {
	data, err := readInput(path)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if err := decodeStrict(data, v); err != nil {
		return fmt.Errorf("parsing input %s: %w", path, err)
	}
	return nil
}

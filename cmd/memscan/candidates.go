package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// candidateFile is the on-disk form of a scan's candidate set: the
// "next scan" workflow spec.md's Glossary describes reads one of these,
// re-verifies every address, and writes the survivors back out under the
// same shape. JSON is used rather than any ecosystem serialization
// library because this is a small, human-inspectable local scratch file,
// not a wire format any other component in this repo parses.
type candidateFile struct {
	Type      string   `json:"type"`
	Length    int      `json:"length"`
	Addresses []uint64 `json:"addresses"`
}

func loadCandidates(path string) (candidateFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return candidateFile{}, fmt.Errorf("read candidates %s: %w", path, err)
	}
	var cf candidateFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return candidateFile{}, fmt.Errorf("parse candidates %s: %w", path, err)
	}
	return cf, nil
}

func saveCandidates(path string, cf candidateFile) error {
	data, err := json.MarshalIndent(cf, "", "  ")
	if err != nil {
		return fmt.Errorf("encode candidates: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write candidates %s: %w", path, err)
	}
	return nil
}

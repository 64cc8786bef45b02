// file: internal/dat/manifest.go
// version: 1.0.0
// guid: 6d9e2f5a-8b1c-4d7e-9f0a-3b6c9d2e5f8a

// Package dat reads No-Intro style DAT manifests: XML files describing a
// curated game collection with per-ROM sizes and checksums.
package dat

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Header carries the collection-level metadata of a DAT file.
type Header struct {
	Name        string `xml:"name" json:"name"`
	Description string `xml:"description" json:"description"`
	Version     string `xml:"version" json:"version"`
	Date        string `xml:"date" json:"date"`
}

// Rom is one file entry with its expected size and checksums. Checksum
// fields are empty when the DAT does not provide them.
type Rom struct {
	Name string `xml:"name,attr" json:"rom_name"`
	Size string `xml:"size,attr" json:"size"`
	CRC  string `xml:"crc,attr" json:"crc,omitempty"`
	MD5  string `xml:"md5,attr" json:"md5,omitempty"`
	SHA1 string `xml:"sha1,attr" json:"sha1,omitempty"`
}

// Game is one titled entry and the ROM files that make it up.
type Game struct {
	Name        string `xml:"name,attr" json:"name"`
	Description string `xml:"description" json:"description"`
	Roms        []Rom  `xml:"rom" json:"roms"`
}

// Manifest is a parsed DAT file.
type Manifest struct {
	Header Header `xml:"header" json:"header"`
	Games  []Game `xml:"game" json:"games"`
}

// Parse decodes a DAT document from r.
func Parse(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := xml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("invalid DAT XML: %w", err)
	}
	return &m, nil
}

// Load reads and parses the DAT file at path.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open DAT file: %w", err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return m, nil
}

// GameNames returns the game titles in document order, for use as a
// reconciliation base list.
func (m *Manifest) GameNames() []string {
	names := make([]string, 0, len(m.Games))
	for _, g := range m.Games {
		names = append(names, g.Name)
	}
	return names
}

// Roms returns every ROM entry across all games, in document order.
func (m *Manifest) Roms() []Rom {
	var roms []Rom
	for _, g := range m.Games {
		roms = append(roms, g.Roms...)
	}
	return roms
}

// WriteJSON writes the manifest as indented JSON, the same shape the
// organizer's tooling consumes.
func (m *Manifest) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(m)
}

// ConvertToJSON parses the DAT at datPath and writes its JSON form to
// jsonPath.
func ConvertToJSON(datPath, jsonPath string) error {
	m, err := Load(datPath)
	if err != nil {
		return err
	}

	out, err := os.Create(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", jsonPath, err)
	}
	defer out.Close()

	if err := m.WriteJSON(out); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

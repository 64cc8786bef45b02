// file: cmd/commands_test.go
// version: 2.0.0
// guid: 6f5b7d78-11d8-4c1a-a150-96d2c4a1a885

package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jdfalk/rom-organizer/internal/catalog"
	"github.com/jdfalk/rom-organizer/internal/dat"
)

const testDAT = `<?xml version="1.0"?>
<datafile>
	<header>
		<name>Test Collection</name>
		<description>Test Collection DAT</description>
		<version>1.0</version>
	</header>
	<game name="Super Mario Bros.">
		<description>Super Mario Bros.</description>
		<rom name="Super Mario Bros. (USA).nes" size="40976" crc="3337ec46"/>
	</game>
</datafile>`

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	datPath := filepath.Join(dir, "collection.dat")
	jsonPath := filepath.Join(dir, "collection.json")
	if err := os.WriteFile(datPath, []byte(testDAT), 0644); err != nil {
		t.Fatal(err)
	}

	if err := runCommand(t, "convert", "--dat", datPath, "--out", jsonPath); err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if !strings.Contains(string(data), "Super Mario Bros.") {
		t.Error("JSON output missing game name")
	}
}

func TestConvertCommand_MissingDat(t *testing.T) {
	if err := runCommand(t, "convert", "--dat", "", "--out", ""); err == nil {
		t.Fatal("expected error without a DAT file")
	}
}

func TestListCommand(t *testing.T) {
	source := t.TempDir()
	for _, name := range []string{"b.gg", "a.gg"} {
		if err := os.WriteFile(filepath.Join(source, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	out := filepath.Join(t.TempDir(), "list.txt")

	if err := runCommand(t, "list", "--source", source, "--out", out, "--format", "txt"); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "a.gg\nb.gg\n" {
		t.Errorf("unexpected list output: %q", data)
	}
}

func TestMatchCommand(t *testing.T) {
	dir := t.TempDir()
	namesPath := filepath.Join(dir, "names.txt")
	filesPath := filepath.Join(dir, "filenames.txt")
	outDir := filepath.Join(dir, "out")
	if err := os.WriteFile(namesPath, []byte("Super Mario Bros\nUnmatched Game\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filesPath, []byte("Super Mario Bros. (USA).nes\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := runCommand(t, "match",
		"--names", namesPath,
		"--filenames", filesPath,
		"--output", outDir,
		"--save=false",
		"--watch=false")
	if err != nil {
		t.Fatalf("match failed: %v", err)
	}

	matched, err := os.ReadFile(filepath.Join(outDir, "output_matched.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(matched) != "Super Mario Bros -> Super Mario Bros. (USA).nes\n" {
		t.Errorf("unexpected matched output: %q", matched)
	}

	unmatched, err := os.ReadFile(filepath.Join(outDir, "output_unmatched.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(unmatched) != "Unmatched Game\n" {
		t.Errorf("unexpected unmatched output: %q", unmatched)
	}

	if _, err := os.Stat(filepath.Join(outDir, "report.yaml")); err != nil {
		t.Errorf("expected YAML report: %v", err)
	}
}

func TestMatchCommand_SaveRun(t *testing.T) {
	dir := t.TempDir()
	namesPath := filepath.Join(dir, "names.txt")
	filesPath := filepath.Join(dir, "filenames.txt")
	dbPath := filepath.Join(dir, "runs.db")
	if err := os.WriteFile(namesPath, []byte("Super Mario Bros\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filesPath, []byte("Super Mario Bros. (USA).nes\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := runCommand(t, "match",
		"--names", namesPath,
		"--filenames", filesPath,
		"--output", filepath.Join(dir, "out"),
		"--db", dbPath,
		"--save=true",
		"--watch=false")
	if err != nil {
		t.Fatalf("match --save failed: %v", err)
	}

	store, err := catalog.NewStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	runs, err := store.ListRuns()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 stored run, got %d", len(runs))
	}
	if runs[0].MatchedCount != 1 {
		t.Errorf("matched count = %d, want 1", runs[0].MatchedCount)
	}
}

func TestMatchCommand_MissingNames(t *testing.T) {
	if err := runCommand(t, "match", "--names", "", "--filenames", "", "--dir", ""); err == nil {
		t.Fatal("expected error without a names file")
	}
}

func TestVerifyCommand_Mismatch(t *testing.T) {
	dir := t.TempDir()
	romDir := filepath.Join(dir, "roms")
	if err := os.MkdirAll(romDir, 0755); err != nil {
		t.Fatal(err)
	}
	// Content will not hash to the CRC in the DAT.
	if err := os.WriteFile(filepath.Join(romDir, "Super Mario Bros. (USA).nes"), []byte("tampered"), 0644); err != nil {
		t.Fatal(err)
	}
	datPath := filepath.Join(dir, "collection.dat")
	if err := os.WriteFile(datPath, []byte(testDAT), 0644); err != nil {
		t.Fatal(err)
	}

	err := runCommand(t, "verify", "--dir", romDir, "--dat", datPath, "--checksum", "crc")
	if err == nil {
		t.Fatal("expected verification failure")
	}
}

func TestExtractCommand_MissingFlags(t *testing.T) {
	if err := runCommand(t, "extract", "--source", "", "--destination", ""); err == nil {
		t.Fatal("expected error without source and destination")
	}
}

func TestDATParsesForCommands(t *testing.T) {
	m, err := dat.Parse(strings.NewReader(testDAT))
	if err != nil {
		t.Fatalf("test DAT must parse: %v", err)
	}
	if len(m.Games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(m.Games))
	}
}

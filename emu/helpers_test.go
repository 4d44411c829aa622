package emu

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nescore/hw"
)

var updateGolden = flag.Bool("update", false, "update golden files")

// goldenPath returns the golden file path of the frame idx of rom.
func goldenPath(rom string, idx int) string {
	fn := filepath.Base(rom)
	fn = strings.TrimSuffix(fn, filepath.Ext(fn))
	return filepath.Join("testdata", fmt.Sprintf("%s-%02d.png.golden", fn, idx))
}

// checkGolden compares the PNG encoding of frame with its golden file. With
// -update, the golden file is written instead. On mismatch, the frame is
// saved next to the golden file for inspection.
func checkGolden(t *testing.T, frame *hw.Frame, rom string, idx int) {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, frame.RGBA()); err != nil {
		t.Fatalf("error encoding frame %d: %v", idx, err)
	}

	path := goldenPath(rom, idx)
	if *updateGolden {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			t.Fatal(err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		t.Skipf("no golden file %s, run with -update to create it", path)
	}
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), want) {
		got := strings.TrimSuffix(path, ".golden")
		if err := os.WriteFile(got, buf.Bytes(), 0644); err != nil {
			t.Logf("failed to save %s: %v", got, err)
		}
		t.Fatalf("frame %d differs. check %s", idx, got)
	}
}

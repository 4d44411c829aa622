package tests

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"
)

// testsDir returns the directory of this package, where downloaded test files
// are cached.
func testsDir() string {
	_, b, _, _ := runtime.Caller(0)
	return filepath.Dir(b)
}

func decompress(zipFile, dest string) (int, error) {
	r, err := zip.OpenReader(zipFile)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	for _, f := range r.File {
		fname := strings.Replace(f.Name, "nes-test-roms-master", "nes-test-roms", 1)
		fpath := filepath.Join(dest, fname)
		if !strings.HasPrefix(fpath, filepath.Clean(dest)+string(os.PathSeparator)) {
			return 0, fmt.Errorf("%s: illegal file path", fpath)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(fpath, os.ModePerm); err != nil {
				return 0, err
			}
			continue
		}
		if err := extract(f, fpath); err != nil {
			return 0, err
		}
	}

	return len(r.File), nil
}

func extract(f *zip.File, fpath string) error {
	if err := os.MkdirAll(filepath.Dir(fpath), os.ModePerm); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func download(url string, w io.Writer) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	_, err = io.Copy(w, resp.Body)
	return err
}

func downloadTestRoms(tb testing.TB, dest string) {
	const url = `https://github.com/christopherpow/nes-test-roms/archive/refs/heads/master.zip`

	tmpf, err := os.CreateTemp("", "nes-test-roms-*-.zip")
	if err != nil {
		tb.Fatal(err)
	}
	defer os.Remove(tmpf.Name())
	defer tmpf.Close()

	if err := download(url, tmpf); err != nil {
		tb.Fatal(err)
	}

	n, err := decompress(tmpf.Name(), dest)
	if err != nil {
		tb.Fatalf("failed to decompress test roms: %s", err)
	}
	tb.Log("decompressed", n, "files")
}

var romsPathOnce sync.Once

// RomsPath returns the path to the nes-test-roms directory, downloading it the
// first time.
func RomsPath(tb testing.TB) string {
	romsDir := filepath.Join(testsDir(), "nes-test-roms")
	romsPathOnce.Do(func() {
		if _, err := os.Stat(romsDir); errors.Is(err, fs.ErrNotExist) {
			tb.Log("nes-test-roms directory not found, downloading it...")
			downloadTestRoms(tb, testsDir())
			tb.Log("Test roms downloaded in", romsDir)
		}
	})
	return romsDir
}

// download all 256 (one per opcode) Tom Harte 6502 test files into dest dir.
func downloadTomHarteProcTests(tb testing.TB, dest string) {
	const urlfmt = `https://raw.githubusercontent.com/SingleStepTests/65x02/main/nes6502/v1/%s.json`

	tempdir, err := os.MkdirTemp("", "tom.harte.processor.tests.*")
	if err != nil {
		tb.Fatal(err)
	}

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for opcode := range 256 {
		opstr := fmt.Sprintf("%02x", opcode)
		url := fmt.Sprintf(urlfmt, opstr)

		g.Go(func() error {
			f, err := os.Create(filepath.Join(tempdir, opstr+".json"))
			if err != nil {
				return err
			}
			defer f.Close()

			return download(url, f)
		})
	}

	if err := g.Wait(); err != nil {
		tb.Fatalf("failed to download all files: %s", err)
	}

	if err := os.Rename(tempdir, dest); err != nil {
		tb.Fatal(err)
	}
}

var tomHarteOnce sync.Once

// TomHarteProcTestsPath returns the directory containing the single step
// processor tests, one JSON file per opcode, downloading them the first time.
func TomHarteProcTestsPath(tb testing.TB) string {
	dir := filepath.Join(testsDir(), "tomharte.processor.tests")
	tomHarteOnce.Do(func() {
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			tb.Log("tomharte.processor.tests directory not found, downloading it...")
			downloadTomHarteProcTests(tb, dir)
			tb.Log("Tom Harte Processor Tests downloaded in", dir)
		}
	})
	return dir
}

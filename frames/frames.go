// Package frames writes rendered animation frames as numbered PNG images,
// either into a directory or into a ZIP archive.
package frames

import (
	"archive/zip"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// Processor accepts the n-th rendered frame. Frames are numbered from 1.
type Processor interface {
	ProcessFrame(n int, img image.Image) error
}

// Dir writes each frame to <n>.png in a directory.
type Dir struct {
	path string
}

// Dir implements the Processor interface.
var _ Processor = &Dir{}

// NewDir removes anything already at path and creates it as an empty
// directory, so every run starts from frame 1.
func NewDir(path string) (*Dir, error) {
	if err := os.RemoveAll(path); err != nil {
		return nil, errors.Wrapf(err, "unable to clear %v", path)
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, errors.Wrapf(err, "unable to create %v", path)
	}
	return &Dir{path: path}, nil
}

// Filename returns the path frame n is written to.
func (d *Dir) Filename(n int) string {
	return filepath.Join(d.path, fmt.Sprintf("%v.png", n))
}

func (d *Dir) ProcessFrame(n int, img image.Image) error {
	filename := d.Filename(n)
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "Create")
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrapf(err, "PNG encode %v", filename)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "unable to close %v", filename)
	}
	log.Printf("Writing: %v", filename)
	return nil
}

// Zip writes each frame into a ZIP archive as frames/<n>.png.
type Zip struct {
	w  *zip.Writer
	zf io.Closer
}

// Zip implements the Processor interface.
var _ Processor = &Zip{}

// NewZip creates (or truncates) the ZIP file at zipName.
func NewZip(zipName string) (*Zip, error) {
	zf, err := os.Create(zipName)
	if err != nil {
		return nil, errors.Wrap(err, "Create")
	}
	z := newZip(zf)
	z.zf = zf
	return z, nil
}

func newZip(w io.Writer) *Zip {
	return &Zip{w: zip.NewWriter(w)}
}

func (z *Zip) ProcessFrame(n int, img image.Image) error {
	fh := &zip.FileHeader{
		Name:     fmt.Sprintf("frames/%v.png", n),
		Comment:  fmt.Sprintf("step=%v", n),
		Method:   zip.Store,
		Modified: time.Now(),
	}
	f, err := z.w.CreateHeader(fh)
	if err != nil {
		return errors.Wrapf(err, "unable to create ZIP entry %q", fh.Name)
	}
	if err := png.Encode(f, img); err != nil {
		return errors.Wrap(err, "PNG encode")
	}
	return nil
}

// Close finalizes the archive.
func (z *Zip) Close() error {
	if err := z.w.Close(); err != nil {
		return errors.Wrap(err, "unable to close ZIP writer")
	}
	if z.zf != nil {
		if err := z.zf.Close(); err != nil {
			return errors.Wrap(err, "unable to close ZIP file")
		}
	}
	return nil
}

// Multi hands every frame to each of its processors in turn.
type Multi []Processor

func (m Multi) ProcessFrame(n int, img image.Image) error {
	for _, p := range m {
		if err := p.ProcessFrame(n, img); err != nil {
			return err
		}
	}
	return nil
}

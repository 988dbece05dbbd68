// Package output encodes rendered images to disk. The format is chosen from
// the file extension.
package output

import (
	"bufio"
	"fmt"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// Format identifies an image encoding
type Format int

const (
	FormatPNG Format = iota
	FormatPPM
	FormatPPMGzip
	FormatPPMZstd
	FormatPPMSnappy
)

var extensions = []struct {
	suffix string
	format Format
}{
	// Longest suffixes first so .ppm.gz is not taken for .ppm
	{".ppm.gz", FormatPPMGzip},
	{".ppm.zst", FormatPPMZstd},
	{".ppm.sz", FormatPPMSnappy},
	{".ppm", FormatPPM},
	{".png", FormatPNG},
}

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatPPM:
		return "ppm"
	case FormatPPMGzip:
		return "ppm+gzip"
	case FormatPPMZstd:
		return "ppm+zstd"
	case FormatPPMSnappy:
		return "ppm+snappy"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFromPath picks the encoder for a file name
func FormatFromPath(path string) (Format, error) {
	lower := strings.ToLower(path)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, ext.suffix) {
			return ext.format, nil
		}
	}
	return 0, fmt.Errorf("unsupported output extension for %q (want .png, .ppm, .ppm.gz, .ppm.zst or .ppm.sz)", path)
}

// Write encodes img to path, creating or truncating the file
func Write(path string, img *renderer.Image) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := Encode(file, img, format); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Encode writes img to w in the given format. Compressed streams are closed
// before returning; w itself is not.
func Encode(w io.Writer, img *renderer.Image, format Format) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img.ToRGBA())
	case FormatPPM:
		return WritePPM(w, img)
	case FormatPPMGzip:
		return compressed(gzip.NewWriter(w), img)
	case FormatPPMZstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return err
		}
		return compressed(enc, img)
	case FormatPPMSnappy:
		return compressed(snappy.NewBufferedWriter(w), img)
	default:
		return fmt.Errorf("unknown format %v", format)
	}
}

func compressed(stream io.WriteCloser, img *renderer.Image) error {
	if err := WritePPM(stream, img); err != nil {
		stream.Close()
		return err
	}
	return stream.Close()
}

// WritePPM writes a plain-text P3 image with one pixel per line
func WritePPM(w io.Writer, img *renderer.Image) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width, img.Height)
	for _, row := range img.Rows {
		for x := 0; x < img.Width; x++ {
			fmt.Fprintf(bw, "%d %d %d\n", row[x*3], row[x*3+1], row[x*3+2])
		}
	}
	return bw.Flush()
}

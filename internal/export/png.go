package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
)

func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// piximg - BMP ⇄ raw pixel grid ⇄ bitfield converter.
//
// Usage:
//
//	piximg convert -i <file> -o <name> --to bmp|pi|bf|png
//	piximg gen -o <name> [--color <hex>] [-w 320] [-h 240] [--to bmp]
//	piximg info -i <file.bmp>
//	piximg preview -i <file> -o <file.png> [--width 512]
//	piximg serve [--port 8080]
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Phildo/piximg/clients/server"
	"github.com/Phildo/piximg/pkg/bitmap"
	"github.com/Phildo/piximg/pkg/generator"
	"github.com/Phildo/piximg/pkg/pix"
	"github.com/Phildo/piximg/pkg/preview"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "convert":
		err = runConvert(os.Args[2:])
	case "gen", "generate":
		err = runGen(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	case "preview":
		err = runPreview(os.Args[2:])
	case "serve":
		err = server.RunServe(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fatal(err)
	}
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)

	var input, output, to string
	fs.StringVar(&input, "i", "", "Input file")
	fs.StringVar(&input, "input", "", "Input file")
	fs.StringVar(&output, "o", "", "Output name (extension is added)")
	fs.StringVar(&output, "output", "", "Output name (extension is added)")
	fs.StringVar(&to, "to", "bmp", "Output format: bmp, pi, bf, png")

	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return err
	}
	if input == "" {
		return fmt.Errorf("input file is required (-i)")
	}
	format, err := generator.ParseFormat(to)
	if err != nil {
		return err
	}
	if output == "" {
		output = baseName(input)
	}

	img, err := generator.Load(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}
	path, err := generator.Save(trimExt(output), format, img)
	if err != nil {
		return err
	}
	fmt.Printf("Done: %s (%dx%d)\n", path, img.Width, img.Height)
	return nil
}

func runGen(args []string) error {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)

	var (
		output string
		to     string
		cfg    generator.Config
	)
	fs.StringVar(&output, "o", "", "Output name (extension is added)")
	fs.StringVar(&output, "output", "", "Output name (extension is added)")
	fs.StringVar(&to, "to", "bmp", "Output format: bmp, pi, bf, png")
	fs.IntVar(&cfg.Width, "w", 320, "Width in pixels")
	fs.IntVar(&cfg.Width, "width", 320, "Width in pixels")
	fs.IntVar(&cfg.Height, "h", 240, "Height in pixels")
	fs.IntVar(&cfg.Height, "height", 240, "Height in pixels")
	fs.StringVar(&cfg.Color, "color", "random", "Fill color: hex or 'random'")

	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return err
	}
	if output == "" {
		return fmt.Errorf("output name is required (-o)")
	}
	format, err := generator.ParseFormat(to)
	if err != nil {
		return err
	}

	fmt.Printf("Generating: %s\n", output)
	img, err := generator.Solid(cfg)
	if err != nil {
		return err
	}
	path, err := generator.Save(trimExt(output), format, img)
	if err != nil {
		return err
	}
	fmt.Printf("Done: %s\n", path)
	return nil
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	var input string
	fs.StringVar(&input, "i", "", "Input bitmap")
	fs.StringVar(&input, "input", "", "Input bitmap")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if input == "" && fs.NArg() > 0 {
		input = fs.Arg(0)
	}
	if input == "" {
		return fmt.Errorf("input file is required (-i)")
	}

	b, err := bitmap.ReadFile(input)
	if err != nil {
		return err
	}
	fh, dh, l := b.FileHeader, b.DIB, b.Layout

	fmt.Printf("File:         %s\n", input)
	fmt.Printf("Signature:    %s\n", fh.Magic[:])
	fmt.Printf("File size:    %d bytes\n", fh.Size)
	fmt.Printf("Data offset:  %d\n", fh.Offset)
	fmt.Printf("Header size:  %d\n", dh.HeaderSize)
	fmt.Printf("Dimensions:   %dx%d", l.Width, l.Height)
	if l.Reversed {
		fmt.Print(" (top-down)")
	}
	fmt.Println()
	fmt.Printf("Bit depth:    %d\n", l.BPP)
	fmt.Printf("Compression:  %d\n", l.Compression)
	fmt.Printf("Row stride:   %d bytes\n", l.Stride)
	fmt.Printf("Image size:   %d bytes\n", dh.ImageSize)
	fmt.Printf("Resolution:   %dx%d px/m\n", dh.HorizResolution, dh.VertResolution)
	if l.Compression == bitmap.CompressionBitFields {
		fmt.Printf("Masks:        R=%#08x G=%#08x B=%#08x A=%#08x\n",
			l.RedMask, l.GreenMask, l.BlueMask, l.AlphaMask)
	}
	return nil
}

func runPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)

	var (
		input, output, caption string
		opts                   preview.Options
	)
	fs.StringVar(&input, "i", "", "Input file (any supported format)")
	fs.StringVar(&input, "input", "", "Input file (any supported format)")
	fs.StringVar(&output, "o", "", "Output PNG path")
	fs.StringVar(&output, "output", "", "Output PNG path")
	fs.IntVar(&opts.Width, "width", 0, "Preview width in pixels (default: source width, at least 256)")
	fs.BoolVar(&opts.Smooth, "smooth", false, "Smooth scaling instead of nearest-neighbour")
	fs.StringVar(&opts.FontPath, "font", "", "Caption font (TTF/OTF)")
	fs.StringVar(&caption, "caption", "", "Caption text (default: file name and size)")

	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return err
	}
	if input == "" {
		return fmt.Errorf("input file is required (-i)")
	}
	if output == "" {
		output = baseName(input) + ".preview.png"
	}

	img, err := generator.Load(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}
	if caption == "" {
		caption = preview.Caption(filepath.Base(input), img)
	}
	out, err := preview.Render(img, caption, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	rendered, err := pix.FromImage(out)
	if err != nil {
		return err
	}
	path, err := generator.WritePNG(trimExt(output), rendered)
	if err != nil {
		return err
	}
	fmt.Printf("Done: %s\n", path)
	return nil
}

// baseName strips the directory and everything from the first '.', so
// "img/cat.3x4pi" becomes "cat".
func baseName(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}

// trimExt drops a trailing extension the user may have typed, since Save
// appends its own.
func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Print(`piximg - BMP, raw pixel grid and bitfield converter (Pure Go)

USAGE:
    piximg convert -i <file> [-o <name>] [--to bmp|pi|bf|png]
    piximg gen -o <name> [options]
    piximg info -i <file.bmp>
    piximg preview -i <file> [-o <file.png>] [options]
    piximg serve [--port 8080]

CONVERT:
    -i, --input <path>     BMP, .WxHpi, .WxHbf, PNG, JPEG, GIF, TIFF or WebP
    -o, --output <name>    Output name; the extension is added (default: input name)
    --to <format>          bmp (32bpp BGRA, V5 header), pi, bf or png (default: bmp)

GEN:
    -o, --output <name>    Output name; the extension is added
    --color <hex>          #rrggbb, #rrggbbaa or 'random' (default: random)
    -w, --width <px>       Width in pixels (default: 320)
    -h, --height <px>      Height in pixels (default: 240)
    --to <format>          bmp, pi, bf or png (default: bmp)

PREVIEW:
    -i, --input <path>     Any supported input
    -o, --output <path>    Output PNG (default: <name>.preview.png)
    --width <px>           Preview width (default: source width, at least 256)
    --smooth               Smooth scaling
    --font <path>          Caption font (default: Go Regular)
    --caption <text>       Caption (default: file name and size)

API SERVER:
    piximg serve [--port 8080]    POST /api/decode, /api/encode, /api/info,
                                  /api/bitfield, /api/preview

EXAMPLES:
    piximg gen -o red --color "#ff0000" -w 64 -h 64
    piximg convert -i red.bmp --to pi          # writes red.64x64pi
    piximg convert -i red.64x64pi --to bf      # writes red.64x64bf
    piximg convert -i mask.64x64bf --to bmp
    piximg info -i red.bmp
    piximg preview -i red.64x64bf --width 256
`)
}

package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/Wombatlord/png-codec/png"
	"github.com/Wombatlord/png-codec/render"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F5FD7")).
			Padding(0, 1)

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func main() {
	var (
		inFile      = flag.String("in", "", "Path to a PNG file (truecolor+alpha, 8-bit, non-interlaced)")
		outFile     = flag.String("out", "", "Re-encode the decoded image to this path")
		info        = flag.Bool("info", false, "Print header and chunk table and exit")
		view        = flag.Bool("view", false, "Paint the decoded image to the terminal")
		ruler       = flag.Bool("ruler", false, "Show row/column indices when viewing")
		roundtrip   = flag.Bool("roundtrip", false, "Decode, re-encode, decode again and compare pixels")
		maxIDAT     = flag.Int("max-idat", 0, "Maximum IDAT payload size in bytes when re-encoding (0 = default)")
		level       = flag.Int("level", 0, "Deflate level when re-encoding (0 = default)")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: pngpeek -in <file.png> [-info] [-view] [-roundtrip] [-out file.png]")
		fmt.Fprintln(os.Stderr, "       pngpeek -in <file.png> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		png.SetLogger(logger)
	}

	if *interactive {
		if err := runInteractive(*inFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*inFile, *outFile, *info, *view, *ruler, *roundtrip, *maxIDAT, *level); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(inFile, outFile string, info, view, ruler, roundtrip bool, maxIDAT, level int) error {
	data, err := os.ReadFile(inFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	if info {
		return printInfo(inFile, data)
	}

	img, err := png.Decode(data)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	if view {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, dimStyle.Render("stdout is not a terminal; colors may not survive"))
		}
		r := render.New()
		r.Ruler = ruler
		return r.Render(os.Stdout, img.Pix, img.Width, img.Height)
	}

	enc := png.Encoder{MaxChunkSize: maxIDAT, Level: level}

	if roundtrip {
		reencoded, err := enc.Encode(img.Pix, img.Width, img.Height)
		if err != nil {
			return fmt.Errorf("re-encode: %w", err)
		}
		back, err := png.Decode(reencoded)
		if err != nil {
			return fmt.Errorf("decode re-encoded stream: %w", err)
		}
		if !bytes.Equal(back.Pix, img.Pix) {
			return fmt.Errorf("round trip lost pixel data (%d vs %d bytes)", len(back.Pix), len(img.Pix))
		}
		fmt.Printf("Round trip OK: %dx%d, %d raw bytes, re-encoded stream %d bytes (source %d)\n",
			img.Width, img.Height, len(img.Pix), len(reencoded), len(data))
		return nil
	}

	if outFile != "" {
		reencoded, err := enc.Encode(img.Pix, img.Width, img.Height)
		if err != nil {
			return fmt.Errorf("re-encode: %w", err)
		}
		if err := os.WriteFile(outFile, reencoded, 0o644); err != nil {
			return fmt.Errorf("write file: %w", err)
		}
		fmt.Printf("Wrote %s (%d bytes)\n", outFile, len(reencoded))
		return nil
	}

	// No action flags: a short summary.
	fmt.Printf("%s: %dx%d truecolor+alpha, %d raw bytes\n", inFile, img.Width, img.Height, len(img.Pix))
	return nil
}

func printInfo(name string, data []byte) error {
	chunks, err := png.ParseDatastream(data)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	fmt.Println(titleStyle.Render(name))

	if len(chunks) > 0 && chunks[0].Tag == png.TagIHDR {
		header, err := png.DecodeHeader(chunks[0].Payload)
		if err != nil {
			return err
		}
		fmt.Printf("Dimensions:  %dx%d\n", header.Width, header.Height)
		fmt.Printf("Bit depth:   %d\n", header.BitDepth)
		fmt.Printf("Color type:  %d\n", header.ColorType)
		fmt.Printf("Interlace:   %d\n", header.Interlace)
		if err := header.Validate(); err != nil {
			fmt.Printf("Supported:   no (%v)\n", err)
		} else {
			fmt.Println("Supported:   yes")
		}
	}

	fmt.Println("\nChunks (IDAT run merged):")
	for i, c := range chunks {
		fmt.Printf("  %d  %s  length=%d  crc=%#08x\n", i, tagStyle.Render(c.Tag), c.Length, c.CRC)
	}
	return nil
}

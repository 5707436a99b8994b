// Command jfifdump is a diagnostic collaborator for the baseline JPEG
// decoder: it can walk a file's marker structure without decoding
// pixels, or decode a file and write the result as a PPM (P6) image.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-baseline-jpeg/jfifdecode/codec"
	_ "github.com/go-baseline-jpeg/jfifdecode/jpeg/baseline"
	"github.com/go-baseline-jpeg/jfifdecode/jpeg/common"
	"github.com/go-baseline-jpeg/jfifdecode/ppm"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "markers":
		runMarkers(os.Args[2:])
	case "decode":
		runDecode(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: jfifdump markers -i <file.jpg>")
	fmt.Fprintln(os.Stderr, "       jfifdump decode -i <file.jpg> -o <file.ppm>")
}

func runMarkers(args []string) {
	fs := flag.NewFlagSet("markers", flag.ExitOnError)
	in := fs.String("i", "", "Input JPEG file path")
	fs.Parse(args)

	if *in == "" {
		fmt.Fprintln(os.Stderr, "markers: -i is required")
		os.Exit(1)
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "markers: cant open input %s: %s\n", *in, err)
		os.Exit(1)
	}

	if err := common.WalkMarkers(data, func(marker uint16, length int) {
		fmt.Printf("%s (0x%04X) length=%d\n", common.MarkerName(marker), marker, length)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "markers: %s\n", err)
		os.Exit(1)
	}
}

func runDecode(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	in := fs.String("i", "", "Input JPEG file path")
	out := fs.String("o", "", "Output PPM file path")
	fs.Parse(args)

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "decode: -i and -o are required")
		os.Exit(1)
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode: cant open input %s: %s\n", *in, err)
		os.Exit(1)
	}

	c, err := codec.Get("jpeg-baseline")
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode: %s\n", err)
		os.Exit(1)
	}

	result, err := c.Decode(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode: cant decode input %s: %s\n", *in, err)
		os.Exit(1)
	}

	output, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode: cant open output %s: %s\n", *out, err)
		os.Exit(1)
	}
	defer output.Close()

	if err := ppm.Write(output, result.Width, result.Height, result.PixelData); err != nil {
		fmt.Fprintf(os.Stderr, "decode: cant write output %s: %s\n", *out, err)
		os.Exit(1)
	}
}

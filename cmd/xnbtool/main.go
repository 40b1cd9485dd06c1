// Command xnbtool unpacks and repacks XNA content binary (XNB) files.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sfdtools/xnbc/pkg/fileio"
	"github.com/sfdtools/xnbc/xnbc"
)

var (
	doUnpack = flag.Bool("unpack", false, "unpack an .xnb file into a JSON document plus sidecars")
	doPack   = flag.Bool("pack", false, "pack a JSON document plus sidecars back into an .xnb file")
	input    = flag.String("i", "", "input path (.xnb for -unpack, .json for -pack)")
	output   = flag.String("o", "", "output path (a directory for -unpack, an .xnb file for -pack)")
	version  = flag.Bool("version", false, "print version and exit")
)

const appVersion = "0.1.0"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  %s -unpack -i <file.xnb> -o <dir>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -pack -i <dir/doc.json> -o <file.xnb>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -version\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *version {
		fmt.Printf("xnbtool version %s\n", appVersion)
		os.Exit(0)
	}

	var err error
	switch {
	case *doUnpack:
		err = runUnpack(*input, *output)
	case *doPack:
		err = runPack(*input, *output)
	default:
		flag.Usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runUnpack(inPath, outDir string) error {
	if inPath == "" {
		return fmt.Errorf("-unpack requires -i <file.xnb>")
	}
	if err := fileio.CheckExists(inPath); err != nil {
		return err
	}
	reader, err := fileio.OpenFile(inPath)
	if err != nil {
		return err
	}
	defer reader.Close()
	data, err := fileio.ReadAll(reader)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	if outDir == "" {
		outDir = filepath.Dir(inPath)
	}

	doc, err := xnbc.Container{}.Unpack(data)
	if err != nil {
		return fmt.Errorf("unpacking %s: %w", inPath, err)
	}
	for _, w := range doc.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	store := fileio.NewDirStore(outDir, base)
	if err := xnbc.ExportDocument(doc, store); err != nil {
		return err
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	jsonPath := filepath.Join(outDir, base+".json")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}
	if err := os.WriteFile(jsonPath, out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", jsonPath, err)
	}
	fmt.Printf("unpacked %s -> %s\n", inPath, jsonPath)
	return nil
}

func runPack(inPath, outPath string) error {
	if inPath == "" {
		return fmt.Errorf("-pack requires -i <document.json>")
	}
	if err := fileio.CheckExists(inPath); err != nil {
		return err
	}
	raw, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inPath, err)
	}

	var doc xnbc.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decoding %s: %w", inPath, err)
	}

	base := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	sidecarDir := filepath.Dir(inPath)
	store := fileio.NewDirStore(sidecarDir, base)

	if err := xnbc.ImportDocument(&doc, store); err != nil {
		return err
	}

	data, err := xnbc.Container{}.Pack(&doc)
	if err != nil {
		return fmt.Errorf("packing %s: %w", inPath, err)
	}

	if outPath == "" {
		outPath = filepath.Join(sidecarDir, base+".xnb")
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	fmt.Printf("packed %s -> %s\n", inPath, outPath)
	return nil
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// --- Main Function ---
func main() {
	// Use log package for consistent output formatting
	log.SetFlags(0) // Remove timestamp prefixes

	listOnly := flag.Bool("list", false, "enumerate recognized controls instead of converting")
	batchFile := flag.String("batch", "", "convert every job in a TOML batch file")
	flag.Usage = func() {
		prog := filepath.Base(os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <input.svg> <output.xaml> [worksheet.xml ...]\n", prog)
		fmt.Fprintf(os.Stderr, "       %s -list <input.svg>\n", prog)
		fmt.Fprintf(os.Stderr, "       %s -batch <jobs.toml>\n", prog)
		flag.PrintDefaults()
	}
	flag.Parse()
	args := flag.Args()

	switch {
	case *batchFile != "":
		if len(args) != 0 {
			flag.Usage()
			os.Exit(1)
		}
		runBatch(*batchFile)
	case *listOnly:
		if len(args) != 1 {
			flag.Usage()
			os.Exit(1)
		}
		runList(args[0])
	default:
		if len(args) < 2 {
			flag.Usage()
			os.Exit(1)
		}
		runConvert(args[0], args[1], args[2:])
	}
}

// runConvert executes the full pass pipeline for one drawing.
func runConvert(inputFile, outputFile string, worksheetFiles []string) {
	log.Printf("Converting '%s' to '%s'...", inputFile, outputFile)
	if err := convertFile(inputFile, outputFile, worksheetFiles); err != nil {
		// Attempt to remove partially written file on error
		_ = os.Remove(outputFile)
		log.Fatalf("Failed: %v", err)
	}

	info, statErr := os.Stat(outputFile)
	finalSize := int64(-1)
	if statErr == nil {
		finalSize = info.Size()
	} else {
		log.Printf("Warning: Could not stat output file '%s' after writing: %v", outputFile, statErr)
	}
	log.Printf("Success. Output size: %d bytes.", finalSize)
}

// convertFile runs every pass over one input drawing.
func convertFile(inputFile, outputFile string, worksheetFiles []string) error {
	// --- Pass 0: Parse Drawing ---
	log.Println("Pass 0: Parsing drawing...")
	doc, err := ParseDesignFile(inputFile)
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}

	// --- Pass 1: Expand Symbol References ---
	log.Println("Pass 1: Expanding symbol references...")
	expanded := expandUseReferences(doc)
	log.Printf("   Expanded %d references.", expanded)

	// --- Pass 1.5: Parse Style Worksheets ---
	var worksheets []*Document
	if len(worksheetFiles) > 0 {
		log.Printf("Pass 1.5: Parsing %d style worksheet(s)...", len(worksheetFiles))
		for _, wf := range worksheetFiles {
			ws, err := ParseDesignFile(wf)
			if err != nil {
				return fmt.Errorf("worksheet: %w", err)
			}
			worksheets = append(worksheets, ws)
		}
	}

	// --- Passes 2-3: Build Areas, Layout, Render ---
	log.Println("Pass 2: Building control areas...")
	log.Println("Pass 3: Inferring layout and rendering...")
	root := BuildAndRender(doc, worksheets)
	if root == nil {
		return fmt.Errorf("no form layer found in '%s'", inputFile)
	}

	// --- Pass 4: Write XAML ---
	return WriteXamlFile(root, outputFile)
}

// runList enumerates the recognized controls of a drawing on stdout.
func runList(inputFile string) {
	doc, err := ParseDesignFile(inputFile)
	if err != nil {
		log.Fatalf("Failed: Parsing - %v", err)
	}
	expandUseReferences(doc)
	EnumerateControls(doc, os.Stdout)
}

// runBatch converts every job in a batch file, stopping on the first failure.
func runBatch(batchFile string) {
	cfg, err := LoadBatchConfig(batchFile)
	if err != nil {
		log.Fatalf("Failed: Batch config - %v", err)
	}
	log.Printf("Batch: %d job(s) from '%s'.", len(cfg.Convert), batchFile)
	for i, job := range cfg.Convert {
		log.Printf("--- Job %d/%d ---", i+1, len(cfg.Convert))
		runConvert(job.Input, job.Output, job.Worksheets)
	}
}

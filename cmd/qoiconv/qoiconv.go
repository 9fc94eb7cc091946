package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/gammazero/workerpool"

	"rapidqoi/qoi"
)

const usage = `Usage: qoiconv [flags] <infile> <outfile>
       qoiconv [flags] -to <ext> <infile>...
Examples:
	qoiconv input.png output.qoi
	qoiconv input.qoi output.png
	qoiconv -verify input.png output.qoi.zst
	qoiconv -j 8 -to qoi.lz4 *.png

The only supported formats are png, jpeg, gif, bmp, tiff & qoi.
QOI files may carry a .zst, .s2 or .lz4 suffix to be compressed further.

Flags:`

type job struct {
	in, out string
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("qoiconv: ")

	flag.Usage = printUsage
	to := flag.String("to", "", "convert every input file to this extension, next to the input")
	workers := flag.Int("j", runtime.NumCPU(), "number of files converted concurrently")
	verify := flag.Bool("verify", false, "decode every written QOI file and compare its pixels")
	colors := flag.String("colors", "auto", "QOI channel layout: auto, srgb, srgb-linear-alpha, rgb or rgba")
	flag.Parse()

	conv, err := newConverter(*colors, *verify)
	if err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	jobs, err := collectJobs(*to, flag.Args())
	if err != nil {
		printUsage()
		os.Exit(2)
	}

	if len(jobs) == 1 {
		if err := conv.convert(jobs[0]); err != nil {
			log.Fatalf("Could not convert %s: %v", jobs[0].in, err)
		}
		return
	}
	if failed := runBatch(conv, jobs, *workers); failed > 0 {
		log.Fatalf("%d of %d conversions failed", failed, len(jobs))
	}
}

func printUsage() {
	fmt.Fprintln(flag.CommandLine.Output(), usage)
	flag.PrintDefaults()
}

var errNoInput = errors.New("no input files")

func collectJobs(to string, args []string) ([]job, error) {
	if to == "" {
		if len(args) != 2 {
			return nil, errNoInput
		}
		return []job{{in: args[0], out: args[1]}}, nil
	}
	if len(args) == 0 {
		return nil, errNoInput
	}
	jobs := make([]job, 0, len(args))
	for _, in := range args {
		jobs = append(jobs, job{in: in, out: replaceExtension(in, to)})
	}
	return jobs, nil
}

// replaceExtension swaps the extension of name, including a compression suffix, for ext.
func replaceExtension(name, ext string) string {
	name = trimCompressionSuffix(name)
	return strings.TrimSuffix(name, filepath.Ext(name)) + "." + strings.TrimPrefix(ext, ".")
}

// runBatch converts every job on a pool of workers and returns the number of failures.
// Each conversion owns its codec state, so the images are encoded fully in parallel.
func runBatch(conv converter, jobs []job, workers int) int {
	var failed atomic.Int32
	wp := workerpool.New(workers)
	for _, j := range jobs {
		j := j
		wp.Submit(func() {
			if err := conv.convert(j); err != nil {
				log.Printf("Could not convert %s: %v", j.in, err)
				failed.Add(1)
				return
			}
			log.Printf("%s -> %s", j.in, j.out)
		})
	}
	wp.StopWait()
	return int(failed.Load())
}

func parseColors(name string) (colors qoi.Colors, auto bool, err error) {
	if name == "auto" {
		return 0, true, nil
	}
	for _, c := range []qoi.Colors{qoi.SRGB, qoi.SRGBLinearAlpha, qoi.RGB, qoi.RGBA} {
		if c.String() == name {
			return c, false, nil
		}
	}
	return 0, false, fmt.Errorf("unknown colors %q", name)
}

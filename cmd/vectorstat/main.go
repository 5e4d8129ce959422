// vectorstat builds a Vector of a requested size and mix of operations
// and reports its representation, height, and a histogram of its
// element values. It is a diagnostic one-shot runner, not a benchmark
// harness: it does no timing and makes no adaptive decisions.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/exp/constraints"

	"persist.dev/vector"
)

var (
	size      = flag.Int("size", 1000, "number of elements to build")
	small     = flag.Int("small", 31, "S_small threshold")
	medium    = flag.Int("medium", 1024, "S_medium threshold")
	removeEnd = flag.Int("remove", 0, "elements to remove from the end after building")
	verbose   = flag.Bool("v", false, "log each representation transition")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *size < 0 {
		fmt.Fprintf(os.Stderr, "vectorstat: illegal size %d\n", *size)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if !*verbose {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}

	v := build(logger, *size, *small, *medium)
	if *removeEnd > 0 {
		v = shrink(logger, v, *removeEnd)
	}

	report(logger, v)
}

func build(logger *slog.Logger, n, smallThreshold, mediumThreshold int) vector.Vector[int] {
	v := vector.Empty[int](
		vector.WithSmallThreshold[int](smallThreshold),
		vector.WithMediumThreshold[int](mediumThreshold),
	)
	prevRep := v.Representation()
	for i := 0; i < n; i++ {
		v = v.Append(i)
		if rep := v.Representation(); rep != prevRep {
			logger.Info("representation transition", "at_size", v.Size(), "from", prevRep, "to", rep)
			prevRep = rep
		}
	}
	return v
}

func shrink(logger *slog.Logger, v vector.Vector[int], n int) vector.Vector[int] {
	prevRep := v.Representation()
	for i := 0; i < n && v.Size() > 0; i++ {
		var err error
		v, err = v.Remove(v.Size() - 1)
		if err != nil {
			logger.Warn("remove failed", "err", err)
			break
		}
		if rep := v.Representation(); rep != prevRep {
			logger.Info("representation transition", "at_size", v.Size(), "from", prevRep, "to", rep)
			prevRep = rep
		}
	}
	return v
}

func report(logger *slog.Logger, v vector.Vector[int]) {
	fmt.Printf("size=%d representation=%s height=%d\n", v.Size(), v.Representation(), v.Height())
	hist := histogram(v.ToSlice(), 10)
	for _, bucket := range hist {
		fmt.Printf("  bucket[%d] count=%d\n", bucket.lo, bucket.count)
	}
}

type bucket[T constraints.Integer] struct {
	lo    T
	count int
}

// histogram sorts values into nBuckets buckets spanning
// [min(vals), max(vals)], each (max-min)/nBuckets wide (at least 1)
// except the last, which also takes every value beyond the others; used
// for vectorstat's coarse value report.
func histogram[T constraints.Integer](vals []T, nBuckets int) []bucket[T] {
	if len(vals) == 0 || nBuckets <= 0 {
		return nil
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	width := (hi - lo) / T(nBuckets)
	if width == 0 {
		width = 1
	}
	buckets := make([]bucket[T], nBuckets)
	for i := range buckets {
		buckets[i].lo = lo + T(i)*width
	}
	for _, v := range vals {
		idx := int((v - lo) / width)
		if idx >= nBuckets {
			idx = nBuckets - 1
		}
		buckets[idx].count++
	}
	return buckets
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: vectorstat [options]\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
	os.Exit(2)
}

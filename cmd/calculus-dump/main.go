// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command calculus-dump loads a heap image, normalises the term rooted at
// its saved root, writes the result back, and reports the rewrite count.
// It does not parse source syntax; that CLI is out of scope here (see
// spec.md's Non-goals) — this one only exercises the image/normalise
// boundary, the same role lldb/lab/1 and dbm/crash play for lldb.Allocator.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/cznic/exp/calculus"
	"github.com/cznic/exp/calculus/image"
)

var (
	in       = flag.String("in", "", "heap image to load")
	out      = flag.String("out", "", "heap image to write (defaults to -in)")
	compress = flag.Bool("z", false, "snappy-compress the output image")
)

func main() {
	log.SetFlags(log.Lshortfile)
	flag.Parse()
	if *in == "" {
		log.Fatal("calculus-dump: -in is required")
	}
	if *out == "" {
		*out = *in
	}

	f, err := os.OpenFile(*in, os.O_RDONLY, 0)
	if err != nil {
		log.Fatal(err)
	}
	filer, err := image.NewFileFiler(f)
	if err != nil {
		log.Fatal(err)
	}

	h, root, err := image.Load(filer)
	if err != nil {
		log.Fatal(err)
	}
	if err := filer.Close(); err != nil {
		log.Fatal(err)
	}

	_, n, err := calculus.Normalise(h, root, nil)
	if err != nil {
		log.Fatal(err)
	}

	w, err := os.OpenFile(*out, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		log.Fatal(err)
	}
	outFiler, err := image.NewFileFiler(w)
	if err != nil {
		log.Fatal(err)
	}
	if err := image.Save(outFiler, h, root, *compress); err != nil {
		log.Fatal(err)
	}
	if err := outFiler.Close(); err != nil {
		log.Fatal(err)
	}

	log.Printf("calculus-dump: %d rewrites, image written to %s", n, *out)
}

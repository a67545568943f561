// elGraph: a tool for querying assembly graphs.
// Copyright (c) 2024 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elgraph/blob/master/LICENSE.txt>.

package internal

import (
	"bufio"
	"io"
	"log"
	"os"

	"github.com/exascience/elgraph/utils"
)

// FileOpen is os.Open with panics in place of errors
func FileOpen(name string) *os.File {
	f, err := os.Open(name)
	if err != nil {
		log.Panic(err)
	}
	return f
}

// FileCreate is os.Create with panics in place of errors
func FileCreate(name string) *os.File {
	f, err := os.Create(name)
	if err != nil {
		log.Panic(err)
	}
	return f
}

// Close is f.Close() with panics in place of errors
func Close(f io.Closer) {
	if err := f.Close(); err != nil {
		log.Panic(err)
	}
}

// InputFile opens a possibly compressed input file. Closing the
// result closes both the decompressor and the file.
func InputFile(name string) io.ReadCloser {
	f := FileOpen(name)
	r, err := utils.HandleCompression(bufio.NewReader(f))
	if err != nil {
		_ = f.Close()
		log.Panic(err)
	}
	return &inputFile{r, f}
}

type inputFile struct {
	io.ReadCloser
	file *os.File
}

func (f *inputFile) Close() error {
	err := f.ReadCloser.Close()
	if ferr := f.file.Close(); err == nil {
		err = ferr
	}
	return err
}

// MkdirAll is os.MkdirAll with panics in place of errors
func MkdirAll(path string, perm os.FileMode) {
	if err := os.MkdirAll(path, perm); err != nil {
		log.Panic(err)
	}
}

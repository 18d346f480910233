// Copyright © 2024 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package sigalign

import (
	"fmt"
	"io"

	"github.com/shenwei356/bio/seqio/fastx"
)

// ReadFastxToStorage reads sequences from (gzipped) FASTA/FASTQ files into
// a new InMemoryStorage, the sequence IDs are used as labels.
// Use "-" for stdin.
func ReadFastxToStorage(files ...string) (*InMemoryStorage, error) {
	storage := NewInMemoryStorage()
	for _, file := range files {
		if err := readFastx(file, storage); err != nil {
			return nil, err
		}
	}
	return storage, nil
}

func readFastx(file string, storage *InMemoryStorage) error {
	fastxReader, err := fastx.NewReader(nil, file, "")
	if err != nil {
		return fmt.Errorf("read sequence file %s: %w", file, err)
	}
	defer fastxReader.Close()

	var record *fastx.Record
	for {
		record, err = fastxReader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("read sequence file %s: %w", file, err)
		}
		storage.Add(string(record.ID), record.Seq.Seq)
	}
	return nil
}

// NewReferenceFromFastx builds a Reference from sequence files.
// If k > 0, a KmerIndex of k is built, otherwise targets are scanned.
func NewReferenceFromFastx(k uint32, files ...string) (*Reference, error) {
	storage, err := ReadFastxToStorage(files...)
	if err != nil {
		return nil, err
	}
	var locator PatternLocator
	if k > 0 {
		locator = NewKmerIndex(storage, k)
	} else {
		locator = NewScanLocator(storage)
	}
	return NewReference(storage, locator)
}

package io

// package for holding the file IO types and methods

import (
	"bufio"
	"os"
	"strings"

	gzip "github.com/klauspost/pgzip"
	"github.com/shenwei356/xopen"
)

// object to hold the input file handles and wrap their close methods
type InputFileReader struct {
	Reader *bufio.Reader
	File   *os.File
	gz     *gzip.Reader
}

func (r *InputFileReader) Close() error {
	if r.gz != nil {
		r.gz.Close()
	}
	return r.File.Close()
}

// GetReader opens the input file for reading, transparently
// decompressing .gz inputs. The caller needs to run this;
// defer reader.Close()
func GetReader(inputFilepath string) (*InputFileReader, error) {
	bufferSize := 1048576 // default 4096: 4KB ; 1048576 : 1MB

	file, err := os.Open(inputFilepath)
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(inputFilepath, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, err
		}
		return &InputFileReader{bufio.NewReaderSize(gz, bufferSize), file, gz}, nil
	}

	return &InputFileReader{bufio.NewReaderSize(file, bufferSize), file, nil}, nil
}

// GetWriter initializes an output file writer; the output is
// gzip-compressed when the path ends in .gz. The caller needs to run
// defer writer.Close()
func GetWriter(outputFilepath string) (*xopen.Writer, error) {
	return xopen.Wopen(outputFilepath)
}

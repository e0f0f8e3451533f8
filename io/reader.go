package io

import (
	"crittok/criteria"
	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"
	"io"
	"os"
)

// ReadCriteriaFile reads the criteria document (JSON) from the given file. The filename "-" reads from stdin.
func ReadCriteriaFile(filename string) (any, error) {
	if filename == "-" {
		return ReadCriteria(os.Stdin, "stdin")
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to open criteria file %s", filename)
	}

	defer func() {
		err = file.Close()
		if err != nil {
			sigolo.Errorf("Unable to close file handle for criteria file %s: %+v", filename, err)
		}
	}()

	return ReadCriteria(file, filename)
}

func ReadCriteria(reader io.Reader, name string) (any, error) {
	sigolo.Debugf("Read criteria document from %s", name)

	expression, err := criteria.Parse(reader)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to parse criteria document %s", name)
	}

	return expression, nil
}

//go:build !unix

package preflight

import (
	"errors"
	"io"
	"os"
)

func canReadWrite(path string) error {
	if err := canRead(path); err != nil {
		return err
	}
	probe, err := os.CreateTemp(path, ".demobatch-probe-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}

func canRead(path string) error {
	dir, err := os.Open(path)
	if err != nil {
		return err
	}
	defer dir.Close()
	_, err = dir.Readdirnames(1)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

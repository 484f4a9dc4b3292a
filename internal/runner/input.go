package runner

import (
	"fmt"
	"io"
	"os"
)

// StdinName is the input name that selects standard input.
const StdinName = "-"

// ReadInput reads the named input, or stdin for StdinName, refusing inputs
// larger than maxInputSize bytes.
func ReadInput(name string, stdin io.Reader, maxInputSize int) ([]byte, error) {
	if name == StdinName {
		return readBounded(stdin, maxInputSize)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("read file %q: %w", name, err)
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := readBounded(f, maxInputSize)
	if err != nil {
		return nil, fmt.Errorf("read file %q: %w", name, err)
	}
	return data, nil
}

func readBounded(r io.Reader, maxInputSize int) ([]byte, error) {
	lr := io.LimitReader(r, int64(maxInputSize)+1)
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if len(data) > maxInputSize {
		return nil, fmt.Errorf("input exceeds maximum size %d bytes", maxInputSize)
	}
	return data, nil
}

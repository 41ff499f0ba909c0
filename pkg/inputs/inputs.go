package inputs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-argdoc/pkg/optspec"
)

// Default input locations, relative to the working directory.
const (
	DefaultArgumentSpecsPath = "./meta/argument_specs.yml"
	DefaultMetadataPath      = "./meta/main.yml"
	DefaultBadgesPath        = "./meta/badges.yml"
)

// ErrMissingInput reports a required input file that does not exist.
var ErrMissingInput = errors.New("inputs: yaml file does not exist")

// LoadArgumentSpecs reads and decodes the argument specification at path.
func LoadArgumentSpecs(path string, options ...optspec.DecodeOption) (optspec.CategorySpec, error) {
	data, err := readRequired(path)
	if err != nil {
		return nil, err
	}
	spec, err := optspec.Decode(data, options...)
	if err != nil {
		return nil, fmt.Errorf("inputs: %s: %w", path, err)
	}
	return spec, nil
}

// LoadDocument reads a required YAML document and returns it as template data.
// Mappings come back as *Mapping in document order, floats as Float.
func LoadDocument(path string) (any, error) {
	data, err := readRequired(path)
	if err != nil {
		return nil, err
	}
	return decodeDocument(path, data)
}

// LoadOptionalDocument behaves like LoadDocument but returns an empty string
// when path does not exist, so templates can test it for truthiness.
func LoadOptionalDocument(path string) (any, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return nil, fmt.Errorf("inputs: read %s: %w", path, err)
	}
	return decodeDocument(path, data)
}

func readRequired(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("inputs: path is required")
	}
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
	case err != nil:
		return nil, fmt.Errorf("inputs: stat %s: %w", path, err)
	case info.IsDir():
		return nil, fmt.Errorf("%w: %s is a directory", ErrMissingInput, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("inputs: read %s: %w", path, err)
	}
	return data, nil
}

func decodeDocument(path string, data []byte) (any, error) {
	v, err := optspec.DecodeValue(data)
	if err != nil {
		return nil, fmt.Errorf("inputs: %s: %w", path, err)
	}
	return templateData(v), nil
}

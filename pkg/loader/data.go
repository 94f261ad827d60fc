package loader

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/tether/internal/errors"
)

// LoadData reads render data from r. YAML and JSON documents are accepted;
// mappings decode to map[string]any and lists to []any. An empty document
// yields nil.
func LoadData(r io.Reader) (any, error) {
	var data any
	if err := yaml.NewDecoder(r).Decode(&data); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.New("E152").WithDetail(err.Error()).Wrap(err)
	}
	return data, nil
}

// LoadDataFile reads render data from a file. An empty path yields nil.
func LoadDataFile(path string) (any, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New("E152").WithDetailf("cannot open %s", path).Wrap(err)
	}
	defer f.Close()

	data, err := LoadData(f)
	if err != nil {
		return nil, err
	}
	return data, nil
}

package config

import (
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/hubtty/hubtty/pkg/fileutil"
)

// Load reads and parses the configuration document at path, then checks
// it against the schema. The whole document is rejected on the first
// structural violation; no partially-valid document is ever returned.
func Load(path string) (map[string]any, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading configuration file")
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	if err := Validate(doc); err != nil {
		return nil, errors.Wrapf(err, "validating %s", path)
	}
	return doc, nil
}

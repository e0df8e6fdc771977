package logconfig

import (
	"bytes"
	"encoding/json"

	"github.com/Station-Manager/errors"
	"gopkg.in/yaml.v3"
)

// decodeDefinition parses a definition document by extension.
func decodeDefinition(name string, data []byte, ext string) (*Definition, error) {
	const op errors.Op = "logconfig.decodeDefinition"

	var def Definition
	var err error
	switch ext {
	case ".json":
		err = json.NewDecoder(bytes.NewReader(data)).Decode(&def)
	default:
		err = yaml.Unmarshal(data, &def)
	}
	if err != nil {
		return nil, &ConfigValidationError{Name: name, Err: errors.New(op).Err(err).Msg(errMsgDecodeFailed)}
	}
	return &def, nil
}

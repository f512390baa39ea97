package domain

import (
	"bytes"
	"encoding/json"

	"go.trai.ch/zerr"
)

// Algorithms is an ordered selection of algorithms. It decodes from either a JSON list of
// {"name", "params"} objects or a JSON object mapping name to params, keeping key order.
type Algorithms []AlgorithmConfig

// UnmarshalJSON implements json.Unmarshaler.
func (a *Algorithms) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = nil
		return nil
	}
	if data[0] == '[' {
		var list []AlgorithmConfig
		if err := json.Unmarshal(data, &list); err != nil {
			return zerr.Wrap(err, ErrInvalidRequest.Error())
		}
		*a = list
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return zerr.Wrap(err, ErrInvalidRequest.Error())
	}
	var out Algorithms
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return zerr.Wrap(err, ErrInvalidRequest.Error())
		}
		name, ok := tok.(string)
		if !ok {
			return zerr.Wrap(ErrInvalidRequest, "algorithm name must be a string")
		}
		var params map[string]any
		if err := dec.Decode(&params); err != nil {
			return zerr.With(zerr.Wrap(err, ErrInvalidRequest.Error()), "algorithm", name)
		}
		out = append(out, AlgorithmConfig{Name: name, Params: params})
	}
	*a = out
	return nil
}

// Names lists the selected algorithm names in order.
func (a Algorithms) Names() []string {
	names := make([]string, len(a))
	for i, cfg := range a {
		names[i] = cfg.Name
	}
	return names
}

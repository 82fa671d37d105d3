package trendmodel

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Container is a collection of trend models keyed by axis name.
type Container map[string]Model

// Unmarshals a yaml mapping of axis name to model definition into the
// container. The model type is selected from the "type" field of each entry.
func (c *Container) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw map[string]map[string]interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	if *c == nil {
		*c = make(Container, len(raw))
	}

	for axis, entry := range raw {
		model, err := createModelFromYamlEntry(entry)
		if err != nil {
			return fmt.Errorf("axis %q: %w", axis, err)
		}
		(*c)[axis] = model
	}

	return nil
}

// Returns a decodeHook function that can be used to unmarshal trend models
// using mapstructure. This supports configuration solutions like spf13/viper
// that use mapstructure to unmarshal yaml files.
func GetDecodeHook() (mapstructure.DecodeHookFunc, error) {
	decodeHook := func(f reflect.Type, t reflect.Type, yamlEntry interface{}) (interface{}, error) {
		if t == reflect.TypeOf((*Model)(nil)).Elem() {
			m, ok := yamlEntry.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("yaml entry cannot be parsed to map[string]interface{}: %v", yamlEntry)
			}
			return createModelFromYamlEntry(m)
		}
		// Otherwise, return the yaml entry as is (default behaviour)
		return yamlEntry, nil
	}

	return decodeHook, nil
}

// Creates a model from a yaml entry based on the model "type" (or "Type") field.
func createModelFromYamlEntry(m map[string]interface{}) (Model, error) {
	// must check both m["type"] and m["Type"] because some yaml parsers
	// convert to lower case and some don't
	typeStr, ok := m["type"].(string)
	if !ok {
		typeStr, ok = m["Type"].(string)
		if !ok {
			return nil, errors.New("model type field is missing or not a string")
		}
	}

	switch typeStr {
	case "line":
		var model Line
		if err := decodeModelParams(&model, m); err != nil {
			return nil, err
		}
		return &model, nil
	case "flat":
		var model Flat
		if err := decodeModelParams(&model, m); err != nil {
			return nil, err
		}
		return &model, nil
	case "shape":
		var params ShapeParams
		if err := decodeModelParams(&params, m); err != nil {
			return nil, err
		}
		return NewShape(params)
	default:
		return nil, fmt.Errorf("unknown model type: %s", typeStr)
	}
}

// Use mapstructure to unmarshal a yaml entry into modelParams, honouring the
// yaml tags on the params structs.
func decodeModelParams[T any](modelParams *T, m map[string]interface{}) error {
	decoderConfig := &mapstructure.DecoderConfig{
		TagName:          "yaml",
		WeaklyTypedInput: true,
		Result:           modelParams,
	}
	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return err
	}
	return decoder.Decode(m)
}

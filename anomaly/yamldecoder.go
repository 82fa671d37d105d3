package anomaly

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Unmarshals a yaml mapping of name to injector definition into the
// container. The injector type is selected from the "type" field of each
// entry.
func (c *Container) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw map[string]map[string]interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	if *c == nil {
		*c = make(Container, len(raw))
	}

	for key, value := range raw {
		inj, err := createInjectorFromYamlEntry(value)
		if err != nil {
			return fmt.Errorf("injector %q: %w", key, err)
		}
		(*c)[key] = inj
	}

	return nil
}

// Returns a decodeHook function that can be used to unmarshal injectors
// using mapstructure. This supports configuration solutions like spf13/viper
// that use mapstructure to unmarshal yaml files.
func GetDecodeHook() (mapstructure.DecodeHookFunc, error) {
	decodeHook := func(f reflect.Type, t reflect.Type, yamlEntry interface{}) (interface{}, error) {
		if t == reflect.TypeOf((*Injector)(nil)).Elem() {
			m, ok := yamlEntry.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("yaml entry cannot be parsed to map[string]interface{}: %v", yamlEntry)
			}
			return createInjectorFromYamlEntry(m)
		}
		// Otherwise, return the yaml entry as is (default behaviour)
		return yamlEntry, nil
	}

	return decodeHook, nil
}

// Creates an injector from a yaml entry based on the "type" (or "Type") field.
func createInjectorFromYamlEntry(m map[string]interface{}) (Injector, error) {
	// must check both m["type"] and m["Type"] because some yaml parsers
	// convert to lower case and some don't
	typeStr, ok := m["type"].(string)
	if !ok {
		typeStr, ok = m["Type"].(string)
		if !ok {
			return nil, errors.New("injector type field is missing or not a string")
		}
	}

	switch typeStr {
	case "block":
		var params BlockParams
		if err := decodeInjectorParams(&params, m); err != nil {
			return nil, err
		}
		return NewBlock(params)
	case "spike":
		var params SpikeParams
		if err := decodeInjectorParams(&params, m); err != nil {
			return nil, err
		}
		return NewSpike(params)
	default:
		return nil, fmt.Errorf("unknown injector type: %s", typeStr)
	}
}

// Use mapstructure to unmarshal a yaml entry into injectorParams, honouring
// the yaml tags on the params structs.
func decodeInjectorParams[T any](injectorParams *T, m map[string]interface{}) error {
	decoderConfig := &mapstructure.DecoderConfig{
		TagName:          "yaml",
		WeaklyTypedInput: true,
		Result:           injectorParams,
	}
	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return err
	}
	return decoder.Decode(m)
}

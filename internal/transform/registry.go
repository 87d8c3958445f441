package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_return_rate", createSetReturnRate)
	registry.Register("floor_return_rate", createFloorReturnRate)
	registry.Register("cap_return_rate", createCapReturnRate)
	registry.Register("set_work_income", createSetWorkIncome)
	registry.Register("floor_work_income", createFloorWorkIncome)
	registry.Register("set_work_start", createSetWorkStart)
	registry.Register("start_work_after_grant", createStartWorkAfterGrant)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_return_rate:rate=0.06"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	name := strings.TrimSpace(parts[0])
	paramsStr := ""
	if len(parts) == 2 {
		paramsStr = strings.TrimSpace(parts[1])
	}
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformList parses a semicolon-separated list of transform specs.
func (r *TransformRegistry) ParseTransformList(list string) ([]ScenarioTransform, error) {
	var transforms []ScenarioTransform
	for _, spec := range strings.Split(list, ";") {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	return transforms, nil
}

// Factory functions for each transform

func requireDecimal(transform, key string, params map[string]string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

func createSetReturnRate(params map[string]string) (ScenarioTransform, error) {
	rate, err := requireDecimal("set_return_rate", "rate", params)
	if err != nil {
		return nil, err
	}
	return &SetReturnRate{Rate: rate}, nil
}

func createFloorReturnRate(params map[string]string) (ScenarioTransform, error) {
	rate, err := requireDecimal("floor_return_rate", "rate", params)
	if err != nil {
		return nil, err
	}
	return &FloorReturnRate{Min: rate}, nil
}

func createCapReturnRate(params map[string]string) (ScenarioTransform, error) {
	rate, err := requireDecimal("cap_return_rate", "rate", params)
	if err != nil {
		return nil, err
	}
	return &CapReturnRate{Max: rate}, nil
}

func createSetWorkIncome(params map[string]string) (ScenarioTransform, error) {
	amount, err := requireDecimal("set_work_income", "amount", params)
	if err != nil {
		return nil, err
	}
	return &SetWorkIncome{Amount: amount}, nil
}

func createFloorWorkIncome(params map[string]string) (ScenarioTransform, error) {
	amount, err := requireDecimal("floor_work_income", "amount", params)
	if err != nil {
		return nil, err
	}
	return &FloorWorkIncome{Min: amount}, nil
}

func createSetWorkStart(params map[string]string) (ScenarioTransform, error) {
	monthStr, ok := params["month"]
	if !ok {
		return nil, fmt.Errorf("set_work_start requires 'month' parameter")
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return nil, fmt.Errorf("invalid month value: %w", err)
	}

	return &SetWorkStart{Month: month}, nil
}

func createStartWorkAfterGrant(map[string]string) (ScenarioTransform, error) {
	return &StartWorkAfterGrant{}, nil
}

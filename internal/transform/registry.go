package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (LoanTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("adjust_rate", createAdjustRate)
	registry.Register("set_rate", createSetRate)
	registry.Register("change_tenure", createChangeTenure)
	registry.Register("change_principal", createChangePrincipal)
	registry.Register("add_prepayment", createAddPrepayment)
	registry.Register("remove_prepayment", createRemovePrepayment)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (LoanTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
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
// Example: "add_prepayment:amount=100000,at=12,strategy=reduce_tenure"
func (r *TransformRegistry) ParseTransformSpec(spec string) (LoanTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	params := make(map[string]string)
	if len(parts) == 2 {
		paramsStr := strings.TrimSpace(parts[1])
		if paramsStr != "" {
			for _, paramPair := range strings.Split(paramsStr, ",") {
				kv := strings.SplitN(paramPair, "=", 2)
				if len(kv) != 2 {
					return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
				}
				params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
			}
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func requireDecimal(transform string, params map[string]string, key string) (decimal.Decimal, error) {
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

func requireInt(transform string, params map[string]string, key string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

func createAdjustRate(params map[string]string) (LoanTransform, error) {
	delta, err := requireDecimal("adjust_rate", params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustRate{DeltaPercent: delta}, nil
}

func createSetRate(params map[string]string) (LoanTransform, error) {
	rate, err := requireDecimal("set_rate", params, "rate")
	if err != nil {
		return nil, err
	}
	return &SetRate{RatePercent: rate}, nil
}

func createChangeTenure(params map[string]string) (LoanTransform, error) {
	months, err := requireInt("change_tenure", params, "months")
	if err != nil {
		return nil, err
	}
	return &ChangeTenure{DeltaMonths: months}, nil
}

func createChangePrincipal(params map[string]string) (LoanTransform, error) {
	delta, err := requireDecimal("change_principal", params, "delta")
	if err != nil {
		return nil, err
	}
	return &ChangePrincipal{DeltaAmount: delta}, nil
}

func createAddPrepayment(params map[string]string) (LoanTransform, error) {
	amount, err := requireDecimal("add_prepayment", params, "amount")
	if err != nil {
		return nil, err
	}
	at, err := requireInt("add_prepayment", params, "at")
	if err != nil {
		return nil, err
	}
	return &AddPrepayment{
		Amount:   amount,
		AtPeriod: at,
		Strategy: domain.PrepaymentStrategy(params["strategy"]),
	}, nil
}

func createRemovePrepayment(map[string]string) (LoanTransform, error) {
	return &RemovePrepayment{}, nil
}

// In file: internal/tools/calculator.go
package tools

import (
	"context"
	"fmt"
)

// CalculatorTool performs basic arithmetic locally; it is the one builtin
// with no external dependency.
type CalculatorTool struct{}

var _ Tool = (*CalculatorTool)(nil)

func NewCalculatorTool() *CalculatorTool {
	return &CalculatorTool{}
}

func (t *CalculatorTool) Name() string     { return "calculate" }
func (t *CalculatorTool) Category() string { return "utility" }

func (t *CalculatorTool) Describe() Description {
	return Description{
		Description: "Performs a basic arithmetic calculation (add, subtract, multiply, divide)",
		Parameters: JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"operand1": {
					Type:        "number",
					Description: "The first number in the calculation.",
				},
				"operator": {
					Type:        "string",
					Description: "The operator to use. Must be one of '+', '-', '*', '/'.",
				},
				"operand2": {
					Type:        "number",
					Description: "The second number in the calculation.",
				},
			},
			Required: []string{"operand1", "operator", "operand2"},
		},
	}
}

func (t *CalculatorTool) Execute(_ context.Context, params map[string]any) (any, error) {
	operand1, err := numberParam(params, "operand1")
	if err != nil {
		return nil, err
	}
	operand2, err := numberParam(params, "operand2")
	if err != nil {
		return nil, err
	}
	operator := stringParam(params, "", "operator")

	var result float64
	switch operator {
	case "+":
		result = operand1 + operand2
	case "-":
		result = operand1 - operand2
	case "*":
		result = operand1 * operand2
	case "/":
		if operand2 == 0 {
			return "Error: Division by zero is not allowed.", nil
		}
		result = operand1 / operand2
	default:
		return fmt.Sprintf("Error: Unsupported operator %q. Please use +, -, *, or /.", operator), nil
	}

	// %g avoids trailing zeros (e.g. "10.000000").
	return fmt.Sprintf("The result is %g.", result), nil
}

// numberParam reads a numeric parameter that may arrive as a JSON number or a
// key=value string.
func numberParam(params map[string]any, key string) (float64, error) {
	switch v := params[key].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		var f float64
		if _, err := fmt.Sscanf(v, "%g", &f); err == nil {
			return f, nil
		}
	}
	return 0, fmt.Errorf("invalid %s for calculator", key)
}

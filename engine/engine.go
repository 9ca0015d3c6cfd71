package engine

import (
	"fmt"

	"go.starlark.net/lib/math"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// ExecuteStarlark executes a script with provided inputs predeclared and
// returns the globals it defined as native Go values. maxSteps bounds the
// work one execution may do; 0 means unbounded.
func ExecuteStarlark(threadName string, script string, inputs map[string]interface{}, maxSteps uint64, print func(msg string)) (map[string]interface{}, error) {
	thread := &starlark.Thread{Name: threadName}
	if print != nil {
		thread.Print = func(_ *starlark.Thread, msg string) { print(msg) }
	}
	if maxSteps > 0 {
		thread.SetMaxExecutionSteps(maxSteps)
	}

	predeclared := starlark.StringDict{"math": math.Module}
	for k, v := range inputs {
		if val, err := toStarlarkValue(v); err == nil {
			predeclared[k] = val
		}
	}

	resultGlobals, err := starlark.ExecFile(thread, threadName, script, predeclared)
	if err != nil {
		return nil, err
	}

	out := make(map[string]interface{}, len(resultGlobals))
	for k, v := range resultGlobals {
		out[k] = FromStarlarkValue(v)
	}
	return out, nil
}

func toStarlarkValue(v interface{}) (starlark.Value, error) {
	if v == nil {
		return starlark.None, nil
	}
	switch val := v.(type) {
	case string:
		return starlark.String(val), nil
	case int:
		return starlark.MakeInt(val), nil
	case float64:
		return starlark.Float(val), nil
	case bool:
		return starlark.Bool(val), nil
	case map[string]interface{}:
		fields := make(starlark.StringDict, len(val))
		for k, fv := range val {
			sv, err := toStarlarkValue(fv)
			if err != nil {
				return starlark.None, fmt.Errorf("field %s: %w", k, err)
			}
			fields[k] = sv
		}
		return starlarkstruct.FromStringDict(starlarkstruct.Default, fields), nil
	}
	return starlark.None, fmt.Errorf("unsupported type: %T", v)
}

func FromStarlarkValue(v starlark.Value) interface{} {
	switch val := v.(type) {
	case starlark.String:
		return string(val)
	case starlark.Int:
		i, _ := val.Int64()
		return int(i)
	case starlark.Float:
		return float64(val)
	case starlark.Bool:
		return bool(val)
	}
	return nil
}

//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/cwbudde/algo-modscope/dsp/modulation"
	"github.com/cwbudde/algo-modscope/internal/app"
	"github.com/cwbudde/algo-modscope/internal/figure"
)

var (
	session = app.NewSession()
	funcs   []js.Func
)

func main() {
	api := js.Global().Get("Object").New()

	api.Set("fields", export(func(_ []js.Value) any {
		return toJSON(app.Fields())
	}))

	api.Set("blank", export(func(_ []js.Value) any {
		return toJSON(figure.Blank())
	}))

	api.Set("current", export(func(_ []js.Value) any {
		return toJSON(session.Figure())
	}))

	api.Set("update", export(func(args []js.Value) any {
		if len(args) < 2 {
			return failure("Error", "update(values, scheme) needs two arguments")
		}
		scheme, err := modulation.ParseScheme(args[1].String())
		if err != nil {
			return failure("Error", err.Error())
		}

		values := make(map[string]string)
		obj := args[0]
		for _, f := range app.Fields() {
			v := obj.Get(f.Key)
			if v.IsUndefined() || v.IsNull() {
				continue
			}
			// String() on a JS number yields "<number: ...>".
			values[f.Key] = js.Global().Call("String", v).String()
		}

		if err := session.Update(values, scheme); err != nil {
			if title, msg, ok := app.Dialog(err); ok {
				return failure(title, msg)
			}
			return failure("Error", err.Error())
		}
		return toJSON(session.Figure())
	}))

	js.Global().Set("ModScope", api)
	select {}
}

func toJSON(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return failure("Error", err.Error())
	}
	return string(data)
}

func failure(title, message string) any {
	data, _ := json.Marshal(map[string]string{"error": message, "title": title})
	return string(data)
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}

package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"surrounding prose", `Sure! Here is the result: {"a":1} hope that helps`, `{"a":1}`, true},
		{"nested object", `noise {"a":{"b":2},"c":3} noise`, `{"a":{"b":2},"c":3}`, true},
		{"brace in string", `{"a":"closing } inside"}`, `{"a":"closing } inside"}`, true},
		{"escaped quote in string", `{"a":"say \"}\" ok"}`, `{"a":"say \"}\" ok"}`, true},
		{"takes first object", `{"a":1} {"b":2}`, `{"a":1}`, true},
		{"unbalanced", `{"a":1`, "", false},
		{"no object", `just text`, "", false},
		{"empty", ``, "", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(c.in)
			if ok != c.ok {
				t.Fatalf("ok = %v, want %v", ok, c.ok)
			}
			if got != c.want {
				t.Errorf("got %q, want %q", got, c.want)
			}
			if ok && !json.Valid([]byte(got)) {
				t.Errorf("extracted object is not valid JSON: %s", got)
			}
		})
	}
}

func TestDecodeJSON_StrictFirst(t *testing.T) {
	var out struct {
		A int `json:"a"`
	}
	if err := DecodeJSON(`{"a":42}`, &out); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if out.A != 42 {
		t.Errorf("a = %d", out.A)
	}
}

func TestDecodeJSON_RecoversEmbeddedObject(t *testing.T) {
	var out struct {
		Items []string `json:"items"`
	}
	raw := "Here's what I found:\n{\"items\": [\"cough\", \"fever\"]}\nLet me know if you need more."
	if err := DecodeJSON(raw, &out); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if len(out.Items) != 2 || out.Items[0] != "cough" {
		t.Errorf("items = %v", out.Items)
	}
}

func TestDecodeJSON_StripsCodeFence(t *testing.T) {
	var out struct {
		A int `json:"a"`
	}
	if err := DecodeJSON("```json\n{\"a\":7}\n```", &out); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if out.A != 7 {
		t.Errorf("a = %d", out.A)
	}
}

func TestDecodeJSON_Malformed(t *testing.T) {
	var out map[string]interface{}
	err := DecodeJSON("I could not produce JSON for that.", &out)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

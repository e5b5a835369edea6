package triage

import (
	"errors"
	"testing"
)

func TestDecodeStage_Strict(t *testing.T) {
	var out struct {
		A int `json:"a"`
	}
	if err := decodeStage(`{"a":42}`, &out); err != nil {
		t.Fatalf("decodeStage: %v", err)
	}
	if out.A != 42 {
		t.Errorf("a = %d", out.A)
	}
}

func TestDecodeStage_RecoversEmbeddedObject(t *testing.T) {
	var out struct {
		Symptoms []string `json:"extracted_symptoms"`
	}
	raw := "Here's what I found:\n{\"extracted_symptoms\": [\"cough\", \"fever\"]}\nLet me know if you need more."
	if err := decodeStage(raw, &out); err != nil {
		t.Fatalf("decodeStage: %v", err)
	}
	if len(out.Symptoms) != 2 || out.Symptoms[0] != "cough" {
		t.Errorf("symptoms = %v", out.Symptoms)
	}
}

func TestDecodeStage_MalformedError(t *testing.T) {
	var out map[string]interface{}
	err := decodeStage("I could not produce JSON for that.", &out)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

package protocol

import "testing"

func TestMessageRoundTrip(t *testing.T) {
	msg, err := NewMessage(TypeGuidance, GuidanceData{
		Instruction:  -2,
		Label:        "turn left",
		AngleDegrees: -47.5,
		PathClear:    true,
	})
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	if msg.Timestamp == 0 {
		t.Error("timestamp not set")
	}

	raw, err := msg.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	parsed, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if parsed.Type != TypeGuidance {
		t.Errorf("type = %q, want %q", parsed.Type, TypeGuidance)
	}

	var data GuidanceData
	if err := parsed.ParseData(&data); err != nil {
		t.Fatalf("ParseData: %v", err)
	}
	if data.Instruction != -2 || data.AngleDegrees != -47.5 || !data.PathClear {
		t.Errorf("round trip mutated data: %+v", data)
	}
}

func TestMessageWithoutData(t *testing.T) {
	msg, err := NewMessage(TypePing, nil)
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	raw, err := msg.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	parsed, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if parsed.Data != nil {
		t.Errorf("data = %s, want empty", parsed.Data)
	}

	var ignored GuidanceData
	if err := parsed.ParseData(&ignored); err != nil {
		t.Errorf("ParseData on empty data: %v", err)
	}
}

func TestParseMessage_Malformed(t *testing.T) {
	if _, err := ParseMessage([]byte("{not json")); err == nil {
		t.Error("no error for malformed message")
	}
}

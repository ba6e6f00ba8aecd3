package wire

import "testing"

func TestCommandRequestRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		req  CommandRequest
	}{
		{"get", NewGet("k1")},
		{"set", NewSet("k1", "v1")},
		{"set-empty-value", NewSet("k1", "")},
		{"remove", NewRemove("k1")},
		{"hget", NewHGet("t1", "k1")},
		{"hset", NewHSet("t1", "k1", "v1")},
		{"hdel", NewHDel("t1", "k1")},
		{"hmget", NewHMGet("t1", []string{"k1", "k2", "k3"})},
		{"hmget-empty-keys", NewHMGet("t1", nil)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := tc.req.Marshal()
			got, err := UnmarshalCommandRequest(data)
			if err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if got.Verb != tc.req.Verb {
				t.Errorf("verb = %v, want %v", got.Verb, tc.req.Verb)
			}
			if got.Table != tc.req.Table {
				t.Errorf("table = %q, want %q", got.Table, tc.req.Table)
			}
			if got.Key != tc.req.Key {
				t.Errorf("key = %q, want %q", got.Key, tc.req.Key)
			}
			if got.Value != tc.req.Value {
				t.Errorf("value = %q, want %q", got.Value, tc.req.Value)
			}
			if len(got.Keys) != len(tc.req.Keys) {
				t.Fatalf("keys = %v, want %v", got.Keys, tc.req.Keys)
			}
			for i := range got.Keys {
				if got.Keys[i] != tc.req.Keys[i] {
					t.Errorf("keys[%d] = %q, want %q", i, got.Keys[i], tc.req.Keys[i])
				}
			}
		})
	}
}

func TestCommandResponseRoundTrip(t *testing.T) {
	resp := CommandResponse{
		Status:  StatusOK,
		Message: "",
		Values:  []string{"v1", "v2"},
		Pairs: []KvPair{
			{Key: "k1", Value: "v1"},
			{Key: "k2", Value: "v2"},
		},
	}

	data := resp.Marshal()
	got, err := UnmarshalCommandResponse(data)
	if err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got.Status != resp.Status {
		t.Errorf("status = %d, want %d", got.Status, resp.Status)
	}
	if len(got.Values) != len(resp.Values) || got.Values[0] != "v1" || got.Values[1] != "v2" {
		t.Errorf("values = %v, want %v", got.Values, resp.Values)
	}
	if len(got.Pairs) != 2 || got.Pairs[0] != resp.Pairs[0] || got.Pairs[1] != resp.Pairs[1] {
		t.Errorf("pairs = %v, want %v", got.Pairs, resp.Pairs)
	}
}

func TestCommandResponseNotFound(t *testing.T) {
	resp := CommandResponse{Status: StatusNotFound, Message: "key not found"}
	data := resp.Marshal()
	got, err := UnmarshalCommandResponse(data)
	if err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got.Status != StatusNotFound {
		t.Errorf("status = %d, want %d", got.Status, StatusNotFound)
	}
	if got.Message != "key not found" {
		t.Errorf("message = %q, want %q", got.Message, "key not found")
	}
	if len(got.Values) != 0 || len(got.Pairs) != 0 {
		t.Errorf("expected no values/pairs, got %v / %v", got.Values, got.Pairs)
	}
}

func TestUnmarshalSkipsUnknownFields(t *testing.T) {
	req := NewSet("k1", "v1")
	data := req.Marshal()

	// Append a varint field with an unrecognized field number; the decoder
	// should skip it rather than fail.
	data = append(data, 0xC8, 0x01, 0x2A) // field 25, varint, value 42

	got, err := UnmarshalCommandRequest(data)
	if err != nil {
		t.Fatalf("unmarshal with unknown field failed: %v", err)
	}
	if got.Key != "k1" || got.Value != "v1" {
		t.Errorf("decoded = %+v, want key=k1 value=v1", got)
	}
}

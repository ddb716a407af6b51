package messaging

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// color is a closed enumeration used to exercise encoders
type color int

const (
	red color = iota
	blue
)

var colorEncoder = NewEncoder(
	func(c color) (string, error) {
		switch c {
		case red:
			return "red", nil
		case blue:
			return "blue", nil
		default:
			return "", fmt.Errorf("%w: unknown color %d", ErrEncoding, int(c))
		}
	},
	func(s string) (color, error) {
		switch s {
		case "red":
			return red, nil
		case "blue":
			return blue, nil
		default:
			return 0, fmt.Errorf("%w: unknown color %q", ErrDecoding, s)
		}
	},
)

type testMessage struct {
	Base
	name  Optional[string]
	note  Optional[string]
	color Optional[color]
	count Optional[int]
}

func newTestMessage() *testMessage {
	endpoint, _ := url.Parse("https://example.com/endpoint")
	return &testMessage{
		Base: NewBase(Version{Major: 2}, Direct, GetRequest, endpoint),
	}
}

func testFields() []Field[*testMessage] {
	return []Field[*testMessage]{
		Constant[*testMessage]("kind", "test"),
		NewField[*testMessage]("name", func(m *testMessage) (any, bool) {
			v, ok := m.name.Get()
			return v, ok
		}, Required()),
		NewField[*testMessage]("note", func(m *testMessage) (any, bool) {
			v, ok := m.note.Get()
			return v, ok
		}, AllowEmpty()),
		NewField[*testMessage]("color", func(m *testMessage) (any, bool) {
			v, ok := m.color.Get()
			return v, ok
		}, WithEncoder(colorEncoder)),
		NewField[*testMessage]("count", func(m *testMessage) (any, bool) {
			v, ok := m.count.Get()
			return v, ok
		}),
	}
}

func mustDescriptor(t *testing.T) *Descriptor[*testMessage] {
	t.Helper()
	d, err := NewDescriptor("test", testFields()...)
	if err != nil {
		t.Fatalf("building descriptor: %v", err)
	}
	return d
}

func TestNewDescriptor(t *testing.T) {
	d := mustDescriptor(t)

	want := []string{"kind", "name", "note", "color", "count"}
	if diff := cmp.Diff(want, d.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if d.Name() != "test" {
		t.Errorf("name: got %q, want %q", d.Name(), "test")
	}

	f, ok := d.Lookup("note")
	if !ok {
		t.Fatal("expected note field")
	}
	if f.IsRequired() || !f.IsAllowEmpty() {
		t.Errorf("note: got required=%v allowEmpty=%v", f.IsRequired(), f.IsAllowEmpty())
	}
	if _, ok := d.Lookup("missing"); ok {
		t.Error("unexpected field for unknown name")
	}

	// Mutating the copy must not affect the descriptor
	fields := d.Fields()
	fields[0] = Field[*testMessage]{}
	if d.Names()[0] != "kind" {
		t.Error("descriptor changed through Fields copy")
	}
}

func TestNewDescriptorDuplicateName(t *testing.T) {
	fields := append(testFields(), Constant[*testMessage]("name", "again"))

	d, err := NewDescriptor("test", fields...)
	if d != nil {
		t.Error("expected nil descriptor")
	}

	var derr *DescriptorError
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DescriptorError, got %v", err)
	}
	if derr.Field != "name" || derr.Message != "test" {
		t.Errorf("got %+v, want field name in message test", derr)
	}
}

func TestLazyDescriptorBuildsOnce(t *testing.T) {
	var builds int
	var mu sync.Mutex
	get := LazyDescriptor("test", func() []Field[*testMessage] {
		mu.Lock()
		builds++
		mu.Unlock()
		return testFields()
	})

	var wg sync.WaitGroup
	results := make([]*Descriptor[*testMessage], 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, err := get()
			if err != nil {
				t.Errorf("building descriptor: %v", err)
			}
			results[i] = d
		}(i)
	}
	wg.Wait()

	if builds != 1 {
		t.Errorf("builds: got %d, want 1", builds)
	}
	for i, d := range results {
		if d != results[0] {
			t.Errorf("result %d is a different descriptor", i)
		}
	}
}

func TestSerialize(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*testMessage)
		want      map[string]string
		wantKeys  []string
		wantField string
		wantErr   error
	}{
		{
			name:     "required only",
			setup:    func(m *testMessage) { m.name = Some("alice") },
			want:     map[string]string{"kind": "test", "name": "alice"},
			wantKeys: []string{"kind", "name"},
		},
		{
			name: "all fields in order",
			setup: func(m *testMessage) {
				m.color = Some(blue)
				m.note = Some("hi")
				m.name = Some("alice")
			},
			want:     map[string]string{"kind": "test", "name": "alice", "note": "hi", "color": "blue"},
			wantKeys: []string{"kind", "name", "note", "color"},
		},
		{
			name: "no encoder for non-string value",
			setup: func(m *testMessage) {
				m.name = Some("alice")
				m.count = Some(3)
			},
			wantField: "count",
			wantErr:   ErrEncoding,
		},
		{
			name: "empty allowed",
			setup: func(m *testMessage) {
				m.name = Some("alice")
				m.note = Some("")
			},
			want:     map[string]string{"kind": "test", "name": "alice", "note": ""},
			wantKeys: []string{"kind", "name", "note"},
		},
		{
			name:      "missing required",
			setup:     func(m *testMessage) {},
			wantField: "name",
			wantErr:   ErrMissingRequiredField,
		},
		{
			name:      "empty not allowed",
			setup:     func(m *testMessage) { m.name = Some("") },
			wantField: "name",
			wantErr:   ErrEmptyFieldNotAllowed,
		},
		{
			name: "encoder rejects unknown member",
			setup: func(m *testMessage) {
				m.name = Some("alice")
				m.color = Some(color(7))
			},
			wantField: "color",
			wantErr:   ErrEncoding,
		},
		{
			name: "extra data sorted after fields",
			setup: func(m *testMessage) {
				m.name = Some("alice")
				m.ExtraData()["z_ext"] = "2"
				m.ExtraData()["a_ext"] = "1"
			},
			want:     map[string]string{"kind": "test", "name": "alice", "a_ext": "1", "z_ext": "2"},
			wantKeys: []string{"kind", "name", "a_ext", "z_ext"},
		},
		{
			name: "extra data shadows declared field",
			setup: func(m *testMessage) {
				m.name = Some("alice")
				m.ExtraData()["kind"] = "other"
			},
			wantField: "kind",
			wantErr:   ErrDuplicateParameter,
		},
	}

	d := mustDescriptor(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := newTestMessage()
			tt.setup(msg)

			params, err := Serialize(d, msg)
			if tt.wantErr != nil {
				if params != nil {
					t.Error("expected no parameters on failure")
				}
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got error %v, want %v", err, tt.wantErr)
				}
				var ferr *FieldError
				if !errors.As(err, &ferr) {
					t.Fatalf("expected *FieldError, got %T", err)
				}
				if ferr.Field != tt.wantField {
					t.Errorf("field: got %q, want %q", ferr.Field, tt.wantField)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, params.Map()); diff != "" {
				t.Errorf("parameters mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantKeys, params.Keys()); diff != "" {
				t.Errorf("key order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParametersEncoding(t *testing.T) {
	d := mustDescriptor(t)
	msg := newTestMessage()
	msg.name = Some("a b&c")
	msg.note = Some("")

	params, err := Serialize(d, msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := params.Encode(), "kind=test&name=a+b%26c&note="; got != want {
		t.Errorf("form: got %q, want %q", got, want)
	}

	data, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshaling: %v", err)
	}
	if got, want := string(data), `{"kind":"test","name":"a b&c","note":""}`; got != want {
		t.Errorf("json: got %s, want %s", got, want)
	}

	values := params.Values()
	if values.Get("name") != "a b&c" {
		t.Errorf("values: got %q", values.Get("name"))
	}
	if v, ok := params.Lookup("note"); !ok || v != "" {
		t.Errorf("lookup note: got %q, %v", v, ok)
	}
	if _, ok := params.Lookup("color"); ok {
		t.Error("color should be absent")
	}
}

func TestEncoderRoundTrip(t *testing.T) {
	for _, c := range []color{red, blue} {
		wire, err := colorEncoder.Encode(c)
		if err != nil {
			t.Fatalf("encoding %d: %v", c, err)
		}
		got, err := colorEncoder.Decode(wire)
		if err != nil {
			t.Fatalf("decoding %q: %v", wire, err)
		}
		if got != c {
			t.Errorf("round trip: got %v, want %v", got, c)
		}
	}

	if _, err := colorEncoder.Decode("green"); !errors.Is(err, ErrDecoding) {
		t.Errorf("decode unknown: got %v, want ErrDecoding", err)
	}
	if _, err := colorEncoder.Encode("red"); !errors.Is(err, ErrEncoding) {
		t.Errorf("encode wrong type: got %v, want ErrEncoding", err)
	}
}

func TestFieldIdentity(t *testing.T) {
	f := NewField[*testMessage]("plain", nil)

	got, err := f.Decode("value")
	if err != nil || got != "value" {
		t.Errorf("decode: got %v, %v", got, err)
	}
	if s, err := f.Encode(Version{Major: 2}); err != nil || s != "2.0" {
		t.Errorf("stringer: got %q, %v", s, err)
	}
	if _, err := f.Encode(42); !errors.Is(err, ErrEncoding) {
		t.Errorf("int: got %v, want ErrEncoding", err)
	}
	if _, ok := f.value(newTestMessage()); ok {
		t.Error("field without accessor should be absent")
	}
}

func TestOptional(t *testing.T) {
	var o Optional[string]
	if o.IsSet() {
		t.Error("zero Optional should be unset")
	}
	if got := o.OrElse("def"); got != "def" {
		t.Errorf("OrElse: got %q, want %q", got, "def")
	}

	o = Some("")
	if v, ok := o.Get(); !ok || v != "" {
		t.Errorf("Some empty: got %q, %v", v, ok)
	}
	if None[int]().IsSet() {
		t.Error("None should be unset")
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr bool
	}{
		{in: "2.0", want: Version{Major: 2}},
		{in: "2", want: Version{Major: 2}},
		{in: " 1.5 ", want: Version{Major: 1, Minor: 5}},
		{in: "", wantErr: true},
		{in: "0.0", wantErr: true},
		{in: "two", wantErr: true},
		{in: "2.x", wantErr: true},
		{in: "-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(strconv.Quote(tt.in), func(t *testing.T) {
			got, err := ParseVersion(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedVersion) {
					t.Errorf("got %v, want ErrUnsupportedVersion", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeliveryMethods(t *testing.T) {
	tests := []struct {
		methods DeliveryMethods
		verb    string
		str     string
	}{
		{GetRequest, "GET", "GET"},
		{PostRequest, "POST", "POST"},
		{GetRequest | PostRequest, "GET", "GET|POST"},
		{AuthorizationHeaderRequest, "", "AuthorizationHeader"},
		{0, "", "none"},
	}

	for _, tt := range tests {
		if got := tt.methods.HTTPMethod(); got != tt.verb {
			t.Errorf("%s: verb got %q, want %q", tt.str, got, tt.verb)
		}
		if got := tt.methods.String(); got != tt.str {
			t.Errorf("string: got %q, want %q", got, tt.str)
		}
	}
}

func TestBaseRecipientCopied(t *testing.T) {
	endpoint, _ := url.Parse("https://example.com/a")
	b := NewBase(Version{Major: 2}, Indirect, PostRequest, endpoint)

	endpoint.Path = "/changed"
	if b.Recipient().Path != "/a" {
		t.Error("recipient changed through constructor argument")
	}
	b.Recipient().Path = "/mutated"
	if b.Recipient().Path != "/a" {
		t.Error("recipient changed through getter result")
	}
	if b.Transport() != Indirect || b.Transport().String() != "indirect" {
		t.Errorf("transport: got %v", b.Transport())
	}
}

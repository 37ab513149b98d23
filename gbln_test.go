package gbln

import (
	stderrors "errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gbln-format/gbln-go/errors"
	"github.com/gbln-format/gbln-go/value"
)

func TestParse(t *testing.T) {
	v, err := Parse("user{id<u32>(12345)name<s64>(Alice)age<i8>(25)active<b>(t)}")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	user, ok := v.Get("user")
	if !ok {
		t.Fatal("missing user")
	}
	if id, _ := user.Get("id"); id.AsInt() != 12345 {
		t.Errorf("id = %d", id.AsInt())
	}
	if name, _ := user.Get("name"); name.AsString() != "Alice" {
		t.Errorf("name = %q", name.AsString())
	}
	if active, _ := user.Get("active"); !active.AsBool() {
		t.Error("active should be true")
	}
}

func TestParseError(t *testing.T) {
	_, err := Parse("a<u8>(300)")
	if err == nil {
		t.Fatal("expected error")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseParse, Kind: errors.KindIntOutOfRange}) {
		t.Errorf("err = %v, want int_out_of_range", err)
	}
}

func TestToStringRoundTrip(t *testing.T) {
	doc := value.Object(map[string]value.Value{
		"id":     value.Int(12345),
		"name":   value.String("Alice"),
		"active": value.Bool(true),
		"tags":   value.Array([]value.Value{value.String("go")}),
	})

	text, err := ToString(doc)
	if err != nil {
		t.Fatalf("ToString: %v", err)
	}
	// 12345 normalizes to u16, "Alice" to capacity class 8.
	if !strings.Contains(text, "id<u16>(12345)") || !strings.Contains(text, "name<s8>(Alice)") {
		t.Errorf("ToString = %q", text)
	}

	back, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(ToString): %v", err)
	}
	if !back.Equal(doc) {
		t.Error("round trip mismatch")
	}
}

func TestToStringPretty(t *testing.T) {
	doc := value.Object(map[string]value.Value{
		"a": value.Int(1),
		"b": value.Bool(false),
	})

	text, err := ToStringPretty(doc, 4)
	if err != nil {
		t.Fatalf("ToStringPretty: %v", err)
	}
	if text != "a<u8>(1)\nb<b>(f)\n" {
		t.Errorf("ToStringPretty = %q", text)
	}

	back, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(pretty): %v", err)
	}
	if !back.Equal(doc) {
		t.Error("pretty round trip mismatch")
	}
}

func TestFileRoundTrip(t *testing.T) {
	doc := value.Object(map[string]value.Value{
		"user": value.Object(map[string]value.Value{
			"id":    value.Int(7),
			"name":  value.String("Bob"),
			"score": value.Float(91.5),
			"meta":  value.Null(),
		}),
	})

	dir := t.TempDir()
	for name, cfg := range map[string]Config{
		"doc.gbln.io": IODefault(),
		"doc.gbln":    SourceDefault(),
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := WriteFile(path, doc, cfg); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			got, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if !got.Equal(doc) {
				t.Error("file round trip mismatch")
			}
		})
	}
}

func TestWriteFileEncodeError(t *testing.T) {
	doc := value.Object(map[string]value.Value{
		"huge": value.String(strings.Repeat("x", 2000)),
	})
	err := WriteFile(filepath.Join(t.TempDir(), "bad.gbln"), doc, SourceDefault())
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindStringTooLong}) {
		t.Errorf("err = %v, want string_too_long", err)
	}
}

package value

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		want string
		kind Kind
	}{
		{"null", KindNull},
		{"bool", KindBool},
		{"int", KindInt},
		{"float", KindFloat},
		{"string", KindString},
		{"object", KindObject},
		{"array", KindArray},
		{"unknown", Kind(255)},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.kind.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestKindClassification(t *testing.T) {
	scalars := []Kind{KindNull, KindBool, KindInt, KindFloat, KindString}
	for _, k := range scalars {
		if !k.IsScalar() {
			t.Errorf("%s should be scalar", k)
		}
		if k.IsContainer() {
			t.Errorf("%s should not be a container", k)
		}
	}

	containers := []Kind{KindObject, KindArray}
	for _, k := range containers {
		if k.IsScalar() {
			t.Errorf("%s should not be scalar", k)
		}
		if !k.IsContainer() {
			t.Errorf("%s should be a container", k)
		}
	}
}

package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-outreach/internal/yamlutil"
)

type testDoc struct {
	Name    string `yaml:"name"`
	Count   int    `yaml:"count"`
	Enabled bool   `yaml:"enabled"`
}

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "valid YAML",
			data: []byte("name: test\ncount: 42\nenabled: true"),
			dest: &testDoc{},
			check: func(t *testing.T, v any) {
				doc := v.(*testDoc)
				if doc.Name != "test" || doc.Count != 42 || !doc.Enabled {
					t.Errorf("Unmarshal() = %+v, want {test 42 true}", doc)
				}
			},
		},
		{
			name: "unknown fields tolerated",
			data: []byte("name: test\nextra: ignored"),
			dest: &testDoc{},
			check: func(t *testing.T, v any) {
				doc := v.(*testDoc)
				if doc.Name != "test" {
					t.Errorf("Unmarshal() Name = %q, want %q", doc.Name, "test")
				}
			},
		},
		{
			name: "string mapping",
			data: []byte("AfterShip Returns: AfterShip\nReturnGO Returns: ReturnGO"),
			dest: &map[string]string{},
			check: func(t *testing.T, v any) {
				m := *v.(*map[string]string)
				if m["AfterShip Returns"] != "AfterShip" {
					t.Errorf("Unmarshal() mapping = %v", m)
				}
			},
		},
		{
			name:    "empty data",
			data:    nil,
			dest:    &testDoc{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("name: test"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := yamlutil.Unmarshal(tt.data, tt.dest)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Unmarshal() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

func TestUnmarshal_InvalidYAML(t *testing.T) {
	t.Parallel()

	var doc testDoc
	err := yamlutil.Unmarshal([]byte("name: [unclosed"), &doc)
	if err == nil {
		t.Fatal("Unmarshal() error = nil, want parse error")
	}
	if !strings.Contains(err.Error(), "yamlutil") {
		t.Errorf("Unmarshal() error %q missing package prefix", err)
	}
}

func TestUnmarshal_InputTooLarge(t *testing.T) {
	t.Parallel()

	big := []byte("name: " + strings.Repeat("x", yamlutil.MaxInputSize))
	var doc testDoc
	if err := yamlutil.Unmarshal(big, &doc); !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Fatalf("Unmarshal() error = %v, want ErrInputTooLarge", err)
	}
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	var doc testDoc
	if err := yamlutil.UnmarshalStrict([]byte("name: test\ncount: 1"), &doc); err != nil {
		t.Fatalf("UnmarshalStrict() error = %v", err)
	}

	err := yamlutil.UnmarshalStrict([]byte("name: test\ntypoField: oops"), &doc)
	if err == nil {
		t.Fatal("UnmarshalStrict() error = nil, want unknown-field error")
	}
}

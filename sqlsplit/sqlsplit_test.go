package sqlsplit

import (
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple statements",
			input: "SELECT 1; SELECT 2",
			want:  []string{"SELECT 1;", "SELECT 2"},
		},
		{
			name:  "trigger body keeps its semicolons",
			input: "CREATE TRIGGER trigger AFTER INSERT ON t BEGIN SELECT 1; END;",
			want:  []string{"CREATE TRIGGER trigger AFTER INSERT ON t BEGIN SELECT 1; END;"},
		},
		{
			name:  "trigger body followed by another statement",
			input: "CREATE TRIGGER trigger AFTER INSERT ON t BEGIN SELECT 1; END; SELECT 1",
			want:  []string{"CREATE TRIGGER trigger AFTER INSERT ON t BEGIN SELECT 1; END;", "SELECT 1"},
		},
		{
			name:  "multiline statements",
			input: "SELECT 1;\n                           SELECT 2;\n        ",
			want:  []string{"SELECT 1;", "SELECT 2;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Split(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

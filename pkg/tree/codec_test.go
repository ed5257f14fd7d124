package tree

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/fractal/pkg/errors"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		tree     Tree
		wantText string
		wantJSON string
	}{
		{Leaf{}, "0", "[]"},
		{NewUnary(Leaf{}), "(0)", "[[]]"},
		{NewBinary(Leaf{}, Leaf{}), "[0,0]", "[[],[]]"},
		{NewBinary(NewUnary(Leaf{}), Leaf{}), "[(0),0]", "[[[]],[]]"},
	}

	for _, tt := range tests {
		if got := Format(tt.tree); got != tt.wantText {
			t.Errorf("Format() = %q, want %q", got, tt.wantText)
		}
		if got := FormatJSON(tt.tree); got != tt.wantJSON {
			t.Errorf("FormatJSON() = %q, want %q", got, tt.wantJSON)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	doc := struct {
		Tree Tree `json:"tree"`
	}{Tree: MustParse("[(0),0]")}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if want := `{"tree":[[[]],[]]}`; string(data) != want {
		t.Errorf("json.Marshal() = %s, want %s", data, want)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"leaf", "0", "0"},
		{"unary", "(0)", "(0)"},
		{"binary", "[0,0]", "[0,0]"},
		{"nested", "[(0),[0,(0)]]", "[(0),[0,(0)]]"},
		{"json leaf", "[]", "0"},
		{"json unary", "[[]]", "(0)"},
		{"json binary", "[[],[[]]]", "[0,(0)]"},
		{"empty parens", "()", "0"},
		{"bracket unary", "[0]", "(0)"},
		{"paren binary", "(0,0)", "[0,0]"},
		{"mixed notation", "[[],(0)]", "[0,(0)]"},
		{"whitespace", " [ 0 ,\n ( 0 ) ]\n", "[0,(0)]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"blank", "  \n"},
		{"trident", "[0,0,0]"},
		{"json trident", "[[],[],[]]"},
		{"unclosed", "[0,0"},
		{"unopened", "0]"},
		{"mismatched", "[0,0)"},
		{"trailing comma", "[0,]"},
		{"leading comma", "[,0]"},
		{"two roots", "0 0"},
		{"trailing garbage", "(0)x"},
		{"digit one", "1"},
		{"letters", "leaf"},
		{"missing comma", "[0 0]"},
		{"too deep", strings.Repeat("(", MaxParseDepth+2) + "0" + strings.Repeat(")", MaxParseDepth+2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err == nil {
				t.Fatalf("Parse(%q) = %s, want error", tt.in, got)
			}
			if !errors.Is(err, errors.ErrCodeParseFailure) {
				t.Errorf("Parse(%q) code = %v, want %v", tt.in, errors.GetCode(err), errors.ErrCodeParseFailure)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, tr := range sampleTrees() {
		for _, text := range []string{Format(tr), FormatJSON(tr)} {
			got, err := Parse(text)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", text, err)
			}
			if !Equal(got, tr) {
				t.Errorf("Parse(%q) = %s, want %s", text, got, tr)
			}
		}
	}
}

package appconfig

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseObject(t *testing.T, input string) *Object {
	t.Helper()
	v, err := Parse([]byte(input))
	require.NoError(t, err)
	obj, ok := v.(*Object)
	require.True(t, ok, "expected an object, got %T", v)
	return obj
}

func TestParse_KeepsKeyOrder(t *testing.T) {
	obj := parseObject(t, `{"zeta": 1, "alpha": {"b": true, "a": null}, "mid": [1, "two"]}`)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())

	nested, ok := obj.Object("alpha")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, nested.Keys())

	arr, ok := obj.Get("mid")
	require.True(t, ok)
	assert.Equal(t, []any{json.Number("1"), "two"}, arr)
}

func TestParse_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	obj := parseObject(t, `{"a": 1, "b": 2, "a": 3}`)

	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	v, _ := obj.Get("a")
	assert.Equal(t, json.Number("3"), v)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "truncated", input: `{"a": 1`},
		{name: "trailing comma", input: `{"a": 1,}`},
		{name: "trailing value", input: `{} {}`},
		{name: "empty input", input: ``},
		{name: "bare word", input: `nope`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestIndent(t *testing.T) {
	obj := parseObject(t, `{"platform":"web","stage":{"width":240,"fps":60,"options":{}},"routing":{"top":{"requests":[{"type":"json","path":"{{api.endPoint}}top.json"}]}},"list":[]}`)

	got, err := Indent(obj, "    ")
	require.NoError(t, err)

	want := `{
    "platform": "web",
    "stage": {
        "width": 240,
        "fps": 60,
        "options": {}
    },
    "routing": {
        "top": {
            "requests": [
                {
                    "type": "json",
                    "path": "{{api.endPoint}}top.json"
                }
            ]
        }
    },
    "list": []
}`
	assert.Equal(t, want, got)
}

func TestIndent_EmptyObject(t *testing.T) {
	got, err := Indent(NewObject(), "    ")
	require.NoError(t, err)
	assert.Equal(t, "{}", got)
}

func TestIndent_Strings(t *testing.T) {
	got, err := Indent([]any{"<a & b>", "line\nbreak", `q"uote`, "日本"}, "  ")
	require.NoError(t, err)
	assert.Equal(t, "[\n  \"<a & b>\",\n  \"line\\nbreak\",\n  \"q\\\"uote\",\n  \"日本\"\n]", got)
}

func TestIndent_UnsupportedType(t *testing.T) {
	_, err := Indent(struct{}{}, "    ")
	assert.Error(t, err)
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"-0", "0"},
		{"1", "1"},
		{"1.50", "1.5"},
		{"1e2", "100"},
		{"-42.125", "-42.125"},
		{"0.000001", "0.000001"},
		{"1e-7", "1e-7"},
		{"1.5e-7", "1.5e-7"},
		{"1e21", "1e+21"},
		{"123456789012345680000", "123456789012345680000"},
		{"1e400", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Indent(json.Number(tt.in), "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

package appconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/autoloader/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, projectDir, rel, content string) {
	t.Helper()
	path := filepath.Join(projectDir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func render(t *testing.T, doc *Object) string {
	t.Helper()
	out, err := Render(doc)
	require.NoError(t, err)
	return out
}

func TestMerge_NoFiles(t *testing.T) {
	doc, err := Merge(t.TempDir(), "local", "web")
	require.NoError(t, err)

	assert.Equal(t, "{\n    \"platform\": \"web\",\n    \"stage\": {},\n    \"routing\": {}\n}", render(t, doc))
}

func TestMerge_AllOverridesEnvironment(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ConfigFile, `{"local": {"platform": "a"}, "all": {"platform": "b"}}`)

	doc, err := Merge(dir, "local", "web")
	require.NoError(t, err)

	platform, _ := doc.Get(KeyPlatform)
	assert.Equal(t, "b", platform)
}

func TestMerge_EnvironmentSelection(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ConfigFile, `{
		"local": {"api": {"endPoint": "http://localhost:8080/"}, "debug": true},
		"prd": {"api": {"endPoint": "https://example.com/"}},
		"all": {"spa": true}
	}`)

	doc, err := Merge(dir, "prd", "web")
	require.NoError(t, err)

	assert.Equal(t, []string{"platform", "stage", "routing", "api", "spa"}, doc.Keys())
	assert.False(t, doc.Has("debug"))

	api, ok := doc.Object("api")
	require.True(t, ok)
	endPoint, _ := api.Get("endPoint")
	assert.Equal(t, "https://example.com/", endPoint)
}

func TestMerge_UnknownEnvironmentUsesOnlyAll(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ConfigFile, `{"local": {"debug": true}, "all": {"spa": false}}`)

	doc, err := Merge(dir, "staging", "web")
	require.NoError(t, err)

	assert.False(t, doc.Has("debug"))
	assert.True(t, doc.Has("spa"))
}

func TestMerge_StageKeyLevelMerge(t *testing.T) {
	dir := t.TempDir()

	writeConfig(t, dir, StageFile, `{"x": 1}`)
	first, err := Merge(dir, "local", "web")
	require.NoError(t, err)
	firstStage, _ := first.Object(KeyStage)
	assert.Equal(t, []string{"x"}, firstStage.Keys())

	writeConfig(t, dir, StageFile, `{"x": 2, "y": 3}`)
	second, err := Merge(dir, "local", "web")
	require.NoError(t, err)
	stage, _ := second.Object(KeyStage)
	assert.Equal(t, "{\n    \"x\": 2,\n    \"y\": 3\n}", mustIndent(t, stage))
}

func TestMerge_OverlayBucketThenFileMerge(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ConfigFile, `{"all": {"stage": {"width": 240, "height": 240}}}`)
	writeConfig(t, dir, StageFile, `{"height": 480, "fps": 60}`)
	writeConfig(t, dir, RoutingFile, `{"top": {"requests": []}}`)

	doc, err := Merge(dir, "local", "web")
	require.NoError(t, err)

	stage, ok := doc.Object(KeyStage)
	require.True(t, ok)
	assert.Equal(t, "{\n    \"width\": 240,\n    \"height\": 480,\n    \"fps\": 60\n}", mustIndent(t, stage))

	routing, ok := doc.Object(KeyRouting)
	require.True(t, ok)
	assert.Equal(t, []string{"top"}, routing.Keys())
}

func TestMerge_NonObjectBucketIsReset(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ConfigFile, `{"all": {"routing": "none"}}`)
	writeConfig(t, dir, RoutingFile, `{"home": {}}`)

	doc, err := Merge(dir, "local", "web")
	require.NoError(t, err)

	routing, ok := doc.Object(KeyRouting)
	require.True(t, ok)
	assert.Equal(t, []string{"home"}, routing.Keys())
}

func TestMerge_Idempotent(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ConfigFile, `{"local": {"stage": {"a": 1}}, "all": {"routing": {"r": {"x": [1]}}}}`)
	writeConfig(t, dir, StageFile, `{"b": {"c": "d"}, "a": 5}`)
	writeConfig(t, dir, RoutingFile, `{"s": true}`)

	merged, err := Merge(dir, "local", "web")
	require.NoError(t, err)

	stage, _ := merged.Object(KeyStage)
	routing, _ := merged.Object(KeyRouting)

	again := t.TempDir()
	writeConfig(t, again, ConfigFile, `{}`)
	writeConfig(t, again, StageFile, mustIndent(t, stage))
	writeConfig(t, again, RoutingFile, mustIndent(t, routing))

	remerged, err := Merge(again, "local", "web")
	require.NoError(t, err)

	assert.Equal(t, render(t, merged), render(t, remerged))
}

func TestMerge_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errText string
	}{
		{name: "malformed config", file: ConfigFile, content: `{"local": `, errText: "config.json"},
		{name: "malformed stage", file: StageFile, content: `{x: 1}`, errText: "stage.json"},
		{name: "malformed routing", file: RoutingFile, content: `[}`, errText: "routing.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.file, tt.content)

			_, err := Merge(dir, "local", "web")
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestMerge_NonObjectValuesSkipped(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "all false", file: ConfigFile, content: `{"all": false}`},
		{name: "all zero", file: ConfigFile, content: `{"all": 0}`},
		{name: "environment string", file: ConfigFile, content: `{"local": "x"}`},
		{name: "environment array", file: ConfigFile, content: `{"local": [1, 2]}`},
		{name: "config top-level array", file: ConfigFile, content: `[]`},
		{name: "config top-level number", file: ConfigFile, content: `7`},
		{name: "stage array", file: StageFile, content: `[1]`},
		{name: "routing string", file: RoutingFile, content: `"top"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.file, tt.content)

			doc, err := MergeWithLogger(dir, "local", "web", testutil.NewTestLogger(t))
			require.NoError(t, err)
			assert.Equal(t, render(t, Seed("web")), render(t, doc))
		})
	}
}

func TestMerge_NonObjectOverlayKeepsOthers(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ConfigFile, `{"local": {"debug": true}, "all": false}`)

	doc, err := Merge(dir, "local", "web")
	require.NoError(t, err)
	assert.True(t, doc.Has("debug"))
}

func TestMerge_NullOverlayIgnored(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ConfigFile, `{"local": null, "all": {"x": 1}}`)

	doc, err := Merge(dir, "local", "web")
	require.NoError(t, err)
	assert.True(t, doc.Has("x"))
}

func TestTypedMerges(t *testing.T) {
	doc := Seed("web")

	overlay := NewObject()
	overlay.Set("platform", "mobile")
	overlay.Set("extra", true)
	ApplyOverlay(doc, overlay)

	stage := NewObject()
	stage.Set("fps", 30)
	MergeStage(doc, stage)

	routing := NewObject()
	routing.Set("home", NewObject())
	MergeRouting(doc, routing)

	assert.Equal(t, `{
    "platform": "mobile",
    "stage": {
        "fps": 30
    },
    "routing": {
        "home": {}
    },
    "extra": true
}`, render(t, doc))
}

func mustIndent(t *testing.T, v any) string {
	t.Helper()
	out, err := Indent(v, "    ")
	require.NoError(t, err)
	return out
}

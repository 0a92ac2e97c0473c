// Package appconfig builds the merged application configuration from the
// JSON files under src/config.
//
// Merge order is fixed: seeded defaults, then the environment overlay of
// config.json, then its "all" overlay, then stage.json merged into the stage
// bucket, then routing.json merged into the routing bucket. Every step is a
// shallow property assignment; later steps win on collisions.
package appconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/autoloader/internal/scan"
)

// Reserved top-level buckets of the merged document.
const (
	KeyPlatform = "platform"
	KeyStage    = "stage"
	KeyRouting  = "routing"

	// AllOverlay is the config.json overlay applied for every environment.
	AllOverlay = "all"
)

// Source files, relative to the project directory.
var (
	ConfigFile  = filepath.Join("src", "config", "config.json")
	StageFile   = filepath.Join("src", "config", "stage.json")
	RoutingFile = filepath.Join("src", "config", "routing.json")
)

// ParseError reports a config file that is not valid JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Seed returns the base document: {platform, stage: {}, routing: {}}.
func Seed(platform string) *Object {
	doc := NewObject()
	doc.Set(KeyPlatform, platform)
	doc.Set(KeyStage, NewObject())
	doc.Set(KeyRouting, NewObject())
	return doc
}

// ApplyOverlay assigns the top-level properties of overlay onto doc.
// A bucket present in overlay replaces the seeded bucket wholesale.
func ApplyOverlay(doc, overlay *Object) {
	doc.Assign(overlay)
}

// MergeStage assigns the properties of stage into doc's stage bucket.
func MergeStage(doc, stage *Object) {
	mergeBucket(doc, KeyStage, stage)
}

// MergeRouting assigns the properties of routing into doc's routing bucket.
func MergeRouting(doc, routing *Object) {
	mergeBucket(doc, KeyRouting, routing)
}

// mergeBucket merges src key by key into doc[key]. An overlay may have
// replaced the bucket with a non-object; it is reset to an empty object so
// the bucket stays an object.
func mergeBucket(doc *Object, key string, src *Object) {
	bucket, ok := doc.Object(key)
	if !ok || bucket == nil {
		bucket = NewObject()
		doc.Set(key, bucket)
	}
	bucket.Assign(src)
}

// Merge loads the optional config.json, stage.json and routing.json below
// projectDir and merges them for environment. Missing files count as empty
// objects. Invalid JSON is returned as a *ParseError.
func Merge(projectDir, environment, platform string) (*Object, error) {
	return MergeWithLogger(projectDir, environment, platform, nil)
}

// MergeWithLogger is Merge with skipped inputs reported to logger at debug
// level. Valid JSON that is not an object (a file's top level or an overlay
// value such as false, 0 or "x") contributes nothing.
func MergeWithLogger(projectDir, environment, platform string, logger *slog.Logger) (*Object, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	doc := Seed(platform)

	envJSON, err := loadObject(projectDir, ConfigFile, logger)
	if err != nil {
		return nil, err
	}
	if envJSON != nil {
		for _, name := range []string{environment, AllOverlay} {
			if overlay := overlayOf(envJSON, name, logger); overlay != nil {
				ApplyOverlay(doc, overlay)
			}
		}
	}

	stage, err := loadObject(projectDir, StageFile, logger)
	if err != nil {
		return nil, err
	}
	if stage != nil {
		MergeStage(doc, stage)
	}

	routing, err := loadObject(projectDir, RoutingFile, logger)
	if err != nil {
		return nil, err
	}
	if routing != nil {
		MergeRouting(doc, routing)
	}

	return doc, nil
}

// overlayOf returns envJSON[name] when it is an object, nil otherwise.
func overlayOf(envJSON *Object, name string, logger *slog.Logger) *Object {
	v, ok := envJSON.Get(name)
	if !ok || v == nil {
		return nil
	}
	obj, ok := v.(*Object)
	if !ok {
		logger.Debug("skipping non-object overlay", "overlay", name, "kind", kindOf(v))
		return nil
	}
	return obj
}

// loadObject reads and parses projectDir/rel. It returns nil, nil when the
// file does not exist or holds valid JSON that is not an object.
func loadObject(projectDir, rel string, logger *slog.Logger) (*Object, error) {
	path := filepath.Join(projectDir, rel)

	data, err := os.ReadFile(path) //nolint:gosec // G304: fixed project-relative path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &scan.AccessError{Path: path, Err: err}
	}

	v, err := Parse(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	obj, ok := v.(*Object)
	if !ok {
		logger.Debug("skipping non-object config file", "path", path, "kind", kindOf(v))
		return nil, nil
	}
	return obj, nil
}

// Render serializes doc with the 4-space layout used in generated modules.
func Render(doc *Object) (string, error) {
	return Indent(doc, "    ")
}

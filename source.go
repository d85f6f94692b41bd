package timelint

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/timelint/i18n"
)

// Loader reads content documents. Translator localizes load failures; nil
// means English.
type Loader struct {
	Translator i18n.Translator
}

// Load reads path with a default Loader.
func Load(path string) (any, error) { return Loader{}.Load(path) }

// Decode parses data with a default Loader.
func Decode(data []byte, format Format) (any, error) { return Loader{}.Decode(data, format) }

func (l Loader) tr() i18n.Translator {
	if l.Translator == nil {
		return i18n.Default
	}
	return l.Translator
}

// Load reads a content document from disk and decodes it into a generic tree
// (map[string]any, []any, string, bool, json.Number, nil). The format is picked
// from the file extension.
//
// A missing or unreadable file yields an io_error issue; malformed content
// yields a parse_error issue. Both come back as Issues whose Unwrap exposes
// the underlying cause.
func (l Loader) Load(path string) (any, error) {
	data, err := l.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return l.Decode(data, FormatFromPath(path))
}

// ReadFile reads the raw bytes of a content file, reporting failures as an
// io_error issue.
func (l Loader) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, singleIssue(CodeIOError, l.tr().Message("io_error.missing", map[string]string{"path": path}), err)
		}
		msg := l.tr().Message("io_error.read", map[string]string{"path": path, "detail": err.Error()})
		return nil, singleIssue(CodeIOError, msg, err)
	}
	return data, nil
}

// Decode parses data in the given format into a generic tree.
func (l Loader) Decode(data []byte, format Format) (any, error) {
	var (
		v   any
		err error
	)
	switch format {
	case FormatYAML:
		v, err = decodeYAML(data)
	default:
		v, err = decodeJSON(data)
	}
	if err != nil {
		msg := l.tr().Message(CodeParseError, map[string]string{"format": strings.ToUpper(format.String()), "detail": err.Error()})
		return nil, singleIssue(CodeParseError, msg, err)
	}
	return v, nil
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	// a well-formed document holds exactly one value
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, err
	}
	return v, nil
}

func decodeYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return normalizeYAML(v), nil
}

// normalizeYAML converts yaml.v3 output into the same shapes the JSON decoder
// produces so schemas see one representation.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeYAML(e)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalizeYAML(e)
		}
		return out
	case []any:
		for i, e := range t {
			t[i] = normalizeYAML(e)
		}
		return t
	case int:
		return json.Number(strconv.Itoa(t))
	case int64:
		return json.Number(strconv.FormatInt(t, 10))
	case uint64:
		return json.Number(strconv.FormatUint(t, 10))
	case float64:
		return json.Number(strconv.FormatFloat(t, 'g', -1, 64))
	default:
		return v
	}
}

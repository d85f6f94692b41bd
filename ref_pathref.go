package timelint

import (
	"fmt"
	"strconv"
	"strings"
)

// PathRef builds JSON Pointer paths in a chain-safe way and creates Issues.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	Pointer() string
	Issue(code, msg string, kv ...any) Issue
}

// Root returns the PathRef of the document root.
func Root() PathRef { return &pathRef{parts: nil} }

// At parses a JSON Pointer into a PathRef.
func At(path string) PathRef {
	if path == "" || path == "/" {
		return Root()
	}
	// naive split on '/', ignoring first empty due to leading '/'
	parts := []string{}
	for _, p := range strings.Split(path, "/") {
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}
	return &pathRef{parts: parts}
}

type pathRef struct {
	parts []string
}

func (p *pathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return &pathRef{parts: append(append([]string{}, p.parts...), esc)}
}

func (p *pathRef) Index(i int) PathRef {
	return &pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

func (p *pathRef) Issue(code, msg string, kv ...any) Issue {
	m := map[string]any{}
	for i := 0; i+1 < len(kv); i += 2 {
		m[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return Issue{Path: p.Pointer(), Code: code, Message: msg, Params: m}
}

// ParentPointer drops the last segment of a JSON Pointer.
func ParentPointer(ptr string) string {
	i := strings.LastIndexByte(ptr, '/')
	if i <= 0 {
		return "/"
	}
	return ptr[:i]
}

// Location renders a JSON Pointer into the location prefix used in diagnostic
// lines: the first segment is the item index, later numeric segments are array
// indexes and everything else is a field name.
//
//	/          -> document
//	/3         -> item[3]
//	/3/people/0/name -> item[3].people[0].name
func Location(ptr string) string {
	if ptr == "" || ptr == "/" {
		return "document"
	}
	segs := strings.Split(strings.TrimPrefix(ptr, "/"), "/")
	b := &strings.Builder{}
	for i, s := range segs {
		s = strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
		_, err := strconv.Atoi(s)
		switch {
		case i == 0 && err == nil:
			b.WriteString("item[" + s + "]")
		case i == 0:
			b.WriteString(s)
		case err == nil:
			b.WriteString("[" + s + "]")
		default:
			b.WriteString("." + s)
		}
	}
	return b.String()
}

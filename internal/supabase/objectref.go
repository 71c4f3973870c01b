package supabase

import (
	"fmt"
	"net/url"
	"strings"
)

// ObjectRef addresses one stored object as bucket plus path.
type ObjectRef struct {
	Bucket string
	Path   string
}

// ParseError reports a URL that none of the recognized storage URL shapes
// matched.
type ParseError struct {
	URL string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("not a recognizable storage object URL: %s", e.URL)
}

// Markers tried in order when parsing an object URL. Signed URLs carry a
// token query parameter which is irrelevant to the object identity.
var objectMarkers = []string{
	"/storage/v1/object/public/",
	"/storage/v1/object/sign/",
	"/storage/v1/object/",
}

// ParseObjectURL extracts (bucket, path) from a storage public or signed
// URL. The fallback rules are ordered: the public form first, then the
// signed form, then the bare object form.
func ParseObjectURL(raw string) (ObjectRef, error) {
	if raw == "" {
		return ObjectRef{}, &ParseError{URL: raw}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ObjectRef{}, &ParseError{URL: raw}
	}
	p := u.Path
	if p == "" {
		p = raw
	}

	for _, marker := range objectMarkers {
		idx := strings.Index(p, marker)
		if idx < 0 {
			continue
		}
		rest := p[idx+len(marker):]
		slash := strings.Index(rest, "/")
		if slash <= 0 {
			continue
		}
		bucket := rest[:slash]
		path := rest[slash+1:]
		if path == "" || strings.HasSuffix(path, "/") {
			continue
		}
		// The bare form must not swallow the access-mode segment of the
		// more specific forms tried before it.
		if marker == objectMarkers[len(objectMarkers)-1] && (bucket == "public" || bucket == "sign") {
			continue
		}
		return ObjectRef{
			Bucket: bucket,
			Path:   path,
		}, nil
	}

	return ObjectRef{}, &ParseError{URL: raw}
}

// Dir returns the directory part of the object path, "" for top-level
// objects.
func (r ObjectRef) Dir() string {
	idx := strings.LastIndex(r.Path, "/")
	if idx < 0 {
		return ""
	}
	return r.Path[:idx]
}

// Base returns the filename part of the object path.
func (r ObjectRef) Base() string {
	idx := strings.LastIndex(r.Path, "/")
	if idx < 0 {
		return r.Path
	}
	return r.Path[idx+1:]
}

// Ext returns the filename extension including the dot, or "".
func (r ObjectRef) Ext() string {
	base := r.Base()
	idx := strings.LastIndex(base, ".")
	if idx < 0 {
		return ""
	}
	return base[idx:]
}

// Sibling returns a ref in the same bucket and directory with a different
// filename.
func (r ObjectRef) Sibling(filename string) ObjectRef {
	dir := r.Dir()
	if dir == "" {
		return ObjectRef{Bucket: r.Bucket, Path: filename}
	}
	return ObjectRef{Bucket: r.Bucket, Path: dir + "/" + filename}
}

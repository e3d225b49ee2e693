package http

import (
	"encoding/json"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/estate/internal/marketplace/apperr"
	"github.com/aussiebroadwan/estate/internal/marketplace/domain"
	"github.com/aussiebroadwan/estate/internal/marketplace/media"
	"github.com/aussiebroadwan/estate/pkg/httpx"
)

const (
	multipartMemory = 32 << 20
	maxUploadBody   = (domain.MaxPropertyImages+domain.MaxPropertyVideos)*media.MaxFileSize + 1<<20
)

// form is a request body read either as multipart (fields plus files) or
// as a JSON object. Nested JSON objects are flattened so {"address":
// {"city": "Pune"}} and {"city": "Pune"} read the same.
type form struct {
	values map[string][]string
	files  map[string][]*multipart.FileHeader
	mp     *multipart.Form
}

func readForm(w http.ResponseWriter, r *http.Request) (*form, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "multipart/form-data" {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return nil, apperr.Wrap(errBadBody, err)
		}
		return &form{values: r.MultipartForm.Value, files: r.MultipartForm.File, mp: r.MultipartForm}, nil
	}

	raw := map[string]any{}
	if err := httpx.DecodeJSON(w, r, &raw); err != nil {
		return nil, err
	}
	f := &form{values: map[string][]string{}}
	f.flatten(raw)
	return f, nil
}

func (f *form) flatten(m map[string]any) {
	for k, v := range m {
		switch v := v.(type) {
		case nil:
		case map[string]any:
			f.flatten(v)
		case []any:
			list := make([]string, 0, len(v))
			for _, item := range v {
				list = append(list, scalar(item))
			}
			f.values[k] = list
		default:
			f.values[k] = []string{scalar(v)}
		}
	}
}

func scalar(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}

// close drops any multipart temp files.
func (f *form) close() {
	if f.mp != nil {
		_ = f.mp.RemoveAll()
	}
}

func (f *form) str(key string) *string {
	vs, ok := f.values[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	s := strings.TrimSpace(vs[0])
	return &s
}

func (f *form) float(key string) (*float64, error) {
	s := f.str(key)
	if s == nil || *s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(*s, 64)
	if err != nil {
		return nil, invalidField(key)
	}
	return &v, nil
}

func (f *form) int(key string) (*int, error) {
	s := f.str(key)
	if s == nil || *s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(*s)
	if err != nil {
		return nil, invalidField(key)
	}
	return &v, nil
}

func (f *form) bool(key string) (*bool, error) {
	s := f.str(key)
	if s == nil || *s == "" {
		return nil, nil
	}
	switch strings.ToLower(*s) {
	case "true", "yes", "1", "on":
		v := true
		return &v, nil
	case "false", "no", "0", "off":
		v := false
		return &v, nil
	}
	return nil, invalidField(key)
}

// list accepts repeated fields, a JSON array in one field, or a
// comma-separated string.
func (f *form) list(key string) *[]string {
	vs, ok := f.values[key]
	if !ok {
		vs, ok = f.values[key+"[]"]
	}
	if !ok {
		return nil
	}

	if len(vs) == 1 {
		one := strings.TrimSpace(vs[0])
		var arr []string
		if strings.HasPrefix(one, "[") && json.Unmarshal([]byte(one), &arr) == nil {
			vs = arr
		} else {
			vs = strings.Split(one, ",")
		}
	}

	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return &out
}

// mediaFiles opens every upload under key. The returned closer must run
// once the files have been stored.
func (f *form) mediaFiles(key string) ([]media.File, func(), error) {
	headers := f.files[key]
	files := make([]media.File, 0, len(headers))
	var opened []multipart.File
	closeAll := func() {
		for _, o := range opened {
			_ = o.Close()
		}
	}

	for _, fh := range headers {
		body, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, apperr.Wrap(errBadBody, err)
		}
		opened = append(opened, body)
		files = append(files, media.File{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        body,
		})
	}
	return files, closeAll, nil
}

// mediaFile is mediaFiles for a single optional upload.
func (f *form) mediaFile(key string) (*media.File, func(), error) {
	files, closeFn, err := f.mediaFiles(key)
	if err != nil || len(files) == 0 {
		return nil, closeFn, err
	}
	return &files[0], closeFn, nil
}

func invalidField(key string) error {
	return apperr.Validation(fmt.Sprintf("Invalid value for %s", key))
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

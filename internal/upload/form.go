package upload

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"shopadmin/internal/config"
	apperrors "shopadmin/internal/errors"
)

const (
	// fieldBudget caps the combined size of all non-file fields.
	fieldBudget = 1 << 20
	maxParts    = 1000
)

type Limits struct {
	MaxFileSize int64
	MaxFiles    int
}

func LimitsFromConfig(cfg config.UploadConfig) Limits {
	return Limits{MaxFileSize: cfg.MaxFileSize, MaxFiles: cfg.MaxFiles}
}

// File is an uploaded file whose type has already been sniffed. Its content
// lives in a temporary file until the form is closed.
type File struct {
	Field       string
	Name        string
	ContentType string
	Size        int64
	path        string
}

func (f *File) Open() (multipart.File, error) {
	return os.Open(f.path)
}

// Form gives typed access to the fields of a parsed form body.
type Form struct {
	values url.Values
	files  map[string][]*File
	temp   []string
}

// IsForm reports whether the request carries a multipart or urlencoded body.
func IsForm(r *http.Request) bool {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mt == "multipart/form-data" || mt == "application/x-www-form-urlencoded"
}

// Parse reads a multipart or urlencoded body. Every file must be an image
// no larger than MaxFileSize and the body may carry at most MaxFiles files.
// Multipart bodies are streamed, so the file count is enforced as soon as
// the extra file part starts.
func Parse(r *http.Request, limits Limits) (*Form, error) {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || (mt != "multipart/form-data" && mt != "application/x-www-form-urlencoded") {
		return nil, apperrors.NewValidationError("invalid content type", apperrors.ValidationDetail{
			Field:   "body",
			Message: "Content-Type must be multipart/form-data or application/x-www-form-urlencoded",
		})
	}

	if mt == "application/x-www-form-urlencoded" {
		r.Body = http.MaxBytesReader(nil, r.Body, fieldBudget)
		if err := r.ParseForm(); err != nil {
			return nil, invalidBody(err)
		}
		return &Form{values: r.PostForm, files: map[string][]*File{}}, nil
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, invalidBody(err)
	}

	form := &Form{values: url.Values{}, files: map[string][]*File{}}
	if err := form.read(mr, limits); err != nil {
		form.Close()
		return nil, err
	}
	return form, nil
}

func (f *Form) read(mr *multipart.Reader, limits Limits) error {
	var fieldBytes int64
	fileCount := 0

	for parts := 0; ; parts++ {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return invalidBody(err)
		}
		if parts >= maxParts {
			p.Close()
			return apperrors.NewValidationError("invalid form body", apperrors.ValidationDetail{
				Field:   "body",
				Message: fmt.Sprintf("form has more than %d parts", maxParts),
			})
		}

		name := strings.TrimSuffix(p.FormName(), "[]")
		if p.FormName() == "" {
			p.Close()
			continue
		}

		if p.FileName() == "" {
			data, err := io.ReadAll(io.LimitReader(p, fieldBudget-fieldBytes+1))
			p.Close()
			if err != nil {
				return invalidBody(err)
			}
			fieldBytes += int64(len(data))
			if fieldBytes > fieldBudget {
				return apperrors.NewValidationError("invalid form body", apperrors.ValidationDetail{
					Field:   "body",
					Message: fmt.Sprintf("form fields exceed %d bytes", fieldBudget),
				})
			}
			f.values.Add(p.FormName(), string(data))
			continue
		}

		fileCount++
		if fileCount > limits.MaxFiles {
			p.Close()
			return apperrors.NewUploadLimitError(apperrors.CodeTooManyFiles, "",
				fmt.Sprintf("at most %d files may be uploaded at once", limits.MaxFiles))
		}

		file, err := f.spool(p, name, limits.MaxFileSize)
		p.Close()
		if err != nil {
			return err
		}
		f.files[name] = append(f.files[name], file)
	}
}

// spool copies a file part to a temporary file, rejecting it once it grows
// past maxSize or when its content is not an image.
func (f *Form) spool(p *multipart.Part, field string, maxSize int64) (*File, error) {
	tmp, err := os.CreateTemp("", "shopadmin-upload-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	f.temp = append(f.temp, tmp.Name())
	defer tmp.Close()

	size, err := io.Copy(tmp, io.LimitReader(p, maxSize+1))
	if err != nil {
		return nil, invalidBody(err)
	}
	if size > maxSize {
		return nil, apperrors.NewUploadLimitError(apperrors.CodeFileTooLarge, field,
			fmt.Sprintf("%s exceeds the %d byte limit", p.FileName(), maxSize))
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding %s: %w", p.FileName(), err)
	}
	mtype, err := mimetype.DetectReader(tmp)
	if err != nil {
		return nil, fmt.Errorf("detecting type of %s: %w", p.FileName(), err)
	}
	contentType, _, _ := mime.ParseMediaType(mtype.String())
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperrors.NewUploadLimitError(apperrors.CodeUnsupportedFileType, field,
			fmt.Sprintf("%s is %s, only images are accepted", p.FileName(), contentType))
	}

	return &File{
		Field:       field,
		Name:        p.FileName(),
		ContentType: contentType,
		Size:        size,
		path:        tmp.Name(),
	}, nil
}

func invalidBody(err error) error {
	return apperrors.NewValidationError("invalid form body", apperrors.ValidationDetail{
		Field:   "body",
		Message: err.Error(),
	})
}

// Close removes temporary files created while parsing.
func (f *Form) Close() {
	for _, path := range f.temp {
		os.Remove(path)
	}
	f.temp = nil
}

// Has reports whether the field was sent at all, even empty.
func (f *Form) Has(name string) bool {
	_, ok := f.values[name]
	_, okArr := f.values[name+"[]"]
	return ok || okArr
}

func (f *Form) String(name string) string {
	return strings.TrimSpace(f.values.Get(name))
}

// Strings collects a list field. It accepts a JSON array in a single value,
// repeated fields and name[] fields. Objects inside a JSON array contribute
// their id, or their url when the id is empty. Empty items are dropped.
func (f *Form) Strings(name string) []string {
	raw := append(append([]string{}, f.values[name]...), f.values[name+"[]"]...)

	var out []string
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if strings.HasPrefix(v, "[") {
			var items []interface{}
			if err := json.Unmarshal([]byte(v), &items); err == nil {
				for _, item := range items {
					if s := itemString(item); s != "" {
						out = append(out, s)
					}
				}
				continue
			}
		}
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func itemString(item interface{}) string {
	switch v := item.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case map[string]interface{}:
		if id, ok := v["id"]; ok {
			if s := itemString(id); s != "" {
				return s
			}
		}
		if u, ok := v["url"].(string); ok {
			return strings.TrimSpace(u)
		}
	}
	return ""
}

// Ints parses a list field of integers.
func (f *Form) Ints(name string) ([]int, error) {
	values := f.Strings(name)
	out := make([]int, 0, len(values))
	for _, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
				Field:   name,
				Message: fmt.Sprintf("%s must contain integers only", name),
			})
		}
		out = append(out, n)
	}
	return out, nil
}

// Bool is true for "true", "1" and "on". Anything else is false.
func (f *Form) Bool(name string) bool {
	switch strings.ToLower(f.String(name)) {
	case "true", "1", "on":
		return true
	}
	return false
}

func (f *Form) Files(name string) []*File {
	return f.files[name]
}

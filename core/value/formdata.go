package value

// Formdata is the parsed representation of an URL-encoded or multipart
// request body. Fields keep their original names and declaration order;
// plain values and file values may share a name.
type Formdata struct {
	names  []string
	values map[string][]string
	files  map[string][]*Upload
}

// NewFormdata creates an empty form.
func NewFormdata() *Formdata {
	return &Formdata{
		values: make(map[string][]string),
		files:  make(map[string][]*Upload),
	}
}

// Put appends a plain field value.
func (f *Formdata) Put(name, value string) {
	f.track(name)
	f.values[name] = append(f.values[name], value)
}

// PutFile appends a file field value.
func (f *Formdata) PutFile(name string, upload *Upload) {
	f.track(name)
	f.files[name] = append(f.files[name], upload)
}

// Value returns the plain field by name, or the missing sentinel.
func (f *Formdata) Value(name string) Value {
	vs, ok := f.values[name]
	if !ok || len(vs) == 0 {
		return Missing(name)
	}
	return New(name, vs...)
}

// File returns the first file registered under name.
func (f *Formdata) File(name string) (*Upload, bool) {
	us := f.files[name]
	if len(us) == 0 {
		return nil, false
	}
	return us[0], true
}

// Files returns all files registered under name.
func (f *Formdata) Files(name string) []*Upload {
	return f.files[name]
}

// Names returns all field names in declaration order.
func (f *Formdata) Names() []string {
	return f.names
}

func (f *Formdata) track(name string) {
	if _, seenValue := f.values[name]; seenValue {
		return
	}
	if _, seenFile := f.files[name]; seenFile {
		return
	}
	f.names = append(f.names, name)
}

// Multipart is a Formdata parsed from a multipart/form-data body. After a
// multipart parse the generic form accessor aliases the embedded Formdata,
// so both views share one cache.
type Multipart struct {
	Formdata
}

// NewMultipart creates an empty multipart form.
func NewMultipart() *Multipart {
	return &Multipart{Formdata: Formdata{
		values: make(map[string][]string),
		files:  make(map[string][]*Upload),
	}}
}

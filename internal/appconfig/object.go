package appconfig

// Object is a JSON object that keeps its keys in insertion order.
// Overwriting an existing key keeps its original position, matching how
// JavaScript objects behave under property assignment.
//
// Values are nil, bool, json.Number, string, float64, int, []any or *Object.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the keys in order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Set stores value under key, appending the key if it is new.
func (o *Object) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Assign copies every property of src onto o, in src order (a shallow
// Object.assign). Nested objects are shared, not copied.
func (o *Object) Assign(src *Object) {
	if src == nil {
		return
	}
	for _, k := range src.keys {
		o.Set(k, src.values[k])
	}
}

// Object returns the nested object stored under key, if any.
func (o *Object) Object(key string) (*Object, bool) {
	v, ok := o.values[key]
	if !ok {
		return nil, false
	}
	obj, ok := v.(*Object)
	return obj, ok
}

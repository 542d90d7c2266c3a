package config

import (
	"reflect"

	"github.com/fatih/structtag"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// mirrored must implement Config.
var _ Config = &mirrored{}

// mirrored is the default Config implementation. It stores values in a
// plain map while mirroring them onto the wrapped struct via reflection,
// so that typed access through the struct and generic access through the
// Config interface stay consistent.
type mirrored struct {
	Value
	values map[string]Value
	fields *fieldSet
}

func newMirrored(s *Setup) (*mirrored, error) {
	if isNil(s.initial) {
		return nil, errors.New("unable to wrap <nil>")
	}
	fs, err := inspect(s.initial)
	if err != nil {
		return nil, err
	}
	c := &mirrored{Value: s.initial, values: make(map[string]Value), fields: fs}
	for k, v := range s.raw {
		c.Set(k, v)
	}
	for k := range s.options {
		if v, err := fs.get(k); err == nil {
			c.Set(k, v)
		}
	}
	return c, nil
}

func (c *mirrored) Self() Value {
	return c.Value
}

func (c *mirrored) Get(key string) (Value, bool) {
	if v, err := c.fields.get(key); err == nil {
		return v, true
	}
	if v, ok := c.values[key]; ok {
		return v, true
	}
	return nil, false
}

func (c *mirrored) String(key string) (string, bool) {
	v, ok := c.Get(key)
	if !ok {
		return "", false
	}
	vs, ok := v.(string)
	return vs, ok
}

func (c *mirrored) Bool(key string) (bool, bool) {
	v, ok := c.Get(key)
	if !ok {
		return false, false
	}
	vb, ok := v.(bool)
	return vb, ok
}

func (c *mirrored) Int(key string) (int, bool) {
	v, ok := c.Get(key)
	if !ok {
		return 0, false
	}
	switch vi := v.(type) {
	case int:
		return vi, true
	case int64:
		// TOML integers decode as int64
		return int(vi), true
	}
	return 0, false
}

func (c *mirrored) Set(key string, val Value) {
	c.values[key] = val
	c.fields.set(key, val)
}

func (c *mirrored) Section(key string) (Config, error) {
	v := c.values[key]
	if s, ok := v.(Config); ok {
		return s, nil
	}
	return nil, errors.Errorf("section %q contains unexpected type %T: %v", key, v, v)
}

// A fieldSet abstracts reading and modifying the wrapped Value,
// particularly structs, struct pointers, and maps.
type fieldSet struct {
	value reflect.Value
	named map[string]structField
}

type structField struct {
	Name  string
	Index []int
}

func inspect(v Value) (*fieldSet, error) {
	vo := reflect.ValueOf(v)
	if vo.Kind() == reflect.Ptr {
		vo = reflect.Indirect(vo)
	}
	named := map[string]structField{}
	if vo.Kind() == reflect.Struct {
		tt := vo.Type()
		for i := 0; i < tt.NumField(); i++ {
			f := tt.Field(i)
			ff := structField{f.Name, f.Index}
			named[f.Name] = ff
			tgs, err := structtag.Parse(string(f.Tag))
			if err != nil {
				return nil, err
			}
			// struct tags act as aliases, eg. toml names.
			for _, tg := range tgs.Tags() {
				if tg.Name != "" && tg.Name != "-" {
					named[tg.Name] = ff
				}
			}
		}
	}
	return &fieldSet{value: vo, named: named}, nil
}

func (fs *fieldSet) get(name string) (Value, error) {
	var m reflect.Value
	if fs.value.Kind() == reflect.Map {
		m = fs.value.MapIndex(reflect.ValueOf(name))
		if !m.IsValid() {
			return nil, nil
		}
	} else {
		if t, ok := fs.named[name]; ok {
			m = fs.value.FieldByIndex(t.Index)
		}
		if !m.IsValid() {
			return nil, errors.New("no field with name " + name)
		}
	}
	if m.CanInterface() {
		return m.Interface(), nil
	}
	return nil, errors.New("unable to read field " + name)
}

func (fs *fieldSet) set(name string, val Value) {
	if vc, ok := val.(*mirrored); ok {
		val = vc.Value
	}
	rv := reflect.ValueOf(val)
	if fs.value.Kind() == reflect.Map {
		fs.value.SetMapIndex(reflect.ValueOf(name), rv)
		return
	}
	var m reflect.Value
	if t, ok := fs.named[name]; ok {
		m = fs.value.FieldByIndex(t.Index)
	}
	if !m.IsValid() || !m.CanSet() {
		return
	}
	if m.Kind() == reflect.Slice && m.Type().Elem().Kind() == reflect.String {
		// TOML arrays decode as []interface{}
		var res []string
		if vs, ok := val.([]interface{}); ok {
			for _, vv := range vs {
				if s, ok := vv.(string); ok {
					res = append(res, s)
				}
			}
			rv = reflect.ValueOf(res)
		}
	}
	trySet(m, rv)
}

func trySet(m reflect.Value, rv reflect.Value) {
	defer func() {
		if v := recover(); v != nil {
			logrus.Debugln("config: failed to set value using reflection:", v)
		}
	}()
	if m.Kind() != rv.Kind() {
		if m.Kind() == reflect.Ptr {
			rv = reflect.Indirect(rv)
		} else if rv.Kind() == reflect.Ptr {
			rv = rv.Elem()
		}
		if rv.IsValid() && rv.Type().ConvertibleTo(m.Type()) {
			// eg. int64 from TOML into an int field
			rv = rv.Convert(m.Type())
		}
	}
	m.Set(rv)
}

func isNil(v Value) bool {
	if v == nil {
		return true
	}
	vo := reflect.ValueOf(v)
	if vo.Kind() == reflect.Ptr && !vo.IsNil() {
		vo = reflect.Indirect(vo)
	}
	return !vo.IsValid()
}

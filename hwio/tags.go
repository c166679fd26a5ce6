package hwio

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// regRef is one hwio-tagged field found on a bank struct.
type regRef struct {
	offset uint16
	bank   int
	regPtr any
}

// MustInitRegs walks the exported fields of owner (a pointer to a struct)
// looking for hwio-tagged Reg8/Mem/Device fields, wires their optional
// read/write/peek callbacks to methods named Read<FIELD>/Write<FIELD>/
// Peek<FIELD> on owner, and sets each register's Name to the field name.
// It panics on malformed tags or missing callback methods, since these are
// programmer errors caught once at power-up, not runtime conditions.
func MustInitRegs(owner any) {
	v := reflect.ValueOf(owner)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("hwio: MustInitRegs needs a struct pointer, got %T", owner))
	}
	sv := v.Elem()
	st := sv.Type()

	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		tag, ok := field.Tag.Lookup("hwio")
		if !ok {
			continue
		}
		opts := parseTag(tag)
		if _, has := opts["offset"]; !has {
			continue
		}
		fv := sv.Field(i)
		switch p := fv.Addr().Interface().(type) {
		case *Reg8:
			p.Name = field.Name
			if _, ro := opts["readonly"]; ro {
				p.Flags |= ReadOnlyFlag
			}
			if _, wo := opts["writeonly"]; wo {
				p.Flags |= WriteOnlyFlag
			}
			if _, has := opts["rcb"]; has {
				p.ReadCb = mustMethod[func(uint8) uint8](owner, "Read"+field.Name)
			}
			if _, has := opts["wcb"]; has {
				p.WriteCb = mustMethod[func(uint8, uint8)](owner, "Write"+field.Name)
			}
			if _, has := opts["pcb"]; has {
				p.PeekCb = mustMethod[func(uint8) uint8](owner, "Peek"+field.Name)
			}
		case *Mem:
			p.Name = field.Name
			if sz, has := opts["size"]; has {
				n := mustInt(sz)
				if p.Data == nil {
					p.Data = make([]byte, n)
				}
			}
			if vs, has := opts["vsize"]; has {
				p.VSize = mustInt(vs)
			} else {
				p.VSize = len(p.Data)
			}
			if _, ro := opts["readonly"]; ro {
				p.Flags |= MemFlag8ReadOnly
			}
			if _, has := opts["wcb"]; has {
				p.WriteCb = mustMethod[func(uint16, uint8)](owner, "Write"+field.Name)
			}
		case *Device:
			p.Name = field.Name
			if sz, has := opts["size"]; has {
				p.Size = mustInt(sz)
			}
		}
	}
}

// bankGetRegs returns the hwio-tagged registers belonging to the requested
// bank number (see the "bank=" tag option), in field-declaration order.
func bankGetRegs(owner any, bankNum int) ([]regRef, error) {
	v := reflect.ValueOf(owner)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("hwio: bankGetRegs needs a struct pointer, got %T", owner)
	}
	sv := v.Elem()
	st := sv.Type()

	var regs []regRef
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		tag, ok := field.Tag.Lookup("hwio")
		if !ok {
			continue
		}
		opts := parseTag(tag)
		off, has := opts["offset"]
		if !has {
			continue
		}
		bank := 0
		if b, has := opts["bank"]; has {
			bank = mustInt(b)
		}
		if bank != bankNum {
			continue
		}
		regs = append(regs, regRef{
			offset: uint16(mustInt(off)),
			bank:   bank,
			regPtr: sv.Field(i).Addr().Interface(),
		})
	}
	return regs, nil
}

func parseTag(tag string) map[string]string {
	opts := make(map[string]string)
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if eq := strings.IndexByte(part, '='); eq >= 0 {
			opts[part[:eq]] = part[eq+1:]
		} else {
			opts[part] = ""
		}
	}
	return opts
}

func mustInt(s string) int {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		s = s[2:]
	}
	n, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		panic(fmt.Sprintf("hwio: invalid integer tag value %q: %v", s, err))
	}
	return int(n)
}

// mustMethod finds a method by name on owner and asserts it has the exact
// signature T, converting it to a plain func value. Reflection-obtained
// bound methods are otherwise awkward to store as typed func fields.
func mustMethod[T any](owner any, name string) T {
	m := reflect.ValueOf(owner).MethodByName(name)
	if !m.IsValid() {
		panic(fmt.Sprintf("hwio: %T has no method %s required by its hwio tags", owner, name))
	}
	fn, ok := m.Interface().(T)
	if !ok {
		panic(fmt.Sprintf("hwio: %T.%s has the wrong signature for its hwio tag", owner, name))
	}
	return fn
}

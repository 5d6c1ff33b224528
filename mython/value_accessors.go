package mython

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNone() bool { return v.kind == KindNone }

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

func (v Value) Number() int64 {
	if v.kind == KindNumber {
		return v.data.(int64)
	}
	return 0
}

func (v Value) Class() *Class {
	if v.kind != KindClass {
		return nil
	}
	return v.data.(*Class)
}

func (v Value) Instance() *Instance {
	if v.kind != KindInstance {
		return nil
	}
	return v.data.(*Instance)
}

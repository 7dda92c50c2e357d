package ptr

func String(str string) *string {
	return &str
}

func Bool(b bool) *bool {
	return &b
}

func UInt32(i uint32) *uint32 {
	return &i
}

//go:build !amd64 || noasm

package atomic128

func nativeTestBackends() []*backend {
	return nil
}

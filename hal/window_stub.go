//go:build !cgo

package hal

import "errors"

func RunWindow(_ string, _ *MemFramebuffer, _ int) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}

package httpapi

import "github.com/isaacphysics/equality-checker/checkerr"

func newIllFormed(message string) *checkerr.Error {
	return checkerr.New(checkerr.KindIllFormedRequest, message)
}

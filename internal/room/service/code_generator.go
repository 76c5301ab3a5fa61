package service

import (
	"math/rand/v2"
	"strconv"

	"github.com/splitroom/backend/internal/common/constants"
)

// CodeGenerator produces candidate room codes. Generation is uncoordinated
// across requests; uniqueness is enforced by the storage constraint, not
// here.
type CodeGenerator interface {
	Generate() string
}

type RandomCodeGenerator struct{}

func NewRandomCodeGenerator() *RandomCodeGenerator {
	return &RandomCodeGenerator{}
}

func (g *RandomCodeGenerator) Generate() string {
	n := constants.RoomCodeMin + rand.IntN(constants.RoomCodeMax-constants.RoomCodeMin+1)
	return strconv.Itoa(n)
}

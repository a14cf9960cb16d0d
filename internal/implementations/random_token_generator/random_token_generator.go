package randomtokengenerator

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"regain/internal/core/domain/recovery"
	"regain/internal/core/domain/user"
)

// Recovery tokens must be unguessable, so they carry 256 bits of CSPRNG
// entropy; nothing about them is derived from the account or the clock.
const recoveryTokenBytes = 32
const sessionTokenBytes = 24

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) GenerateRecoveryToken() recovery.Token {
	return recovery.Token(randomString(recoveryTokenBytes))
}

func (g *Generator) GenerateSessionToken() user.SessionToken {
	return user.SessionToken(randomString(sessionTokenBytes))
}

func randomString(byteLen int) string {
	b := make([]byte, byteLen)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("could not read random bytes: %v", err))
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
